package util

import (
	"strings"
	"testing"
)

func TestRandomToken(t *testing.T) {
	token := RandomToken(32)
	if len(token) != 32 {
		t.Errorf("Expected token of length 32, got %d", len(token))
	}

	other := RandomToken(32)
	if token == other {
		t.Error("Expected two random tokens to differ")
	}
}

func TestRandomTokenOddLength(t *testing.T) {
	token := RandomToken(15)
	if len(token) != 15 {
		t.Errorf("Expected token of length 15, got %d", len(token))
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "hunter22" {
		t.Error("Expected hash to differ from plaintext")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Error("Expected correct password to verify")
	}

	if CheckPassword(hash, "hunter23") {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"alice", "bob_42", "ABC", "a_b_c_1234567890"}
	for _, u := range valid {
		if !ValidUsername(u) {
			t.Errorf("Expected username %q to be valid", u)
		}
	}

	invalid := []string{"ab", "has space", "dash-name", "über", strings.Repeat("x", 31), ""}
	for _, u := range invalid {
		if ValidUsername(u) {
			t.Errorf("Expected username %q to be invalid", u)
		}
	}
}

func TestExtractHashtags(t *testing.T) {
	tags := ExtractHashtags("Sunset at the beach #Sunset #beach #sunset today")
	if len(tags) != 2 {
		t.Fatalf("Expected 2 unique hashtags, got %d: %v", len(tags), tags)
	}
	if tags[0] != "sunset" || tags[1] != "beach" {
		t.Errorf("Unexpected hashtags: %v", tags)
	}
}

func TestExtractMentions(t *testing.T) {
	names := ExtractMentions("thanks @alice and @bob, also @alice")
	if len(names) != 2 {
		t.Fatalf("Expected 2 unique mentions, got %d: %v", len(names), names)
	}
	if names[0] != "alice" || names[1] != "bob" {
		t.Errorf("Unexpected mentions: %v", names)
	}
}

func TestExtractHashtagsNone(t *testing.T) {
	tags := ExtractHashtags("no tags here")
	if len(tags) != 0 {
		t.Errorf("Expected no hashtags, got %v", tags)
	}
}

func TestNormalizeInput(t *testing.T) {
	normalized := NormalizeInput("line1\nline2 <script>")
	if strings.Contains(normalized, "\n") {
		t.Error("Expected newlines to be replaced")
	}
	if strings.Contains(normalized, "<script>") {
		t.Error("Expected HTML to be escaped")
	}
}
