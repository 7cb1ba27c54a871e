package social

import (
	"errors"
	"testing"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	s := setupTestService(t)

	user, session, err := s.Register("alice", "alice@example.com", "correcthorse", time.Hour)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if session.Token == "" {
		t.Fatal("Expected a session token")
	}

	resolved, err := s.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if resolved.Id != user.Id {
		t.Error("Token resolved to the wrong account")
	}

	// Login works with username and with email
	for _, identifier := range []string{"alice", "alice@example.com"} {
		if _, _, err := s.Login(identifier, "correcthorse", time.Hour); err != nil {
			t.Errorf("Login with %q failed: %v", identifier, err)
		}
	}
	if _, _, err := s.Login("alice", "wrong", time.Hour); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for bad password, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := setupTestService(t)

	if _, _, err := s.Register("alice", "a@example.com", "correcthorse", time.Hour); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, _, err := s.Register("alice", "b@example.com", "correcthorse", time.Hour)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate username, got %v", err)
	}
}

func TestRegisterInvalidInput(t *testing.T) {
	s := setupTestService(t)

	if _, _, err := s.Register("a!", "a@example.com", "correcthorse", time.Hour); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for bad username, got %v", err)
	}
	if _, _, err := s.Register("alice", "a@example.com", "short", time.Hour); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for short password, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	s := setupTestService(t)

	_, session, err := s.Register("alice", "alice@example.com", "correcthorse", time.Hour)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := s.Logout(session.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := s.Authenticate(session.Token); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden after logout, got %v", err)
	}
}

func TestProfileFollowState(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	profile, err := s.Profile(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if !profile.IsFollowing || profile.IsFollowingMe {
		t.Errorf("Unexpected follow state: %+v", profile)
	}

	// Being blocked hides the profile entirely
	if err := s.BlockUser(bob.Id, alice.Id); err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	if _, err := s.Profile(alice.Id, bob.Id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for blocked viewer, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)

	bio := "hello world"
	private := true
	updated, err := s.UpdateProfile(alice.Id, &domain.ProfileUpdate{Bio: &bio, IsPrivate: &private})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Bio != bio || !updated.IsPrivate {
		t.Errorf("Expected updated fields, got %+v", updated)
	}
	if updated.DisplayName != "alice" {
		t.Error("Unset fields must stay unchanged")
	}
}

func TestSearchUsers(t *testing.T) {
	s := setupTestService(t)
	createTestUser(t, s, "alice", false)
	createTestUser(t, s, "alicia", false)
	createTestUser(t, s, "bob", false)

	users, err := s.SearchUsers("ali", 10)
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(users))
	}

	users, _ = s.SearchUsers("", 10)
	if len(users) != 0 {
		t.Error("Empty query should return nothing")
	}
}

func TestSearchHashtags(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)

	createTestPost(t, s, alice.Id, "morning #sunset #sunrise")
	createTestPost(t, s, alice.Id, "evening #sunset #beach")

	tags, err := s.SearchHashtags("sun", 10)
	if err != nil {
		t.Fatalf("SearchHashtags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 matching tags, got %d", len(tags))
	}
	if tags[0].Tag != "sunset" || tags[0].Count != 2 {
		t.Errorf("Expected sunset first with 2 posts, got %+v", tags[0])
	}

	// Leading '#' is stripped before matching
	tags, err = s.SearchHashtags("#beach", 10)
	if err != nil {
		t.Fatalf("SearchHashtags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Tag != "beach" {
		t.Errorf("Expected beach match, got %+v", tags)
	}

	tags, _ = s.SearchHashtags("", 10)
	if len(tags) != 0 {
		t.Error("Empty query should return nothing")
	}
}
