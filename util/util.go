package util

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

//go:embed version.txt
var embeddedVersion string

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	hashtagPattern  = regexp.MustCompile(`#[a-zA-Z0-9_]+`)
	mentionPattern  = regexp.MustCompile(`@[a-zA-Z0-9_]+`)
)

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

// RandomToken returns a hex string of the given length, suitable for
// session tokens.
func RandomToken(length int) string {
	b := make([]byte, (length+1)/2)
	rand.Read(b)
	return hex.EncodeToString(b)[:length]
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// ExtractHashtags returns all #tags found in the text, lowercased and
// without the marker or duplicates.
func ExtractHashtags(text string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, tag := range hashtagPattern.FindAllString(text, -1) {
		tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// ExtractMentions returns the usernames @mentioned in the text,
// without the marker or duplicates. Case is preserved.
func ExtractMentions(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range mentionPattern.FindAllString(text, -1) {
		name = strings.TrimPrefix(name, "@")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func NormalizeInput(text string) string {
	normalized := strings.Replace(text, "\n", " ", -1)
	normalized = html.EscapeString(normalized)
	return normalized
}

func DateTimeFormat() string {
	return "2006-01-02 15:04:05 MST"
}

func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", " ")
	return string(s)
}
