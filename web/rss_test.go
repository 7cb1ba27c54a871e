package web

import (
	"strings"
	"testing"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/MimansaPatle/pictogram/social"
	"github.com/MimansaPatle/pictogram/util"
)

func setupRSSTest(t *testing.T) *handlers {
	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	conf := &util.AppConfig{}
	conf.Conf.BaseURL = "http://localhost:8080"
	return &handlers{service: social.NewService(store), conf: conf}
}

func TestGetRSSPublicUser(t *testing.T) {
	h := setupRSSTest(t)

	user, _, err := h.service.Register("alice", "alice@example.com", "correcthorse", time.Hour)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := h.service.CreatePost(user.Id, &domain.PostEdit{Content: "first post"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	rss, err := h.GetRSS("alice")
	if err != nil {
		t.Fatalf("GetRSS failed: %v", err)
	}
	if !strings.Contains(rss, "<rss") {
		t.Error("Expected RSS XML output")
	}
	if !strings.Contains(rss, "first post") {
		t.Error("Expected the post content in the feed")
	}
}

func TestGetRSSPrivateUser(t *testing.T) {
	h := setupRSSTest(t)

	user, _, err := h.service.Register("bob", "bob@example.com", "correcthorse", time.Hour)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	private := true
	if _, err := h.service.UpdateProfile(user.Id, &domain.ProfileUpdate{IsPrivate: &private}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if _, err := h.GetRSS("bob"); err == nil {
		t.Error("Expected error for private profile feed")
	}
}

func TestGetRSSUnknownUser(t *testing.T) {
	h := setupRSSTest(t)

	if _, err := h.GetRSS("nobody"); err == nil {
		t.Error("Expected error for unknown user")
	}
}
