package social

import (
	"testing"
)

func TestToggleLike(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	post := createTestPost(t, s, alice.Id, "hello")

	result, err := s.ToggleLike(bob.Id, post.Id)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !result.Active || result.Count != 1 {
		t.Errorf("Expected active like with count 1, got %+v", result)
	}

	result, err = s.ToggleLike(bob.Id, post.Id)
	if err != nil {
		t.Fatalf("ToggleLike (unlike) failed: %v", err)
	}
	if result.Active || result.Count != 0 {
		t.Errorf("Expected inactive like with count 0, got %+v", result)
	}
}

func TestToggleLikeRoundTripCounter(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	post := createTestPost(t, s, alice.Id, "hello")

	for i := 0; i < 6; i++ {
		if _, err := s.ToggleLike(bob.Id, post.Id); err != nil {
			t.Fatalf("Toggle %d failed: %v", i, err)
		}
	}

	fresh, err := s.readPost(post.Id)
	if err != nil {
		t.Fatalf("Failed to read post: %v", err)
	}
	if fresh.LikesCount != 0 {
		t.Errorf("Expected likes_count 0 after even toggles, got %d", fresh.LikesCount)
	}
}

func TestToggleBookmark(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	post := createTestPost(t, s, alice.Id, "keep this")

	result, err := s.ToggleBookmark(alice.Id, post.Id)
	if err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}
	if !result.Active {
		t.Error("Expected active bookmark")
	}

	saved, err := s.BookmarkedPosts(alice.Id, 0, 10)
	if err != nil {
		t.Fatalf("BookmarkedPosts failed: %v", err)
	}
	if len(saved) != 1 || saved[0].Id != post.Id {
		t.Errorf("Expected the bookmarked post, got %v", saved)
	}

	result, _ = s.ToggleBookmark(alice.Id, post.Id)
	if result.Active {
		t.Error("Expected inactive bookmark after second toggle")
	}
}

func TestRecordPostViewOncePerViewer(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	post := createTestPost(t, s, alice.Id, "hello")

	counted, err := s.RecordPostView(bob.Id, post.Id)
	if err != nil {
		t.Fatalf("RecordPostView failed: %v", err)
	}
	if !counted {
		t.Error("Expected first view to count")
	}

	counted, err = s.RecordPostView(bob.Id, post.Id)
	if err != nil {
		t.Fatalf("Repeat view failed: %v", err)
	}
	if counted {
		t.Error("Expected repeat view not to count")
	}

	fresh, _ := s.readPost(post.Id)
	if fresh.ViewsCount != 1 {
		t.Errorf("Expected views_count 1, got %d", fresh.ViewsCount)
	}
}

func TestRecordPostViewByAuthor(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	post := createTestPost(t, s, alice.Id, "hello")

	counted, err := s.RecordPostView(alice.Id, post.Id)
	if err != nil {
		t.Fatalf("RecordPostView failed: %v", err)
	}
	if counted {
		t.Error("Author views must not count")
	}
}

func TestRecordStoryView(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	story, err := s.CreateStory(alice.Id, "https://cdn/img.jpg", "image", "")
	if err != nil {
		t.Fatalf("CreateStory failed: %v", err)
	}

	counted, err := s.RecordStoryView(bob.Id, story.Id)
	if err != nil {
		t.Fatalf("RecordStoryView failed: %v", err)
	}
	if !counted {
		t.Error("Expected first story view to count")
	}
	if counted, _ = s.RecordStoryView(bob.Id, story.Id); counted {
		t.Error("Expected repeat story view not to count")
	}

	viewers, err := s.StoryViewers(alice.Id, story.Id)
	if err != nil {
		t.Fatalf("StoryViewers failed: %v", err)
	}
	if len(viewers) != 1 || viewers[0].ViewerId != bob.Id {
		t.Errorf("Expected bob in viewer list, got %v", viewers)
	}
}
