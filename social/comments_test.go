package social

import (
	"errors"
	"testing"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

func TestAddCommentMovesCounters(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	post := createTestPost(t, s, alice.Id, "hello")

	comment, err := s.AddComment(bob.Id, post.Id, "nice", uuid.NullUUID{})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	fresh, _ := s.readPost(post.Id)
	if fresh.CommentsCount != 1 {
		t.Errorf("Expected comments_count 1, got %d", fresh.CommentsCount)
	}

	// The post author gets notified
	notifications, _ := s.ListNotifications(alice.Id, false, 0, 10)
	if len(notifications) != 1 || notifications[0].Type != domain.NotifyComment {
		t.Errorf("Expected a comment notification, got %v", notifications)
	}

	// A reply bumps both the post and the parent
	reply, err := s.AddComment(alice.Id, post.Id, "thanks",
		uuid.NullUUID{UUID: comment.Id, Valid: true})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !reply.ParentId.Valid || reply.ParentId.UUID != comment.Id {
		t.Errorf("Expected reply parent %s, got %+v", comment.Id, reply.ParentId)
	}
	parent, _ := s.readComment(comment.Id)
	if parent.RepliesCount != 1 {
		t.Errorf("Expected replies_count 1, got %d", parent.RepliesCount)
	}
	fresh, _ = s.readPost(post.Id)
	if fresh.CommentsCount != 2 {
		t.Errorf("Expected comments_count 2, got %d", fresh.CommentsCount)
	}
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	post := createTestPost(t, s, alice.Id, "hello")

	comment, _ := s.AddComment(bob.Id, post.Id, "top", uuid.NullUUID{})
	parentRef := uuid.NullUUID{UUID: comment.Id, Valid: true}
	s.AddComment(alice.Id, post.Id, "reply one", parentRef)
	s.AddComment(alice.Id, post.Id, "reply two", parentRef)

	if err := s.DeleteComment(bob.Id, comment.Id); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	fresh, _ := s.readPost(post.Id)
	if fresh.CommentsCount != 0 {
		t.Errorf("Expected comments_count 0 after cascade, got %d", fresh.CommentsCount)
	}
	comments, err := s.PostComments(alice.Id, post.Id, 0, 10)
	if err != nil {
		t.Fatalf("PostComments failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("Expected no comments left, got %d", len(comments))
	}
}

func TestEditCommentOwnerOnly(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	post := createTestPost(t, s, alice.Id, "hello")
	comment, _ := s.AddComment(bob.Id, post.Id, "typo", uuid.NullUUID{})

	_, err := s.EditComment(alice.Id, comment.Id, "hijacked")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for foreign edit, got %v", err)
	}

	edited, err := s.EditComment(bob.Id, comment.Id, "fixed")
	if err != nil {
		t.Fatalf("Owner edit failed: %v", err)
	}
	if edited.Content != "fixed" || edited.UpdatedAt == nil {
		t.Errorf("Expected updated content with timestamp, got %+v", edited)
	}
}

func TestReplyToForeignPostComment(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	first := createTestPost(t, s, alice.Id, "one")
	second := createTestPost(t, s, alice.Id, "two")
	comment, _ := s.AddComment(bob.Id, first.Id, "on first", uuid.NullUUID{})

	_, err := s.AddComment(bob.Id, second.Id, "wrong thread",
		uuid.NullUUID{UUID: comment.Id, Valid: true})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for cross-post reply, got %v", err)
	}
}
