package social

import (
	"errors"
	"testing"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

func TestSendMessageAndConversations(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	if _, err := s.SendMessage(alice.Id, bob.Id, "hi", uuid.NullUUID{}, uuid.NullUUID{}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := s.SendMessage(alice.Id, bob.Id, "there", uuid.NullUUID{}, uuid.NullUUID{}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	conversations, err := s.Conversations(bob.Id)
	if err != nil {
		t.Fatalf("Conversations failed: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("Expected 1 conversation, got %d", len(conversations))
	}
	if conversations[0].UserId != alice.Id || conversations[0].UnreadCount != 2 {
		t.Errorf("Unexpected conversation: %+v", conversations[0])
	}
	if conversations[0].LastMessage == nil || conversations[0].LastMessage.Content != "there" {
		t.Error("Expected the latest message in the overview")
	}
}

func TestConversationMessagesMarksRead(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	s.SendMessage(alice.Id, bob.Id, "one", uuid.NullUUID{}, uuid.NullUUID{})
	s.SendMessage(alice.Id, bob.Id, "two", uuid.NullUUID{}, uuid.NullUUID{})

	messages, err := s.ConversationMessages(bob.Id, alice.Id, 0, 10)
	if err != nil {
		t.Fatalf("ConversationMessages failed: %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "one" {
		t.Errorf("Expected history oldest first, got %v", messages)
	}

	conversations, _ := s.Conversations(bob.Id)
	if conversations[0].UnreadCount != 0 {
		t.Errorf("Expected unread 0 after opening, got %d", conversations[0].UnreadCount)
	}
}

func TestSendMessageBlocked(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	if err := s.BlockUser(bob.Id, alice.Id); err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	_, err := s.SendMessage(alice.Id, bob.Id, "hello?", uuid.NullUUID{}, uuid.NullUUID{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for blocked message, got %v", err)
	}
}

func TestSendMessageToSelf(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)

	_, err := s.SendMessage(alice.Id, alice.Id, "note", uuid.NullUUID{}, uuid.NullUUID{})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for self message, got %v", err)
	}
}

func TestMarkMessageRead(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	message, err := s.SendMessage(alice.Id, bob.Id, "hi", uuid.NullUUID{}, uuid.NullUUID{})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// Only the recipient may mark a message as read
	if err := s.MarkMessageRead(alice.Id, message.Id); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for sender marking read, got %v", err)
	}
	if err := s.MarkMessageRead(bob.Id, message.Id); err != nil {
		t.Fatalf("MarkMessageRead failed: %v", err)
	}

	conversations, _ := s.Conversations(bob.Id)
	if conversations[0].UnreadCount != 0 {
		t.Errorf("Expected unread 0 after marking read, got %d", conversations[0].UnreadCount)
	}

	if err := s.MarkMessageRead(bob.Id, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown message, got %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	message, err := s.SendMessage(alice.Id, bob.Id, "oops", uuid.NullUUID{}, uuid.NullUUID{})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// Only the sender may delete a message
	if err := s.DeleteMessage(bob.Id, message.Id); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for recipient deleting, got %v", err)
	}
	if err := s.DeleteMessage(alice.Id, message.Id); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}

	messages, err := s.ConversationMessages(bob.Id, alice.Id, 0, 10)
	if err != nil {
		t.Fatalf("ConversationMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("Expected empty history after delete, got %d messages", len(messages))
	}

	if err := s.DeleteMessage(alice.Id, message.Id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for deleted message, got %v", err)
	}
}

func TestShareMissingPost(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	_, err := s.SendMessage(alice.Id, bob.Id, "look",
		uuid.NullUUID{UUID: uuid.New(), Valid: true}, uuid.NullUUID{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing shared post, got %v", err)
	}
}
