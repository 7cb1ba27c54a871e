package social

import (
	"testing"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// setupTestService creates a service over an in-memory database
func setupTestService(t *testing.T) *Service {
	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewService(store)
}

func createTestUser(t *testing.T, s *Service, username string, private bool) *domain.User {
	user := &domain.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		DisplayName:  username,
		PasswordHash: "x",
		IsPrivate:    private,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, s *Service, authorId uuid.UUID, content string) *domain.Post {
	post, err := s.CreatePost(authorId, &domain.PostEdit{Content: content})
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}

func readTestUser(t *testing.T, s *Service, id uuid.UUID) *domain.User {
	user, err := s.readUser(id)
	if err != nil {
		t.Fatalf("Failed to read user: %v", err)
	}
	return user
}
