// Package social implements the interaction engine: the follow-graph
// state machine, idempotent engagement toggles, notification dedup and
// privacy-aware visibility filtering. The db handle is the only
// dependency; correctness under concurrent duplicate requests relies
// on its uniqueness constraints and atomic counter updates.
package social

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

type Service struct {
	store *db.DB
}

func NewService(store *db.DB) *Service {
	return &Service{store: store}
}

func (s *Service) readUser(id uuid.UUID) (*domain.User, error) {
	err, user := s.store.ReadUserById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) readPost(id uuid.UUID) (*domain.Post, error) {
	err, post := s.store.ReadPostById(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) readStory(id uuid.UUID) (*domain.Story, error) {
	err, story := s.store.ReadStoryById(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return story, nil
}
