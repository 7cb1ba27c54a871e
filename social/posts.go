package social

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/MimansaPatle/pictogram/util"
	"github.com/google/uuid"
)

// CreatePost stores a new post, bumps the author's post count and
// notifies every resolvable @mention. Hashtags are extracted from the
// content.
func (s *Service) CreatePost(authorId uuid.UUID, edit *domain.PostEdit) (*domain.Post, error) {
	if _, err := s.readUser(authorId); err != nil {
		return nil, err
	}

	mentionIds := s.resolveMentions(edit.Content)
	post := &domain.Post{
		Id:           uuid.New(),
		AuthorId:     authorId,
		Content:      edit.Content,
		MediaURL:     edit.MediaURL,
		MediaType:    edit.MediaType,
		ThumbnailURL: edit.ThumbnailURL,
		Tags:         util.ExtractHashtags(edit.Content),
		Mentions:     mentionIds,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreatePost(post); err != nil {
		return nil, err
	}
	if err := s.store.ApplyUserDelta(authorId, db.UserPostsCount, 1); err != nil {
		return nil, err
	}

	for _, mentionedId := range mentionIds {
		err := s.Notify(mentionedId, domain.NotifyMention, authorId,
			uuid.NullUUID{UUID: post.Id, Valid: true}, uuid.NullUUID{})
		if err != nil {
			log.Printf("mention notification failed: %v", err)
		}
	}
	return s.GetPost(authorId, post.Id)
}

// resolveMentions maps @usernames found in the text to user ids,
// skipping names that do not resolve.
func (s *Service) resolveMentions(text string) []uuid.UUID {
	var ids []uuid.UUID
	for _, name := range util.ExtractMentions(text) {
		err, user := s.store.ReadUserByUsername(name)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			log.Printf("mention lookup failed for %s: %v", name, err)
			continue
		}
		ids = append(ids, user.Id)
	}
	return ids
}

// GetPost returns one post if the viewer may see it, records the view
// and sets the viewer flags.
func (s *Service) GetPost(viewerId, postId uuid.UUID) (*domain.Post, error) {
	post, err := s.readPost(postId)
	if err != nil {
		return nil, err
	}
	visible, err := s.IsVisible(viewerId, post)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("post %s: %w", postId, domain.ErrForbidden)
	}

	counted, err := s.recordPostViewOf(post, viewerId)
	if err != nil {
		return nil, err
	}
	if counted {
		post.ViewsCount++
	}

	posts := []domain.Post{*post}
	if err := s.DecoratePosts(viewerId, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// EditPost updates an own post. Hashtags are re-extracted from the new
// content.
func (s *Service) EditPost(callerId, postId uuid.UUID, edit *domain.PostEdit) (*domain.Post, error) {
	post, err := s.readPost(postId)
	if err != nil {
		return nil, err
	}
	if post.AuthorId != callerId {
		return nil, fmt.Errorf("post %s: %w", postId, domain.ErrForbidden)
	}

	edit.Tags = util.ExtractHashtags(edit.Content)
	if err := s.store.UpdatePost(postId, edit); err != nil {
		return nil, err
	}
	return s.GetPost(callerId, postId)
}

// DeletePost removes an own post with everything hanging off it and
// drops the author's post count.
func (s *Service) DeletePost(callerId, postId uuid.UUID) error {
	post, err := s.readPost(postId)
	if err != nil {
		return err
	}
	if post.AuthorId != callerId {
		return fmt.Errorf("post %s: %w", postId, domain.ErrForbidden)
	}
	if err := s.store.DeletePostCascade(postId); err != nil {
		return err
	}
	return s.store.ApplyUserDelta(callerId, db.UserPostsCount, -1)
}
