package social

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// AddComment creates a comment or, when parentId is set, a reply. The
// post author is notified, the post's comment count moves up and a
// reply bumps its parent's reply count.
func (s *Service) AddComment(actorId, postId uuid.UUID, content string, parentId uuid.NullUUID) (*domain.Comment, error) {
	post, err := s.readPost(postId)
	if err != nil {
		return nil, err
	}
	if parentId.Valid {
		parent, err := s.readComment(parentId.UUID)
		if err != nil {
			return nil, err
		}
		if parent.PostId != postId {
			return nil, fmt.Errorf("comment %s belongs to another post: %w", parentId.UUID, domain.ErrInvalidState)
		}
	}

	comment := &domain.Comment{
		Id:        uuid.New(),
		PostId:    postId,
		AuthorId:  actorId,
		Content:   content,
		ParentId:  parentId,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateComment(comment); err != nil {
		return nil, err
	}
	if err := s.store.ApplyPostDelta(postId, db.PostCommentsCount, 1); err != nil {
		return nil, err
	}
	if parentId.Valid {
		if err := s.store.ApplyCommentDelta(parentId.UUID, db.CommentRepliesCount, 1); err != nil {
			return nil, err
		}
	}

	if post.AuthorId != actorId {
		err := s.Notify(post.AuthorId, domain.NotifyComment, actorId,
			uuid.NullUUID{UUID: postId, Valid: true},
			uuid.NullUUID{UUID: comment.Id, Valid: true})
		if err != nil {
			log.Printf("comment notification failed: %v", err)
		}
	}
	return s.readComment(comment.Id)
}

// PostComments returns one page of a post's top level comments, oldest
// first.
func (s *Service) PostComments(viewerId, postId uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	if _, err := s.GetPostWithoutView(viewerId, postId); err != nil {
		return nil, err
	}
	err, comments := s.store.ReadTopLevelComments(postId, skip, limit)
	if err != nil {
		return nil, err
	}
	return *comments, nil
}

// CommentReplies returns one page of replies to a comment, oldest
// first.
func (s *Service) CommentReplies(parentId uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	if _, err := s.readComment(parentId); err != nil {
		return nil, err
	}
	err, replies := s.store.ReadReplies(parentId, skip, limit)
	if err != nil {
		return nil, err
	}
	return *replies, nil
}

// GetPostWithoutView checks existence and visibility without recording
// a view, for listings hanging off a post.
func (s *Service) GetPostWithoutView(viewerId, postId uuid.UUID) (*domain.Post, error) {
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
	return post, nil
}

func (s *Service) EditComment(callerId, commentId uuid.UUID, content string) (*domain.Comment, error) {
	comment, err := s.readComment(commentId)
	if err != nil {
		return nil, err
	}
	if comment.AuthorId != callerId {
		return nil, fmt.Errorf("comment %s: %w", commentId, domain.ErrForbidden)
	}
	if err := s.store.UpdateComment(commentId, content); err != nil {
		return nil, err
	}
	return s.readComment(commentId)
}

// DeleteComment removes an own comment and its replies. The post's
// comment count drops by the comment plus every deleted reply.
func (s *Service) DeleteComment(callerId, commentId uuid.UUID) error {
	comment, err := s.readComment(commentId)
	if err != nil {
		return err
	}
	if comment.AuthorId != callerId {
		return fmt.Errorf("comment %s: %w", commentId, domain.ErrForbidden)
	}

	err, deletedReplies := s.store.DeleteReplies(commentId)
	if err != nil {
		return err
	}
	if err := s.store.DeleteComment(commentId); err != nil {
		return err
	}
	if comment.ParentId.Valid {
		if err := s.store.ApplyCommentDelta(comment.ParentId.UUID, db.CommentRepliesCount, -1); err != nil {
			return err
		}
	}
	return s.store.ApplyPostDelta(comment.PostId, db.PostCommentsCount, -(deletedReplies + 1))
}

func (s *Service) readComment(id uuid.UUID) (*domain.Comment, error) {
	err, comment := s.store.ReadCommentById(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}
