package social

import (
	"log"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// ToggleResult is the state of a toggleable engagement edge after the
// operation, with the subject's updated counter where one exists.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// ToggleLike flips the like edge for (post, actor). Edge existence is
// the only state consulted; a repeated or racing identical call lands
// in the same final state without double-counting.
func (s *Service) ToggleLike(actorId, postId uuid.UUID) (*ToggleResult, error) {
	post, err := s.readPost(postId)
	if err != nil {
		return nil, err
	}

	err, liked := s.store.LikeExists(postId, actorId)
	if err != nil {
		return nil, err
	}

	if liked {
		err, deleted := s.store.DeleteLike(postId, actorId)
		if err != nil {
			return nil, err
		}
		count := post.LikesCount
		if deleted {
			if err := s.store.ApplyPostDelta(postId, db.PostLikesCount, -1); err != nil {
				return nil, err
			}
			if count > 0 {
				count--
			}
		}
		return &ToggleResult{Active: false, Count: count}, nil
	}

	if err := s.store.CreateLike(postId, actorId); err != nil {
		if db.IsUniqueViolation(err) {
			// Raced with an identical like; already in desired state
			return &ToggleResult{Active: true, Count: post.LikesCount}, nil
		}
		return nil, err
	}
	if err := s.store.ApplyPostDelta(postId, db.PostLikesCount, 1); err != nil {
		return nil, err
	}
	if post.AuthorId != actorId {
		err := s.Notify(post.AuthorId, domain.NotifyLike, actorId,
			uuid.NullUUID{UUID: postId, Valid: true}, uuid.NullUUID{})
		if err != nil {
			log.Printf("like notification failed: %v", err)
		}
	}
	return &ToggleResult{Active: true, Count: post.LikesCount + 1}, nil
}

// ToggleBookmark flips the bookmark edge. Bookmarks carry no counter
// and no notification.
func (s *Service) ToggleBookmark(actorId, postId uuid.UUID) (*ToggleResult, error) {
	if _, err := s.readPost(postId); err != nil {
		return nil, err
	}

	err, bookmarked := s.store.BookmarkExists(postId, actorId)
	if err != nil {
		return nil, err
	}

	if bookmarked {
		if err, _ := s.store.DeleteBookmark(postId, actorId); err != nil {
			return nil, err
		}
		return &ToggleResult{Active: false}, nil
	}

	if err := s.store.CreateBookmark(postId, actorId); err != nil {
		if db.IsUniqueViolation(err) {
			return &ToggleResult{Active: true}, nil
		}
		return nil, err
	}
	return &ToggleResult{Active: true}, nil
}

// RecordPostView appends the (post, viewer) view edge and counts it at
// most once for the lifetime of the pair. Author views do not count.
// Returns whether the counter moved.
func (s *Service) RecordPostView(viewerId, postId uuid.UUID) (bool, error) {
	post, err := s.readPost(postId)
	if err != nil {
		return false, err
	}
	return s.recordPostViewOf(post, viewerId)
}

func (s *Service) recordPostViewOf(post *domain.Post, viewerId uuid.UUID) (bool, error) {
	if post.AuthorId == viewerId {
		return false, nil
	}
	if err := s.store.CreatePostView(post.Id, viewerId); err != nil {
		if db.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.store.ApplyPostDelta(post.Id, db.PostViewsCount, 1); err != nil {
		return false, err
	}
	return true, nil
}

// RecordStoryView behaves like RecordPostView for stories.
func (s *Service) RecordStoryView(viewerId, storyId uuid.UUID) (bool, error) {
	story, err := s.readStory(storyId)
	if err != nil {
		return false, err
	}
	if story.AuthorId == viewerId {
		return false, nil
	}
	if err := s.store.CreateStoryView(storyId, viewerId); err != nil {
		if db.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.store.ApplyStoryDelta(storyId, db.StoryViewsCount, 1); err != nil {
		return false, err
	}
	return true, nil
}
