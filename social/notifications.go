package social

import (
	"fmt"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// Notify records a notification for the recipient. Repeated identical
// events collapse into one row bumped back to unread-recent. Self
// notifications are silently dropped.
func (s *Service) Notify(recipientId uuid.UUID, kind string, actorId uuid.UUID, postId, commentId uuid.NullUUID) error {
	if recipientId == actorId {
		return nil
	}
	return s.store.UpsertNotification(&domain.Notification{
		Id:          uuid.New(),
		RecipientId: recipientId,
		Type:        kind,
		ActorId:     actorId,
		PostId:      postId,
		CommentId:   commentId,
		CreatedAt:   time.Now(),
	})
}

// ListNotifications returns the caller's notifications newest first,
// hydrated with actor and post/comment context.
func (s *Service) ListNotifications(callerId uuid.UUID, unreadOnly bool, skip, limit int) ([]domain.Notification, error) {
	err, notifications := s.store.ReadNotifications(callerId, unreadOnly, skip, limit)
	if err != nil {
		return nil, err
	}
	result := *notifications
	if err := s.hydrateNotifications(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) hydrateNotifications(notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	actorIds := []uuid.UUID{}
	postIds := []uuid.UUID{}
	seenActors := map[uuid.UUID]bool{}
	seenPosts := map[uuid.UUID]bool{}
	for _, n := range notifications {
		if !seenActors[n.ActorId] {
			seenActors[n.ActorId] = true
			actorIds = append(actorIds, n.ActorId)
		}
		if n.PostId.Valid && !seenPosts[n.PostId.UUID] {
			seenPosts[n.PostId.UUID] = true
			postIds = append(postIds, n.PostId.UUID)
		}
	}

	err, actors := s.store.ReadUsersByIds(actorIds)
	if err != nil {
		return err
	}
	actorById := map[uuid.UUID]domain.User{}
	for _, actor := range *actors {
		actorById[actor.Id] = actor
	}

	postById := map[uuid.UUID]domain.Post{}
	if len(postIds) > 0 {
		err, posts := s.store.ReadPostsByIds(postIds)
		if err != nil {
			return err
		}
		for _, post := range *posts {
			postById[post.Id] = post
		}
	}

	for i := range notifications {
		n := &notifications[i]
		if actor, ok := actorById[n.ActorId]; ok {
			n.ActorUsername = actor.Username
			n.ActorDisplayName = actor.DisplayName
			n.ActorPhoto = actor.PhotoURL
		}
		if n.PostId.Valid {
			if post, ok := postById[n.PostId.UUID]; ok {
				n.PostContent = post.Content
			}
		}
		if n.CommentId.Valid {
			err, comment := s.store.ReadCommentById(n.CommentId.UUID)
			if err == nil && comment != nil {
				n.CommentContent = comment.Content
			}
		}
	}
	return nil
}

// MarkNotificationRead flips one notification to read. Only its
// recipient may touch it.
func (s *Service) MarkNotificationRead(callerId, notificationId uuid.UUID) error {
	if err := s.ownNotification(callerId, notificationId); err != nil {
		return err
	}
	return s.store.MarkNotificationRead(notificationId)
}

// MarkAllNotificationsRead returns how many notifications flipped.
func (s *Service) MarkAllNotificationsRead(callerId uuid.UUID) (int, error) {
	err, marked := s.store.MarkAllNotificationsRead(callerId)
	return marked, err
}

func (s *Service) DeleteNotification(callerId, notificationId uuid.UUID) error {
	if err := s.ownNotification(callerId, notificationId); err != nil {
		return err
	}
	return s.store.DeleteNotification(notificationId)
}

func (s *Service) UnreadNotificationCount(callerId uuid.UUID) (int, error) {
	err, count := s.store.CountUnreadNotifications(callerId)
	return count, err
}

func (s *Service) ownNotification(callerId, notificationId uuid.UUID) error {
	err, n := s.store.ReadNotificationById(notificationId)
	if err != nil || n == nil {
		return fmt.Errorf("notification %s: %w", notificationId, domain.ErrNotFound)
	}
	if n.RecipientId != callerId {
		return fmt.Errorf("notification %s: %w", notificationId, domain.ErrForbidden)
	}
	return nil
}
