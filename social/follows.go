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

// FollowResult is the state of the (actor, target) pair after a
// follow-graph operation.
type FollowResult struct {
	Following bool   `json:"following"`
	Requested bool   `json:"requested"`
	Message   string `json:"message"`
}

// ToggleFollow drives the follow state machine for one actor action:
// none -> following (public target), none -> pending (private target),
// pending -> none (cancel), following -> none (unfollow). Counters
// move only when an edge is created or deleted.
func (s *Service) ToggleFollow(actorId, targetId uuid.UUID) (*FollowResult, error) {
	if actorId == targetId {
		return nil, fmt.Errorf("cannot follow yourself: %w", domain.ErrInvalidState)
	}

	target, err := s.readUser(targetId)
	if err != nil {
		return nil, err
	}

	err, blocked := s.store.BlockExistsEither(actorId, targetId)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("follow between blocked users: %w", domain.ErrForbidden)
	}

	err, following := s.store.FollowExists(actorId, targetId)
	if err != nil {
		return nil, err
	}
	if following {
		// Unfollow
		err, deleted := s.store.DeleteFollow(actorId, targetId)
		if err != nil {
			return nil, err
		}
		if deleted {
			if err := s.store.ApplyUserDelta(actorId, db.UserFollowingCount, -1); err != nil {
				return nil, err
			}
			if err := s.store.ApplyUserDelta(targetId, db.UserFollowersCount, -1); err != nil {
				return nil, err
			}
		}
		return &FollowResult{Message: "Unfollowed user"}, nil
	}

	err, request := s.store.ReadPendingRequest(actorId, targetId)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if request != nil {
		// Cancel the outstanding request
		if err, _ := s.store.DeletePendingRequest(actorId, targetId); err != nil {
			return nil, err
		}
		return &FollowResult{Message: "Follow request cancelled"}, nil
	}

	if target.IsPrivate {
		newRequest := &domain.FollowRequest{
			Id:          uuid.New(),
			RequesterId: actorId,
			TargetId:    targetId,
			Status:      domain.RequestPending,
			CreatedAt:   time.Now(),
		}
		if err := s.store.CreateFollowRequest(newRequest); err != nil {
			if db.IsUniqueViolation(err) {
				// Raced with an identical request; already pending
				return &FollowResult{Requested: true, Message: "Follow request sent"}, nil
			}
			return nil, err
		}
		if err := s.Notify(targetId, domain.NotifyFollowRequest, actorId, uuid.NullUUID{}, uuid.NullUUID{}); err != nil {
			log.Printf("follow request notification failed: %v", err)
		}
		return &FollowResult{Requested: true, Message: "Follow request sent"}, nil
	}

	if err := s.store.CreateFollow(actorId, targetId); err != nil {
		if db.IsUniqueViolation(err) {
			// Lost a race against an identical follow; edge exists,
			// the winner already moved the counters
			return &FollowResult{Following: true, Message: "Followed user"}, nil
		}
		return nil, err
	}
	if err := s.store.ApplyUserDelta(actorId, db.UserFollowingCount, 1); err != nil {
		return nil, err
	}
	if err := s.store.ApplyUserDelta(targetId, db.UserFollowersCount, 1); err != nil {
		return nil, err
	}
	if err := s.Notify(targetId, domain.NotifyFollow, actorId, uuid.NullUUID{}, uuid.NullUUID{}); err != nil {
		log.Printf("follow notification failed: %v", err)
	}
	return &FollowResult{Following: true, Message: "Followed user"}, nil
}

// AcceptFollowRequest resolves a pending request addressed to the
// caller, creates the edge and moves both counters.
func (s *Service) AcceptFollowRequest(callerId, requestId uuid.UUID) error {
	request, err := s.resolvableRequest(callerId, requestId)
	if err != nil {
		return err
	}

	err, resolved := s.store.ResolveFollowRequest(requestId, domain.RequestAccepted)
	if err != nil {
		return err
	}
	if !resolved {
		return fmt.Errorf("request %s is not pending: %w", requestId, domain.ErrInvalidState)
	}

	if err := s.store.CreateFollow(request.RequesterId, callerId); err != nil {
		if !db.IsUniqueViolation(err) {
			return err
		}
		// Edge already present, counters already counted it
		return nil
	}
	if err := s.store.ApplyUserDelta(request.RequesterId, db.UserFollowingCount, 1); err != nil {
		return err
	}
	if err := s.store.ApplyUserDelta(callerId, db.UserFollowersCount, 1); err != nil {
		return err
	}
	if err := s.Notify(request.RequesterId, domain.NotifyFollowAccepted, callerId, uuid.NullUUID{}, uuid.NullUUID{}); err != nil {
		log.Printf("follow accepted notification failed: %v", err)
	}
	return nil
}

// RejectFollowRequest marks the request rejected; no edge, no counter
// movement, the terminal row stays as history.
func (s *Service) RejectFollowRequest(callerId, requestId uuid.UUID) error {
	if _, err := s.resolvableRequest(callerId, requestId); err != nil {
		return err
	}

	err, resolved := s.store.ResolveFollowRequest(requestId, domain.RequestRejected)
	if err != nil {
		return err
	}
	if !resolved {
		return fmt.Errorf("request %s is not pending: %w", requestId, domain.ErrInvalidState)
	}
	return nil
}

func (s *Service) resolvableRequest(callerId, requestId uuid.UUID) (*domain.FollowRequest, error) {
	err, request := s.store.ReadFollowRequestById(requestId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("follow request %s: %w", requestId, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if request.TargetId != callerId {
		return nil, fmt.Errorf("request %s is not addressed to caller: %w", requestId, domain.ErrInvalidState)
	}
	return request, nil
}

// FollowStatus reports the actor's current state towards the target.
func (s *Service) FollowStatus(actorId, targetId uuid.UUID) (*FollowResult, error) {
	err, following := s.store.FollowExists(actorId, targetId)
	if err != nil {
		return nil, err
	}
	if following {
		return &FollowResult{Following: true}, nil
	}
	err, request := s.store.ReadPendingRequest(actorId, targetId)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return &FollowResult{Requested: request != nil}, nil
}

// BlockUser creates the block and severs follow edges in both
// directions, keeping both users' counters in line with the edges.
func (s *Service) BlockUser(actorId, targetId uuid.UUID) error {
	if actorId == targetId {
		return fmt.Errorf("cannot block yourself: %w", domain.ErrInvalidState)
	}
	if _, err := s.readUser(targetId); err != nil {
		return err
	}

	if err := s.store.CreateBlock(actorId, targetId); err != nil {
		if db.IsUniqueViolation(err) {
			return nil
		}
		return err
	}

	for _, pair := range [][2]uuid.UUID{{actorId, targetId}, {targetId, actorId}} {
		if err, _ := s.store.DeletePendingRequest(pair[0], pair[1]); err != nil {
			return err
		}
		err, deleted := s.store.DeleteFollow(pair[0], pair[1])
		if err != nil {
			return err
		}
		if deleted {
			if err := s.store.ApplyUserDelta(pair[0], db.UserFollowingCount, -1); err != nil {
				return err
			}
			if err := s.store.ApplyUserDelta(pair[1], db.UserFollowersCount, -1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) UnblockUser(actorId, targetId uuid.UUID) error {
	err, deleted := s.store.DeleteBlock(actorId, targetId)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("block of %s: %w", targetId, domain.ErrNotFound)
	}
	return nil
}
