package domain

import (
	"github.com/google/uuid"
	"time"
)

// FollowEdge is a directed follower -> following relationship. Its
// existence is the sole source of truth for the follower/following
// counters on both users.
type FollowEdge struct {
	FollowerId  uuid.UUID `json:"follower_id"`
	FollowingId uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FollowRequest tracks a follow attempt against a private account.
// Terminal rows (accepted/rejected) are kept as history; at most one
// pending row exists per (requester, target) pair.
type FollowRequest struct {
	Id          uuid.UUID `json:"request_id"`
	RequesterId uuid.UUID `json:"requester_id"`
	TargetId    uuid.UUID `json:"target_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Block hides two users from each other and severs any follow edges
// between them in both directions.
type Block struct {
	BlockerId uuid.UUID `json:"blocker_id"`
	BlockedId uuid.UUID `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
