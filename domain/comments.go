package domain

import (
	"github.com/google/uuid"
	"time"
)

type Comment struct {
	Id             uuid.UUID     `json:"id"`
	PostId         uuid.UUID     `json:"post_id"`
	AuthorId       uuid.UUID     `json:"author_id"`
	AuthorUsername string        `json:"author_username"`
	AuthorPhoto    string        `json:"author_photo"`
	Content        string        `json:"content"`
	ParentId       uuid.NullUUID `json:"parent_id"` // set for replies
	RepliesCount   int           `json:"replies_count"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      *time.Time    `json:"updated_at,omitempty"`
}
