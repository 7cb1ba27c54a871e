package domain

import (
	"github.com/google/uuid"
	"time"
)

type Message struct {
	Id          uuid.UUID     `json:"id"`
	SenderId    uuid.UUID     `json:"sender_id"`
	RecipientId uuid.UUID     `json:"recipient_id"`
	Content     string        `json:"content"`
	PostId      uuid.NullUUID `json:"post_id"`  // set when sharing a post
	StoryId     uuid.NullUUID `json:"story_id"` // set when replying to a story
	Read        bool          `json:"read"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Conversation summarizes the message history with one peer.
type Conversation struct {
	UserId      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	LastMessage *Message  `json:"last_message"`
	UnreadCount int       `json:"unread_count"`
}
