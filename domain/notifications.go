package domain

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

const (
	NotifyFollow         = "follow"
	NotifyFollowRequest  = "follow_request"
	NotifyFollowAccepted = "follow_accepted"
	NotifyLike           = "like"
	NotifyComment        = "comment"
	NotifyMention        = "mention"
)

// Notification identity is (recipient, type, actor, post, comment);
// DedupKey denormalizes it so the upsert is a single indexed lookup.
type Notification struct {
	Id          uuid.UUID     `json:"id"`
	RecipientId uuid.UUID     `json:"recipient_id"`
	Type        string        `json:"type"`
	ActorId     uuid.UUID     `json:"actor_id"`
	PostId      uuid.NullUUID `json:"post_id"`
	CommentId   uuid.NullUUID `json:"comment_id"`
	Read        bool          `json:"read"`
	CreatedAt   time.Time     `json:"created_at"`

	// Denormalized actor/post/comment context for rendering
	ActorUsername    string `json:"actor_username,omitempty"`
	ActorDisplayName string `json:"actor_displayName,omitempty"`
	ActorPhoto       string `json:"actor_photo,omitempty"`
	PostContent      string `json:"post_content,omitempty"`
	CommentContent   string `json:"comment_content,omitempty"`
}

// DedupKey returns the stable identity key of the notification.
func (n *Notification) DedupKey() string {
	return NotificationDedupKey(n.RecipientId, n.Type, n.ActorId, n.PostId, n.CommentId)
}

func NotificationDedupKey(recipient uuid.UUID, kind string, actor uuid.UUID, postId, commentId uuid.NullUUID) string {
	post := "-"
	if postId.Valid {
		post = postId.UUID.String()
	}
	comment := "-"
	if commentId.Valid {
		comment = commentId.UUID.String()
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s", recipient, kind, actor, post, comment)
}
