package domain

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

type Post struct {
	Id             uuid.UUID   `json:"id"`
	AuthorId       uuid.UUID   `json:"author_id"`
	AuthorUsername string      `json:"author_username"`
	AuthorPhoto    string      `json:"author_photo"`
	Content        string      `json:"content"`
	MediaURL       string      `json:"media_url"`
	MediaType      string      `json:"media_type"` // "image", "video" or "" for text posts
	ThumbnailURL   string      `json:"thumbnail_url"`
	Tags           []string    `json:"tags"`
	Mentions       []uuid.UUID `json:"mentions"`
	LikesCount     int         `json:"likes_count"`
	CommentsCount  int         `json:"comments_count"`
	ViewsCount     int         `json:"views_count"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`

	// Viewer-specific flags, populated by the service layer
	IsLiked      bool `json:"is_liked"`
	IsBookmarked bool `json:"is_bookmarked"`
}

// PostEdit carries the mutable fields of a post.
type PostEdit struct {
	Content      string
	MediaURL     string
	MediaType    string
	ThumbnailURL string
	Tags         []string
}

func (p *Post) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tAuthor: %s \n\tContent: %s \n\tCreatedAt: %s)", p.Id, p.AuthorUsername, p.Content, p.CreatedAt)
}
