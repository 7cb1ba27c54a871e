package domain

import (
	"github.com/google/uuid"
	"time"
)

// Story is ephemeral content that expires 24 hours after creation.
// Expired stories are removed by a periodic sweep together with their
// view edges.
type Story struct {
	Id             uuid.UUID `json:"id"`
	AuthorId       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	AuthorPhoto    string    `json:"author_photo"`
	MediaURL       string    `json:"media_url"`
	MediaType      string    `json:"media_type"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	ViewsCount     int       `json:"views_count"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`

	// Viewer-specific flag, populated by the service layer
	IsViewed bool `json:"is_viewed"`
}

// StoryViewer is one entry of the owner-only viewer list.
type StoryViewer struct {
	ViewerId       uuid.UUID `json:"viewer_id"`
	ViewerUsername string    `json:"viewer_username"`
	ViewerPhoto    string    `json:"viewer_photo"`
	ViewedAt       time.Time `json:"viewed_at"`
}
