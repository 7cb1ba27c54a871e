package domain

import (
	"github.com/google/uuid"
	"time"
)

// Session is a server-side login token. Requests carry the token as a
// bearer credential; expired rows are ignored on lookup.
type Session struct {
	Token     string
	UserId    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}
