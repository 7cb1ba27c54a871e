package domain

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

type User struct {
	Id             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	PasswordHash   string    `json:"-"`
	PhotoURL       string    `json:"photoURL"`
	Bio            string    `json:"bio"`
	IsPrivate      bool      `json:"is_private"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostsCount     int       `json:"posts_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProfileUpdate carries the optional fields of a profile edit; nil
// means leave unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	PhotoURL    *string
	IsPrivate   *bool
}

func (u *User) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tUsername: %s \n\tFollowers: %d \n\tCreatedAt: %s)", u.Id, u.Username, u.FollowersCount, u.CreatedAt)
}
