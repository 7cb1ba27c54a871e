package social

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/MimansaPatle/pictogram/util"
	"github.com/google/uuid"
)

const sessionTokenLength = 64

// Register creates an account and logs it in. Username and email must
// be unused; the username rules are the same everywhere in the app.
func (s *Service) Register(username, email, password string, ttl time.Duration) (*domain.User, *domain.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if !util.ValidUsername(username) {
		return nil, nil, fmt.Errorf("invalid username %q: %w", username, domain.ErrInvalidState)
	}
	if len(password) < 8 {
		return nil, nil, fmt.Errorf("password too short: %w", domain.ErrInvalidState)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		DisplayName:  username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, nil, fmt.Errorf("username or email already taken: %w", domain.ErrConflict)
		}
		return nil, nil, err
	}

	session, err := s.createSession(user.Id, ttl)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies the credentials and issues a session token. The
// identifier is a username or an email address.
func (s *Service) Login(identifier, password string, ttl time.Duration) (*domain.User, *domain.Session, error) {
	identifier = strings.TrimSpace(identifier)
	err, user := s.store.ReadUserByUsername(identifier)
	if errors.Is(err, sql.ErrNoRows) {
		err, user = s.store.ReadUserByEmail(strings.ToLower(identifier))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("unknown credentials: %w", domain.ErrForbidden)
	}
	if err != nil {
		return nil, nil, err
	}
	if !util.CheckPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("unknown credentials: %w", domain.ErrForbidden)
	}

	session, err := s.createSession(user.Id, ttl)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *Service) createSession(userId uuid.UUID, ttl time.Duration) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		Token:     util.RandomToken(sessionTokenLength),
		UserId:    userId,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) Logout(token string) error {
	return s.store.DeleteSession(token)
}

// Authenticate resolves a bearer token to its account.
func (s *Service) Authenticate(token string) (*domain.User, error) {
	err, user := s.store.ReadSessionUser(token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", domain.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns a user's profile with the viewer's follow state
// attached. A block in either direction hides the profile entirely.
type Profile struct {
	domain.User
	IsFollowing   bool `json:"is_following"`
	HasRequested  bool `json:"has_requested"`
	IsFollowingMe bool `json:"is_following_me"`
	IsBlocked     bool `json:"is_blocked"`
}

func (s *Service) Profile(viewerId, userId uuid.UUID) (*Profile, error) {
	user, err := s.readUser(userId)
	if err != nil {
		return nil, err
	}
	profile := &Profile{User: *user}
	if viewerId == userId {
		return profile, nil
	}

	err, blockedByViewer := s.store.BlockExists(viewerId, userId)
	if err != nil {
		return nil, err
	}
	err, blockedByUser := s.store.BlockExists(userId, viewerId)
	if err != nil {
		return nil, err
	}
	if blockedByUser {
		return nil, fmt.Errorf("user %s: %w", userId, domain.ErrNotFound)
	}
	profile.IsBlocked = blockedByViewer

	status, err := s.FollowStatus(viewerId, userId)
	if err != nil {
		return nil, err
	}
	profile.IsFollowing = status.Following
	profile.HasRequested = status.Requested

	err, followsMe := s.store.FollowExists(userId, viewerId)
	if err != nil {
		return nil, err
	}
	profile.IsFollowingMe = followsMe
	return profile, nil
}

// UpdateProfile applies the set fields to the caller's own profile.
func (s *Service) UpdateProfile(callerId uuid.UUID, update *domain.ProfileUpdate) (*domain.User, error) {
	if err := s.store.UpdateUserProfile(callerId, update); err != nil {
		return nil, err
	}
	return s.readUser(callerId)
}

func (s *Service) SearchUsers(query string, limit int) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.User{}, nil
	}
	err, users := s.store.SearchUsers(query, limit)
	if err != nil {
		return nil, err
	}
	return *users, nil
}

func (s *Service) TrendingUsers(limit int) ([]domain.User, error) {
	err, users := s.store.TrendingUsers(limit)
	if err != nil {
		return nil, err
	}
	return *users, nil
}

// Followers lists who follows the user; Following lists who the user
// follows.
func (s *Service) Followers(userId uuid.UUID) ([]domain.User, error) {
	if _, err := s.readUser(userId); err != nil {
		return nil, err
	}
	err, ids := s.store.ReadFollowerIds(userId)
	if err != nil {
		return nil, err
	}
	return s.usersByIds(ids)
}

func (s *Service) Following(userId uuid.UUID) ([]domain.User, error) {
	if _, err := s.readUser(userId); err != nil {
		return nil, err
	}
	err, ids := s.store.ReadFollowingIds(userId)
	if err != nil {
		return nil, err
	}
	return s.usersByIds(ids)
}

// BlockedUsers lists the caller's own block list.
func (s *Service) BlockedUsers(callerId uuid.UUID) ([]domain.User, error) {
	err, ids := s.store.ReadBlockedIds(callerId)
	if err != nil {
		return nil, err
	}
	return s.usersByIds(ids)
}

func (s *Service) usersByIds(ids []uuid.UUID) ([]domain.User, error) {
	err, users := s.store.ReadUsersByIds(ids)
	if err != nil {
		return nil, err
	}
	return *users, nil
}

// PendingFollowRequests lists open requests addressed to the caller,
// hydrated with the requester's profile basics.
type PendingRequest struct {
	domain.FollowRequest
	RequesterUsername string `json:"requester_username"`
	RequesterPhoto    string `json:"requester_photo"`
}

func (s *Service) PendingFollowRequests(callerId uuid.UUID) ([]PendingRequest, error) {
	err, requests := s.store.ReadPendingRequestsForTarget(callerId)
	if err != nil {
		return nil, err
	}

	requesterIds := make([]uuid.UUID, 0, len(*requests))
	for _, request := range *requests {
		requesterIds = append(requesterIds, request.RequesterId)
	}
	err, requesters := s.store.ReadUsersByIds(requesterIds)
	if err != nil {
		return nil, err
	}
	requesterById := map[uuid.UUID]domain.User{}
	for _, requester := range *requesters {
		requesterById[requester.Id] = requester
	}

	pending := make([]PendingRequest, 0, len(*requests))
	for _, request := range *requests {
		entry := PendingRequest{FollowRequest: request}
		if requester, ok := requesterById[request.RequesterId]; ok {
			entry.RequesterUsername = requester.Username
			entry.RequesterPhoto = requester.PhotoURL
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

// ReportContent files a moderation report against a user, post or
// comment.
func (s *Service) ReportContent(reporterId uuid.UUID, targetType, targetId, reason, description string) error {
	switch targetType {
	case "user", "post", "comment":
	default:
		return fmt.Errorf("unknown report target %q: %w", targetType, domain.ErrInvalidState)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("report reason required: %w", domain.ErrInvalidState)
	}
	return s.store.CreateReport(uuid.New(), reporterId, targetType, targetId, reason, description)
}

// PublicUserFeed returns a public user's recent posts for anonymous
// consumption. Private profiles behave as missing.
func (s *Service) PublicUserFeed(username string, limit int) (*domain.User, []domain.Post, error) {
	err, user := s.store.ReadUserByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	if user.IsPrivate {
		return nil, nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
	}

	err, posts := s.store.QueryPosts(&db.PostQuery{
		AuthorIds: []uuid.UUID{user.Id},
		Limit:     limit,
	})
	if err != nil {
		return nil, nil, err
	}
	return user, *posts, nil
}

// TrendingHashtags returns the most used tags of the last week.
func (s *Service) TrendingHashtags(limit int) ([]db.TagCount, error) {
	err, tags := s.store.ReadTrendingTags(time.Now().Add(-7*24*time.Hour), limit)
	if err != nil {
		return nil, err
	}
	return *tags, nil
}

// SearchHashtags finds tags by prefix. A leading '#' is tolerated,
// since tags are stored without it.
func (s *Service) SearchHashtags(query string, limit int) ([]db.TagCount, error) {
	prefix := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(query), "#"))
	if prefix == "" {
		return []db.TagCount{}, nil
	}
	err, tags := s.store.SearchTags(prefix, limit)
	if err != nil {
		return nil, err
	}
	return *tags, nil
}
