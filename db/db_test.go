package db

import (
	"testing"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *DB {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func insertUser(t *testing.T, db *DB, username string) uuid.UUID {
	user := &domain.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		DisplayName:  username,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	if err := db.CreateUser(user); err != nil {
		t.Fatalf("Failed to insert user %s: %v", username, err)
	}
	return user.Id
}

func TestFollowEdgeUnique(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")
	bob := insertUser(t, db, "bob")

	if err := db.CreateFollow(alice, bob); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := db.CreateFollow(alice, bob)
	if err == nil {
		t.Fatal("Expected unique violation on duplicate edge")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("Expected IsUniqueViolation to match, got %v", err)
	}
}

func TestPendingRequestPartialUnique(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")
	bob := insertUser(t, db, "bob")

	request := &domain.FollowRequest{
		Id:          uuid.New(),
		RequesterId: alice,
		TargetId:    bob,
		Status:      domain.RequestPending,
		CreatedAt:   time.Now(),
	}
	if err := db.CreateFollowRequest(request); err != nil {
		t.Fatalf("First request failed: %v", err)
	}

	duplicate := &domain.FollowRequest{
		Id:          uuid.New(),
		RequesterId: alice,
		TargetId:    bob,
		Status:      domain.RequestPending,
		CreatedAt:   time.Now(),
	}
	if err := db.CreateFollowRequest(duplicate); !IsUniqueViolation(err) {
		t.Errorf("Expected unique violation on second pending request, got %v", err)
	}

	// A terminal row does not block a fresh pending one
	err, resolved := db.ResolveFollowRequest(request.Id, domain.RequestRejected)
	if err != nil || !resolved {
		t.Fatalf("Resolve failed: %v (resolved=%v)", err, resolved)
	}
	if err := db.CreateFollowRequest(duplicate); err != nil {
		t.Errorf("Expected fresh request after rejection, got %v", err)
	}
}

func TestResolveRequestOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")
	bob := insertUser(t, db, "bob")

	request := &domain.FollowRequest{
		Id:          uuid.New(),
		RequesterId: alice,
		TargetId:    bob,
		Status:      domain.RequestPending,
		CreatedAt:   time.Now(),
	}
	if err := db.CreateFollowRequest(request); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	err, resolved := db.ResolveFollowRequest(request.Id, domain.RequestAccepted)
	if err != nil || !resolved {
		t.Fatalf("First resolve should win, got %v (resolved=%v)", err, resolved)
	}
	err, resolved = db.ResolveFollowRequest(request.Id, domain.RequestAccepted)
	if err != nil {
		t.Fatalf("Second resolve errored: %v", err)
	}
	if resolved {
		t.Error("Second resolve must not win the transition")
	}
}

func TestNotificationUpsert(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")
	bob := insertUser(t, db, "bob")

	notification := &domain.Notification{
		Id:          uuid.New(),
		RecipientId: alice,
		Type:        domain.NotifyFollow,
		ActorId:     bob,
		CreatedAt:   time.Now(),
	}
	if err := db.UpsertNotification(notification); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if err := db.MarkNotificationRead(notification.Id); err != nil {
		t.Fatalf("Mark read failed: %v", err)
	}

	repeat := &domain.Notification{
		Id:          uuid.New(),
		RecipientId: alice,
		Type:        domain.NotifyFollow,
		ActorId:     bob,
		CreatedAt:   time.Now().Add(time.Minute),
	}
	if err := db.UpsertNotification(repeat); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	err, notifications := db.ReadNotifications(alice, false, 0, 10)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(*notifications) != 1 {
		t.Fatalf("Expected the upsert to collapse into 1 row, got %d", len(*notifications))
	}
	row := (*notifications)[0]
	if row.Id != notification.Id {
		t.Error("Upsert must keep the original row id")
	}
	if row.Read {
		t.Error("Upsert must flip the row back to unread")
	}
}

func TestCountersClampAtZero(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")

	if err := db.ApplyUserDelta(alice, UserFollowersCount, -5); err != nil {
		t.Fatalf("Delta failed: %v", err)
	}
	err, user := db.ReadUserById(alice)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if user.FollowersCount != 0 {
		t.Errorf("Expected clamped count 0, got %d", user.FollowersCount)
	}
}

func TestApplyDeltaUnknownField(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")

	if err := db.ApplyUserDelta(alice, "password_hash", 1); err == nil {
		t.Error("Expected error for non-counter field")
	}
}

func TestSessionExpiry(t *testing.T) {
	db := setupTestDB(t)
	alice := insertUser(t, db, "alice")

	session := &domain.Session{
		Token:     "tok-expired",
		UserId:    alice,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.CreateSession(session); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err, _ := db.ReadSessionUser("tok-expired"); err == nil {
		t.Error("Expected expired session to behave as missing")
	}

	if err := db.DeleteExpiredSessions(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
}

func TestSearchUsersEscapesLike(t *testing.T) {
	db := setupTestDB(t)
	insertUser(t, db, "percent_user")
	insertUser(t, db, "plain")

	// A literal underscore must not act as a wildcard
	err, users := db.SearchUsers("percent_", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(*users) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(*users))
	}

	err, users = db.SearchUsers("%", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(*users) != 0 {
		t.Errorf("Expected literal %% to match nothing, got %d", len(*users))
	}
}
