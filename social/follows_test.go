package social

import (
	"errors"
	"testing"

	"github.com/MimansaPatle/pictogram/domain"
)

func TestToggleFollowPublicTarget(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	result, err := s.ToggleFollow(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}
	if !result.Following || result.Requested {
		t.Errorf("Expected immediate follow, got %+v", result)
	}

	if readTestUser(t, s, alice.Id).FollowingCount != 1 {
		t.Error("Expected following_count 1 on follower")
	}
	if readTestUser(t, s, bob.Id).FollowersCount != 1 {
		t.Error("Expected followers_count 1 on target")
	}
}

func TestToggleFollowUnfollow(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	result, err := s.ToggleFollow(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	if result.Following || result.Requested {
		t.Errorf("Expected unfollowed state, got %+v", result)
	}

	if readTestUser(t, s, alice.Id).FollowingCount != 0 {
		t.Error("Expected following_count back to 0")
	}
	if readTestUser(t, s, bob.Id).FollowersCount != 0 {
		t.Error("Expected followers_count back to 0")
	}
}

func TestToggleFollowPrivateTarget(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", true)

	result, err := s.ToggleFollow(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}
	if result.Following || !result.Requested {
		t.Errorf("Expected pending request, got %+v", result)
	}

	// No edge, no counter movement while pending
	if readTestUser(t, s, bob.Id).FollowersCount != 0 {
		t.Error("Pending request must not move counters")
	}

	// Second toggle cancels the request
	result, err = s.ToggleFollow(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if result.Following || result.Requested {
		t.Errorf("Expected cancelled state, got %+v", result)
	}
}

func TestToggleFollowSelf(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)

	_, err := s.ToggleFollow(alice.Id, alice.Id)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for self-follow, got %v", err)
	}
}

func TestAcceptFollowRequest(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", true)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	pending, err := s.PendingFollowRequests(bob.Id)
	if err != nil {
		t.Fatalf("PendingFollowRequests failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending request, got %d", len(pending))
	}

	if err := s.AcceptFollowRequest(bob.Id, pending[0].Id); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	status, err := s.FollowStatus(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("FollowStatus failed: %v", err)
	}
	if !status.Following {
		t.Error("Expected follow edge after accept")
	}
	if readTestUser(t, s, bob.Id).FollowersCount != 1 {
		t.Error("Expected followers_count 1 after accept")
	}

	// A second accept of the same request is invalid
	err = s.AcceptFollowRequest(bob.Id, pending[0].Id)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on double accept, got %v", err)
	}
	if readTestUser(t, s, bob.Id).FollowersCount != 1 {
		t.Error("Double accept must not double-count")
	}
}

func TestAcceptForeignRequest(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", true)
	carol := createTestUser(t, s, "carol", false)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	pending, _ := s.PendingFollowRequests(bob.Id)

	err := s.AcceptFollowRequest(carol.Id, pending[0].Id)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for foreign accept, got %v", err)
	}
}

func TestRejectFollowRequest(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", true)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	pending, _ := s.PendingFollowRequests(bob.Id)

	if err := s.RejectFollowRequest(bob.Id, pending[0].Id); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	status, _ := s.FollowStatus(alice.Id, bob.Id)
	if status.Following || status.Requested {
		t.Errorf("Expected no relationship after reject, got %+v", status)
	}
	if readTestUser(t, s, bob.Id).FollowersCount != 0 {
		t.Error("Reject must not move counters")
	}

	// The requester can request again after a rejection
	result, err := s.ToggleFollow(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("Re-request failed: %v", err)
	}
	if !result.Requested {
		t.Error("Expected a fresh pending request after rejection")
	}
}

func TestBlockSeversFollows(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if _, err := s.ToggleFollow(bob.Id, alice.Id); err != nil {
		t.Fatalf("Follow back failed: %v", err)
	}

	if err := s.BlockUser(alice.Id, bob.Id); err != nil {
		t.Fatalf("Block failed: %v", err)
	}

	for _, user := range []*domain.User{alice, bob} {
		fresh := readTestUser(t, s, user.Id)
		if fresh.FollowersCount != 0 || fresh.FollowingCount != 0 {
			t.Errorf("Expected zeroed counters for %s after block, got %d/%d",
				fresh.Username, fresh.FollowersCount, fresh.FollowingCount)
		}
	}

	// Follows between blocked users are forbidden
	_, err := s.ToggleFollow(bob.Id, alice.Id)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for follow while blocked, got %v", err)
	}
}

func TestUnblockRestoresNothing(t *testing.T) {
	s := setupTestService(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	if _, err := s.ToggleFollow(alice.Id, bob.Id); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if err := s.BlockUser(alice.Id, bob.Id); err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	if err := s.UnblockUser(alice.Id, bob.Id); err != nil {
		t.Fatalf("Unblock failed: %v", err)
	}

	// Severed edges stay severed
	status, _ := s.FollowStatus(alice.Id, bob.Id)
	if status.Following {
		t.Error("Unblock must not restore follow edges")
	}

	if err := s.UnblockUser(alice.Id, bob.Id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for double unblock, got %v", err)
	}
}
