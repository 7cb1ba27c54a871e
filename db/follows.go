package db

import (
	"database/sql"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// Follow edge queries
const (
	sqlInsertFollow = `INSERT INTO follows(follower_id, following_id, created_at) VALUES (?, ?, ?)`
	sqlDeleteFollow = `DELETE FROM follows WHERE follower_id = ? AND following_id = ?`
	sqlSelectFollow = `SELECT 1 FROM follows WHERE follower_id = ? AND following_id = ?`
	sqlFollowingIds = `SELECT following_id FROM follows WHERE follower_id = ?`
	sqlFollowerIds  = `SELECT follower_id FROM follows WHERE following_id = ?`
)

// CreateFollow inserts the edge; a UNIQUE violation surfaces to the
// caller, which treats it as already-following.
func (db *DB) CreateFollow(followerId, followingId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertFollow, followerId.String(), followingId.String(), time.Now())
		return err
	})
}

// DeleteFollow removes the edge and reports whether it existed.
func (db *DB) DeleteFollow(followerId, followingId uuid.UUID) (error, bool) {
	var deleted bool
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeleteFollow, followerId.String(), followingId.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = n > 0
		return err
	})
	return err, deleted
}

func (db *DB) FollowExists(followerId, followingId uuid.UUID) (error, bool) {
	var one int
	err := db.db.QueryRow(sqlSelectFollow, followerId.String(), followingId.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		return err, false
	}
	return nil, true
}

func (db *DB) ReadFollowingIds(followerId uuid.UUID) (error, []uuid.UUID) {
	return db.queryIds(sqlFollowingIds, followerId.String())
}

func (db *DB) ReadFollowerIds(followingId uuid.UUID) (error, []uuid.UUID) {
	return db.queryIds(sqlFollowerIds, followingId.String())
}

func (db *DB) queryIds(query string, args ...any) (error, []uuid.UUID) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return err, ids
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return err, ids
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return err, ids
	}
	return nil, ids
}

// Follow request queries
const (
	sqlInsertFollowRequest = `INSERT INTO follow_requests(id, requester_id, target_id, status, created_at)
                        VALUES (?, ?, ?, 'pending', ?)`
	sqlSelectRequestFields  = `id, requester_id, target_id, status, created_at`
	sqlSelectRequestById    = `SELECT ` + sqlSelectRequestFields + ` FROM follow_requests WHERE id = ?`
	sqlSelectPendingRequest = `SELECT ` + sqlSelectRequestFields + ` FROM follow_requests
                        WHERE requester_id = ? AND target_id = ? AND status = 'pending'`
	sqlSelectPendingForTarget = `SELECT ` + sqlSelectRequestFields + ` FROM follow_requests
                        WHERE target_id = ? AND status = 'pending' ORDER BY created_at DESC`
	// The status guard makes a racing double-resolve a no-op
	sqlResolveRequest       = `UPDATE follow_requests SET status = ?, updated_at = ? WHERE id = ? AND status = 'pending'`
	sqlDeletePendingRequest = `DELETE FROM follow_requests WHERE requester_id = ? AND target_id = ? AND status = 'pending'`
)

func (db *DB) CreateFollowRequest(request *domain.FollowRequest) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertFollowRequest,
			request.Id.String(),
			request.RequesterId.String(),
			request.TargetId.String(),
			request.CreatedAt,
		)
		return err
	})
}

func scanRequest(row interface{ Scan(...any) error }) (error, *domain.FollowRequest) {
	var request domain.FollowRequest
	var idStr, requesterStr, targetStr string
	err := row.Scan(&idStr, &requesterStr, &targetStr, &request.Status, &request.CreatedAt)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	request.Id, _ = uuid.Parse(idStr)
	request.RequesterId, _ = uuid.Parse(requesterStr)
	request.TargetId, _ = uuid.Parse(targetStr)
	return nil, &request
}

func (db *DB) ReadFollowRequestById(id uuid.UUID) (error, *domain.FollowRequest) {
	return scanRequest(db.db.QueryRow(sqlSelectRequestById, id.String()))
}

func (db *DB) ReadPendingRequest(requesterId, targetId uuid.UUID) (error, *domain.FollowRequest) {
	return scanRequest(db.db.QueryRow(sqlSelectPendingRequest, requesterId.String(), targetId.String()))
}

func (db *DB) ReadPendingRequestsForTarget(targetId uuid.UUID) (error, *[]domain.FollowRequest) {
	rows, err := db.db.Query(sqlSelectPendingForTarget, targetId.String())
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	requests := []domain.FollowRequest{}
	for rows.Next() {
		err, request := scanRequest(rows)
		if err != nil {
			return err, &requests
		}
		requests = append(requests, *request)
	}
	if err = rows.Err(); err != nil {
		return err, &requests
	}
	return nil, &requests
}

// ResolveFollowRequest moves a pending request to a terminal status and
// reports whether this call won the transition.
func (db *DB) ResolveFollowRequest(id uuid.UUID, status string) (error, bool) {
	var resolved bool
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlResolveRequest, status, time.Now(), id.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		resolved = n > 0
		return err
	})
	return err, resolved
}

// DeletePendingRequest cancels an outstanding request (requester
// toggled follow again before a decision).
func (db *DB) DeletePendingRequest(requesterId, targetId uuid.UUID) (error, bool) {
	var deleted bool
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeletePendingRequest, requesterId.String(), targetId.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = n > 0
		return err
	})
	return err, deleted
}

// Block queries
const (
	sqlInsertBlock       = `INSERT INTO blocks(blocker_id, blocked_id, created_at) VALUES (?, ?, ?)`
	sqlDeleteBlock       = `DELETE FROM blocks WHERE blocker_id = ? AND blocked_id = ?`
	sqlSelectBlock       = `SELECT 1 FROM blocks WHERE blocker_id = ? AND blocked_id = ?`
	sqlSelectBlockEither = `SELECT 1 FROM blocks WHERE (blocker_id = ? AND blocked_id = ?)
                        OR (blocker_id = ? AND blocked_id = ?)`
	sqlBlockedIds = `SELECT blocked_id FROM blocks WHERE blocker_id = ?`
)

func (db *DB) CreateBlock(blockerId, blockedId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertBlock, blockerId.String(), blockedId.String(), time.Now())
		return err
	})
}

func (db *DB) DeleteBlock(blockerId, blockedId uuid.UUID) (error, bool) {
	var deleted bool
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeleteBlock, blockerId.String(), blockedId.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = n > 0
		return err
	})
	return err, deleted
}

func (db *DB) BlockExists(blockerId, blockedId uuid.UUID) (error, bool) {
	var one int
	err := db.db.QueryRow(sqlSelectBlock, blockerId.String(), blockedId.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		return err, false
	}
	return nil, true
}

// BlockExistsEither reports whether either user has blocked the other.
func (db *DB) BlockExistsEither(a, b uuid.UUID) (error, bool) {
	var one int
	err := db.db.QueryRow(sqlSelectBlockEither, a.String(), b.String(), b.String(), a.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		return err, false
	}
	return nil, true
}

func (db *DB) ReadBlockedIds(blockerId uuid.UUID) (error, []uuid.UUID) {
	return db.queryIds(sqlBlockedIds, blockerId.String())
}
