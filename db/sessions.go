package db

import (
	"database/sql"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
)

const (
	sqlInsertSession = `INSERT INTO sessions(token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`
	sqlSelectSession = `SELECT users.id, users.username, users.email, users.display_name, users.password_hash,
                        users.photo_url, users.bio, users.is_private, users.followers_count, users.following_count,
                        users.posts_count, users.created_at FROM users
                        INNER JOIN sessions ON sessions.user_id = users.id
                        WHERE sessions.token = ? AND sessions.expires_at > ?`
	sqlDeleteSession         = `DELETE FROM sessions WHERE token = ?`
	sqlDeleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= ?`
)

func (db *DB) CreateSession(session *domain.Session) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertSession,
			session.Token,
			session.UserId.String(),
			session.CreatedAt,
			session.ExpiresAt,
		)
		return err
	})
}

// ReadSessionUser resolves a bearer token to its account; expired
// sessions behave as missing.
func (db *DB) ReadSessionUser(token string) (error, *domain.User) {
	return scanUser(db.db.QueryRow(sqlSelectSession, token, time.Now()))
}

func (db *DB) DeleteSession(token string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteSession, token)
		return err
	})
}

func (db *DB) DeleteExpiredSessions() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteExpiredSessions, time.Now())
		return err
	})
}
