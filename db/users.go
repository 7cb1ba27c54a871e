package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const (
	sqlInsertUser = `INSERT INTO users(id, username, email, display_name, password_hash, photo_url, bio, is_private, created_at)
                        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectUserFields = `id, username, email, display_name, password_hash, photo_url, bio, is_private,
                        followers_count, following_count, posts_count, created_at`
	sqlSelectUserById       = `SELECT ` + sqlSelectUserFields + ` FROM users WHERE id = ?`
	sqlSelectUserByEmail    = `SELECT ` + sqlSelectUserFields + ` FROM users WHERE email = ?`
	sqlSelectUserByUsername = `SELECT ` + sqlSelectUserFields + ` FROM users WHERE username = ?`
	sqlSearchUsers          = `SELECT ` + sqlSelectUserFields + ` FROM users
                        WHERE username LIKE ? ESCAPE '\' OR display_name LIKE ? ESCAPE '\' LIMIT ?`
	sqlTrendingUsers = `SELECT ` + sqlSelectUserFields + ` FROM users
                        ORDER BY followers_count DESC LIMIT ?`
)

func (db *DB) CreateUser(user *domain.User) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertUser,
			user.Id.String(),
			user.Username,
			user.Email,
			user.DisplayName,
			user.PasswordHash,
			user.PhotoURL,
			user.Bio,
			user.IsPrivate,
			user.CreatedAt,
		)
		return err
	})
}

func scanUser(row interface{ Scan(...any) error }) (error, *domain.User) {
	var user domain.User
	var idStr string
	err := row.Scan(
		&idStr,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.PhotoURL,
		&user.Bio,
		&user.IsPrivate,
		&user.FollowersCount,
		&user.FollowingCount,
		&user.PostsCount,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	user.Id, _ = uuid.Parse(idStr)
	user.FollowersCount = clampCount(user.FollowersCount)
	user.FollowingCount = clampCount(user.FollowingCount)
	user.PostsCount = clampCount(user.PostsCount)
	return nil, &user
}

func (db *DB) ReadUserById(id uuid.UUID) (error, *domain.User) {
	return scanUser(db.db.QueryRow(sqlSelectUserById, id.String()))
}

func (db *DB) ReadUserByEmail(email string) (error, *domain.User) {
	return scanUser(db.db.QueryRow(sqlSelectUserByEmail, email))
}

func (db *DB) ReadUserByUsername(username string) (error, *domain.User) {
	return scanUser(db.db.QueryRow(sqlSelectUserByUsername, username))
}

func (db *DB) SearchUsers(query string, limit int) (error, *[]domain.User) {
	pattern := "%" + escapeLike(query) + "%"
	return db.queryUsers(sqlSearchUsers, pattern, pattern, limit)
}

func (db *DB) TrendingUsers(limit int) (error, *[]domain.User) {
	return db.queryUsers(sqlTrendingUsers, limit)
}

// ReadUsersByIds preserves no particular order; callers sort if needed.
func (db *DB) ReadUsersByIds(ids []uuid.UUID) (error, *[]domain.User) {
	if len(ids) == 0 {
		empty := []domain.User{}
		return nil, &empty
	}
	query := `SELECT ` + sqlSelectUserFields + ` FROM users WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}
	return db.queryUsers(query, args...)
}

func (db *DB) queryUsers(query string, args ...any) (error, *[]domain.User) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		err, user := scanUser(rows)
		if err != nil {
			return err, &users
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return err, &users
	}
	return nil, &users
}

// UpdateUserProfile applies only the fields set in the update.
func (db *DB) UpdateUserProfile(id uuid.UUID, update *domain.ProfileUpdate) error {
	var sets []string
	var args []any
	if update.DisplayName != nil {
		sets = append(sets, "display_name = ?")
		args = append(args, *update.DisplayName)
	}
	if update.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *update.Bio)
	}
	if update.PhotoURL != nil {
		sets = append(sets, "photo_url = ?")
		args = append(args, *update.PhotoURL)
	}
	if update.IsPrivate != nil {
		sets = append(sets, "is_private = ?")
		args = append(args, *update.IsPrivate)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id.String())

	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		return err
	})
}

// Counter Ledger: the six derived aggregates are mutated only through
// the Apply*Delta methods below, always as atomic in-place updates.

const (
	UserFollowersCount = "followers_count"
	UserFollowingCount = "following_count"
	UserPostsCount     = "posts_count"
)

func (db *DB) ApplyUserDelta(id uuid.UUID, field string, delta int) error {
	switch field {
	case UserFollowersCount, UserFollowingCount, UserPostsCount:
	default:
		return errInvalidCounterField(field)
	}
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE users SET `+field+` = `+field+` + ? WHERE id = ?`, delta, id.String())
		return err
	})
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func errInvalidCounterField(field string) error {
	return fmt.Errorf("unknown counter field %q", field)
}
