package db

import (
	"database/sql"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// Engagement edge queries. Edge existence is the single source of
// truth for the active state; the UNIQUE constraints make racing
// creates lose cleanly.
const (
	sqlInsertLike = `INSERT INTO likes(post_id, user_id, created_at) VALUES (?, ?, ?)`
	sqlDeleteLike = `DELETE FROM likes WHERE post_id = ? AND user_id = ?`
	sqlSelectLike = `SELECT 1 FROM likes WHERE post_id = ? AND user_id = ?`

	sqlInsertBookmark  = `INSERT INTO bookmarks(post_id, user_id, created_at) VALUES (?, ?, ?)`
	sqlDeleteBookmark  = `DELETE FROM bookmarks WHERE post_id = ? AND user_id = ?`
	sqlSelectBookmark  = `SELECT 1 FROM bookmarks WHERE post_id = ? AND user_id = ?`
	sqlSelectBookmarks = `SELECT post_id FROM bookmarks WHERE user_id = ?
                        ORDER BY created_at DESC LIMIT ? OFFSET ?`

	sqlInsertPostView = `INSERT INTO post_views(post_id, viewer_id, viewed_at) VALUES (?, ?, ?)`

	sqlInsertStoryView  = `INSERT INTO story_views(story_id, viewer_id, viewed_at) VALUES (?, ?, ?)`
	sqlSelectStoryView  = `SELECT 1 FROM story_views WHERE story_id = ? AND viewer_id = ?`
	sqlSelectStoryViews = `SELECT story_views.viewer_id, users.username, users.photo_url, story_views.viewed_at
                        FROM story_views INNER JOIN users ON users.id = story_views.viewer_id
                        WHERE story_views.story_id = ? ORDER BY story_views.viewed_at DESC`
)

func (db *DB) CreateLike(postId, userId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertLike, postId.String(), userId.String(), time.Now())
		return err
	})
}

func (db *DB) DeleteLike(postId, userId uuid.UUID) (error, bool) {
	return db.deleteEdge(sqlDeleteLike, postId, userId)
}

func (db *DB) LikeExists(postId, userId uuid.UUID) (error, bool) {
	return db.edgeExists(sqlSelectLike, postId, userId)
}

func (db *DB) CreateBookmark(postId, userId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertBookmark, postId.String(), userId.String(), time.Now())
		return err
	})
}

func (db *DB) DeleteBookmark(postId, userId uuid.UUID) (error, bool) {
	return db.deleteEdge(sqlDeleteBookmark, postId, userId)
}

func (db *DB) BookmarkExists(postId, userId uuid.UUID) (error, bool) {
	return db.edgeExists(sqlSelectBookmark, postId, userId)
}

// ReadBookmarkedPostIds returns the user's bookmarks, newest first.
func (db *DB) ReadBookmarkedPostIds(userId uuid.UUID, skip, limit int) (error, []uuid.UUID) {
	return db.queryIds(sqlSelectBookmarks, userId.String(), limit, skip)
}

// CreatePostView inserts the append-only view edge; a UNIQUE violation
// means the pair already viewed.
func (db *DB) CreatePostView(postId, viewerId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertPostView, postId.String(), viewerId.String(), time.Now())
		return err
	})
}

func (db *DB) CreateStoryView(storyId, viewerId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertStoryView, storyId.String(), viewerId.String(), time.Now())
		return err
	})
}

func (db *DB) StoryViewExists(storyId, viewerId uuid.UUID) (error, bool) {
	return db.edgeExists(sqlSelectStoryView, storyId, viewerId)
}

func (db *DB) ReadStoryViewers(storyId uuid.UUID) (error, *[]domain.StoryViewer) {
	rows, err := db.db.Query(sqlSelectStoryViews, storyId.String())
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	viewers := []domain.StoryViewer{}
	for rows.Next() {
		var viewer domain.StoryViewer
		var idStr string
		if err := rows.Scan(&idStr, &viewer.ViewerUsername, &viewer.ViewerPhoto, &viewer.ViewedAt); err != nil {
			return err, &viewers
		}
		viewer.ViewerId, _ = uuid.Parse(idStr)
		viewers = append(viewers, viewer)
	}
	if err = rows.Err(); err != nil {
		return err, &viewers
	}
	return nil, &viewers
}

func (db *DB) deleteEdge(query string, subjectId, actorId uuid.UUID) (error, bool) {
	var deleted bool
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(query, subjectId.String(), actorId.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = n > 0
		return err
	})
	return err, deleted
}

func (db *DB) edgeExists(query string, subjectId, actorId uuid.UUID) (error, bool) {
	var one int
	err := db.db.QueryRow(query, subjectId.String(), actorId.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		return err, false
	}
	return nil, true
}
