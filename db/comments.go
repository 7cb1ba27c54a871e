package db

import (
	"database/sql"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const (
	sqlInsertComment = `INSERT INTO comments(id, post_id, author_id, content, parent_id, created_at)
                        VALUES (?, ?, ?, ?, ?, ?)`
	sqlSelectCommentFields = `comments.id, comments.post_id, comments.author_id, users.username, users.photo_url,
                        comments.content, comments.parent_id, comments.replies_count, comments.created_at, comments.updated_at`
	sqlSelectCommentBase = `SELECT ` + sqlSelectCommentFields + ` FROM comments
                        INNER JOIN users ON users.id = comments.author_id`
	sqlSelectCommentById = sqlSelectCommentBase + ` WHERE comments.id = ?`
	sqlSelectTopComments = sqlSelectCommentBase + ` WHERE comments.post_id = ? AND comments.parent_id IS NULL
                        ORDER BY comments.created_at ASC LIMIT ? OFFSET ?`
	sqlSelectReplies = sqlSelectCommentBase + ` WHERE comments.parent_id = ?
                        ORDER BY comments.created_at ASC LIMIT ? OFFSET ?`
	sqlUpdateComment         = `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`
	sqlDeleteComment         = `DELETE FROM comments WHERE id = ?`
	sqlDeleteRepliesByParent = `DELETE FROM comments WHERE parent_id = ?`
)

func (db *DB) CreateComment(comment *domain.Comment) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		var parent any
		if comment.ParentId.Valid {
			parent = comment.ParentId.UUID.String()
		}
		_, err := tx.Exec(sqlInsertComment,
			comment.Id.String(),
			comment.PostId.String(),
			comment.AuthorId.String(),
			comment.Content,
			parent,
			comment.CreatedAt,
		)
		return err
	})
}

func scanComment(row interface{ Scan(...any) error }) (error, *domain.Comment) {
	var comment domain.Comment
	var idStr, postStr, authorStr string
	var parentStr sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&idStr,
		&postStr,
		&authorStr,
		&comment.AuthorUsername,
		&comment.AuthorPhoto,
		&comment.Content,
		&parentStr,
		&comment.RepliesCount,
		&comment.CreatedAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	comment.Id, _ = uuid.Parse(idStr)
	comment.PostId, _ = uuid.Parse(postStr)
	comment.AuthorId, _ = uuid.Parse(authorStr)
	if parentStr.Valid {
		parentId, err := uuid.Parse(parentStr.String)
		if err == nil {
			comment.ParentId = uuid.NullUUID{UUID: parentId, Valid: true}
		}
	}
	if updatedAt.Valid {
		comment.UpdatedAt = &updatedAt.Time
	}
	comment.RepliesCount = clampCount(comment.RepliesCount)
	return nil, &comment
}

func (db *DB) ReadCommentById(id uuid.UUID) (error, *domain.Comment) {
	return scanComment(db.db.QueryRow(sqlSelectCommentById, id.String()))
}

func (db *DB) ReadTopLevelComments(postId uuid.UUID, skip, limit int) (error, *[]domain.Comment) {
	return db.queryComments(sqlSelectTopComments, postId.String(), limit, skip)
}

func (db *DB) ReadReplies(parentId uuid.UUID, skip, limit int) (error, *[]domain.Comment) {
	return db.queryComments(sqlSelectReplies, parentId.String(), limit, skip)
}

func (db *DB) queryComments(query string, args ...any) (error, *[]domain.Comment) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		err, comment := scanComment(rows)
		if err != nil {
			return err, &comments
		}
		comments = append(comments, *comment)
	}
	if err = rows.Err(); err != nil {
		return err, &comments
	}
	return nil, &comments
}

func (db *DB) UpdateComment(id uuid.UUID, content string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpdateComment, content, time.Now(), id.String())
		return err
	})
}

func (db *DB) DeleteComment(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteComment, id.String())
		return err
	})
}

// DeleteReplies removes all replies to the comment and reports how
// many were deleted, for the bulk comment-count correction.
func (db *DB) DeleteReplies(parentId uuid.UUID) (error, int) {
	var deleted int
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeleteRepliesByParent, parentId.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = int(n)
		return err
	})
	return err, deleted
}

const CommentRepliesCount = "replies_count"

func (db *DB) ApplyCommentDelta(id uuid.UUID, field string, delta int) error {
	if field != CommentRepliesCount {
		return errInvalidCounterField(field)
	}
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE comments SET `+field+` = `+field+` + ? WHERE id = ?`, delta, id.String())
		return err
	})
}
