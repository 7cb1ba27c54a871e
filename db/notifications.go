package db

import (
	"database/sql"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// Notification queries. The dedup_key UNIQUE column makes the upsert a
// single indexed statement: a repeated triggering event bumps the
// existing row back to unread-recent instead of inserting noise.
const (
	sqlUpsertNotification = `INSERT INTO notifications(id, dedup_key, recipient_id, type, actor_id, post_id, comment_id, read, created_at)
                        VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)
                        ON CONFLICT(dedup_key) DO UPDATE SET created_at = excluded.created_at, read = 0`
	sqlSelectNotificationFields = `id, recipient_id, type, actor_id, post_id, comment_id, read, created_at`
	sqlSelectNotificationById   = `SELECT ` + sqlSelectNotificationFields + ` FROM notifications WHERE id = ?`
	sqlSelectNotifications      = `SELECT ` + sqlSelectNotificationFields + ` FROM notifications
                        WHERE recipient_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	sqlSelectUnreadNotifications = `SELECT ` + sqlSelectNotificationFields + ` FROM notifications
                        WHERE recipient_id = ? AND read = 0 ORDER BY created_at DESC LIMIT ? OFFSET ?`
	sqlMarkNotificationRead = `UPDATE notifications SET read = 1 WHERE id = ?`
	sqlMarkAllRead          = `UPDATE notifications SET read = 1 WHERE recipient_id = ? AND read = 0`
	sqlDeleteNotification   = `DELETE FROM notifications WHERE id = ?`
	sqlCountUnread          = `SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND read = 0`
)

func (db *DB) UpsertNotification(n *domain.Notification) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpsertNotification,
			n.Id.String(),
			n.DedupKey(),
			n.RecipientId.String(),
			n.Type,
			n.ActorId.String(),
			nullableId(n.PostId),
			nullableId(n.CommentId),
			n.CreatedAt,
		)
		return err
	})
}

func scanNotification(row interface{ Scan(...any) error }) (error, *domain.Notification) {
	var n domain.Notification
	var idStr, recipientStr, actorStr string
	var postStr, commentStr sql.NullString
	err := row.Scan(
		&idStr,
		&recipientStr,
		&n.Type,
		&actorStr,
		&postStr,
		&commentStr,
		&n.Read,
		&n.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	n.Id, _ = uuid.Parse(idStr)
	n.RecipientId, _ = uuid.Parse(recipientStr)
	n.ActorId, _ = uuid.Parse(actorStr)
	if postStr.Valid {
		if postId, err := uuid.Parse(postStr.String); err == nil {
			n.PostId = uuid.NullUUID{UUID: postId, Valid: true}
		}
	}
	if commentStr.Valid {
		if commentId, err := uuid.Parse(commentStr.String); err == nil {
			n.CommentId = uuid.NullUUID{UUID: commentId, Valid: true}
		}
	}
	return nil, &n
}

func (db *DB) ReadNotificationById(id uuid.UUID) (error, *domain.Notification) {
	return scanNotification(db.db.QueryRow(sqlSelectNotificationById, id.String()))
}

func (db *DB) ReadNotifications(recipientId uuid.UUID, unreadOnly bool, skip, limit int) (error, *[]domain.Notification) {
	query := sqlSelectNotifications
	if unreadOnly {
		query = sqlSelectUnreadNotifications
	}
	rows, err := db.db.Query(query, recipientId.String(), limit, skip)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		err, n := scanNotification(rows)
		if err != nil {
			return err, &notifications
		}
		notifications = append(notifications, *n)
	}
	if err = rows.Err(); err != nil {
		return err, &notifications
	}
	return nil, &notifications
}

func (db *DB) MarkNotificationRead(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlMarkNotificationRead, id.String())
		return err
	})
}

// MarkAllNotificationsRead reports how many rows flipped to read.
func (db *DB) MarkAllNotificationsRead(recipientId uuid.UUID) (error, int) {
	var marked int
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlMarkAllRead, recipientId.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		marked = int(n)
		return err
	})
	return err, marked
}

func (db *DB) DeleteNotification(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteNotification, id.String())
		return err
	})
}

func (db *DB) CountUnreadNotifications(recipientId uuid.UUID) (error, int) {
	var count int
	err := db.db.QueryRow(sqlCountUnread, recipientId.String()).Scan(&count)
	return err, count
}

func nullableId(id uuid.NullUUID) any {
	if id.Valid {
		return id.UUID.String()
	}
	return nil
}
