package db

import (
	"database/sql"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const (
	sqlInsertMessage = `INSERT INTO messages(id, sender_id, recipient_id, content, post_id, story_id, read, created_at)
                        VALUES (?, ?, ?, ?, ?, ?, 0, ?)`
	sqlSelectMessageFields   = `id, sender_id, recipient_id, content, post_id, story_id, read, created_at`
	sqlSelectMessagesBetween = `SELECT ` + sqlSelectMessageFields + ` FROM messages
                        WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
                        ORDER BY created_at ASC LIMIT ? OFFSET ?`
	sqlSelectMessagesInvolving = `SELECT ` + sqlSelectMessageFields + ` FROM messages
                        WHERE sender_id = ? OR recipient_id = ?
                        ORDER BY created_at DESC LIMIT ?`
	sqlSelectMessageById    = `SELECT ` + sqlSelectMessageFields + ` FROM messages WHERE id = ?`
	sqlMarkConversationRead = `UPDATE messages SET read = 1 WHERE sender_id = ? AND recipient_id = ? AND read = 0`
	sqlMarkMessageRead      = `UPDATE messages SET read = 1 WHERE id = ?`
	sqlDeleteMessage        = `DELETE FROM messages WHERE id = ?`
	sqlCountUnreadFrom      = `SELECT COUNT(*) FROM messages WHERE sender_id = ? AND recipient_id = ? AND read = 0`
)

func (db *DB) CreateMessage(message *domain.Message) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertMessage,
			message.Id.String(),
			message.SenderId.String(),
			message.RecipientId.String(),
			message.Content,
			nullableId(message.PostId),
			nullableId(message.StoryId),
			message.CreatedAt,
		)
		return err
	})
}

func scanMessage(row interface{ Scan(...any) error }) (error, *domain.Message) {
	var message domain.Message
	var idStr, senderStr, recipientStr string
	var postStr, storyStr sql.NullString
	err := row.Scan(
		&idStr,
		&senderStr,
		&recipientStr,
		&message.Content,
		&postStr,
		&storyStr,
		&message.Read,
		&message.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	message.Id, _ = uuid.Parse(idStr)
	message.SenderId, _ = uuid.Parse(senderStr)
	message.RecipientId, _ = uuid.Parse(recipientStr)
	if postStr.Valid {
		if postId, err := uuid.Parse(postStr.String); err == nil {
			message.PostId = uuid.NullUUID{UUID: postId, Valid: true}
		}
	}
	if storyStr.Valid {
		if storyId, err := uuid.Parse(storyStr.String); err == nil {
			message.StoryId = uuid.NullUUID{UUID: storyId, Valid: true}
		}
	}
	return nil, &message
}

func (db *DB) ReadMessageById(id uuid.UUID) (error, *domain.Message) {
	return scanMessage(db.db.QueryRow(sqlSelectMessageById, id.String()))
}

func (db *DB) ReadMessagesBetween(a, b uuid.UUID, skip, limit int) (error, *[]domain.Message) {
	return db.queryMessages(sqlSelectMessagesBetween, a.String(), b.String(), b.String(), a.String(), limit, skip)
}

// ReadMessagesInvolving returns the user's most recent messages across
// all conversations, newest first; the service groups them per peer.
func (db *DB) ReadMessagesInvolving(userId uuid.UUID, limit int) (error, *[]domain.Message) {
	return db.queryMessages(sqlSelectMessagesInvolving, userId.String(), userId.String(), limit)
}

func (db *DB) queryMessages(query string, args ...any) (error, *[]domain.Message) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		err, message := scanMessage(rows)
		if err != nil {
			return err, &messages
		}
		messages = append(messages, *message)
	}
	if err = rows.Err(); err != nil {
		return err, &messages
	}
	return nil, &messages
}

// MarkConversationRead marks all unread messages from the sender to
// the recipient as read.
func (db *DB) MarkConversationRead(senderId, recipientId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlMarkConversationRead, senderId.String(), recipientId.String())
		return err
	})
}

func (db *DB) MarkMessageRead(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlMarkMessageRead, id.String())
		return err
	})
}

func (db *DB) DeleteMessage(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteMessage, id.String())
		return err
	})
}

func (db *DB) CountUnreadMessagesFrom(senderId, recipientId uuid.UUID) (error, int) {
	var count int
	err := db.db.QueryRow(sqlCountUnreadFrom, senderId.String(), recipientId.String()).Scan(&count)
	return err, count
}
