package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	sqlInsertReport = `INSERT INTO reports(id, reporter_id, target_type, target_id, reason, description, status, created_at)
                        VALUES (?, ?, ?, ?, ?, ?, 'pending', ?)`
)

func (db *DB) CreateReport(id, reporterId uuid.UUID, targetType, targetId, reason, description string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertReport,
			id.String(),
			reporterId.String(),
			targetType,
			targetId,
			reason,
			description,
			time.Now(),
		)
		return err
	})
}
