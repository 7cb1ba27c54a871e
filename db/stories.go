package db

import (
	"database/sql"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const (
	sqlInsertStory = `INSERT INTO stories(id, author_id, media_url, media_type, thumbnail_url, created_at, expires_at)
                        VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlSelectStoryFields = `stories.id, stories.author_id, users.username, users.photo_url, stories.media_url,
                        stories.media_type, stories.thumbnail_url, stories.views_count, stories.created_at, stories.expires_at`
	sqlSelectStoryBase = `SELECT ` + sqlSelectStoryFields + ` FROM stories
                        INNER JOIN users ON users.id = stories.author_id`
	sqlSelectStoryById = sqlSelectStoryBase + ` WHERE stories.id = ?`
)

func (db *DB) CreateStory(story *domain.Story) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertStory,
			story.Id.String(),
			story.AuthorId.String(),
			story.MediaURL,
			story.MediaType,
			story.ThumbnailURL,
			story.CreatedAt,
			story.ExpiresAt,
		)
		return err
	})
}

func scanStory(row interface{ Scan(...any) error }) (error, *domain.Story) {
	var story domain.Story
	var idStr, authorStr string
	err := row.Scan(
		&idStr,
		&authorStr,
		&story.AuthorUsername,
		&story.AuthorPhoto,
		&story.MediaURL,
		&story.MediaType,
		&story.ThumbnailURL,
		&story.ViewsCount,
		&story.CreatedAt,
		&story.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	story.Id, _ = uuid.Parse(idStr)
	story.AuthorId, _ = uuid.Parse(authorStr)
	story.ViewsCount = clampCount(story.ViewsCount)
	return nil, &story
}

func (db *DB) ReadStoryById(id uuid.UUID) (error, *domain.Story) {
	return scanStory(db.db.QueryRow(sqlSelectStoryById, id.String()))
}

// ReadActiveStoriesByAuthors returns unexpired stories of the given
// authors, newest first.
func (db *DB) ReadActiveStoriesByAuthors(authorIds []uuid.UUID, now time.Time) (error, *[]domain.Story) {
	if len(authorIds) == 0 {
		empty := []domain.Story{}
		return nil, &empty
	}
	query := sqlSelectStoryBase + ` WHERE stories.author_id IN (` + placeholders(len(authorIds)) + `)
                        AND stories.expires_at > ? ORDER BY stories.created_at DESC`
	args := make([]any, 0, len(authorIds)+1)
	for _, id := range authorIds {
		args = append(args, id.String())
	}
	args = append(args, now)

	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	stories := []domain.Story{}
	for rows.Next() {
		err, story := scanStory(rows)
		if err != nil {
			return err, &stories
		}
		stories = append(stories, *story)
	}
	if err = rows.Err(); err != nil {
		return err, &stories
	}
	return nil, &stories
}

// DeleteStoryCascade removes the story and its view edges.
func (db *DB) DeleteStoryCascade(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM story_views WHERE story_id = ?`, id.String()); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM stories WHERE id = ?`, id.String())
		return err
	})
}

// DeleteExpiredStories removes stories whose expiry has passed,
// together with their view edges, and reports how many stories were
// swept. Safe to run concurrently with normal traffic: deletes of
// already-deleted rows are no-ops.
func (db *DB) DeleteExpiredStories(now time.Time) (error, int) {
	var swept int
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM story_views WHERE story_id IN
                        (SELECT id FROM stories WHERE expires_at <= ?)`, now); err != nil {
			return err
		}
		res, err := tx.Exec(`DELETE FROM stories WHERE expires_at <= ?`, now)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		swept = int(n)
		return err
	})
	return err, swept
}

const StoryViewsCount = "views_count"

func (db *DB) ApplyStoryDelta(id uuid.UUID, field string, delta int) error {
	if field != StoryViewsCount {
		return errInvalidCounterField(field)
	}
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE stories SET `+field+` = `+field+` + ? WHERE id = ?`, delta, id.String())
		return err
	})
}
