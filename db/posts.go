package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const (
	sqlInsertPost = `INSERT INTO posts(id, author_id, content, media_url, media_type, thumbnail_url, created_at)
                        VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlSelectPostFields = `posts.id, posts.author_id, users.username, users.photo_url, posts.content,
                        posts.media_url, posts.media_type, posts.thumbnail_url, posts.likes_count,
                        posts.comments_count, posts.views_count, posts.created_at, posts.updated_at`
	sqlSelectPostBase = `SELECT ` + sqlSelectPostFields + ` FROM posts
                        INNER JOIN users ON users.id = posts.author_id`
	sqlSelectPostById = sqlSelectPostBase + ` WHERE posts.id = ?`
	sqlUpdatePost     = `UPDATE posts SET content = ?, media_url = ?, media_type = ?, thumbnail_url = ?, updated_at = ?
                        WHERE id = ?`
	sqlInsertPostTag     = `INSERT INTO post_tags(post_id, tag) VALUES (?, ?)`
	sqlDeletePostTags    = `DELETE FROM post_tags WHERE post_id = ?`
	sqlSelectPostTags    = `SELECT tag FROM post_tags WHERE post_id = ?`
	sqlInsertPostMention = `INSERT INTO post_mentions(post_id, user_id) VALUES (?, ?)`
	sqlSelectMentions    = `SELECT user_id FROM post_mentions WHERE post_id = ?`
)

func (db *DB) CreatePost(post *domain.Post) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertPost,
			post.Id.String(),
			post.AuthorId.String(),
			post.Content,
			post.MediaURL,
			post.MediaType,
			post.ThumbnailURL,
			post.CreatedAt,
		)
		if err != nil {
			return err
		}
		for _, tag := range post.Tags {
			if _, err := tx.Exec(sqlInsertPostTag, post.Id.String(), tag); err != nil {
				return err
			}
		}
		for _, mentioned := range post.Mentions {
			if _, err := tx.Exec(sqlInsertPostMention, post.Id.String(), mentioned.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanPost(row interface{ Scan(...any) error }) (error, *domain.Post) {
	var post domain.Post
	var idStr, authorStr string
	var updatedAt sql.NullTime
	err := row.Scan(
		&idStr,
		&authorStr,
		&post.AuthorUsername,
		&post.AuthorPhoto,
		&post.Content,
		&post.MediaURL,
		&post.MediaType,
		&post.ThumbnailURL,
		&post.LikesCount,
		&post.CommentsCount,
		&post.ViewsCount,
		&post.CreatedAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return err, nil
	}
	if err != nil {
		return err, nil
	}
	post.Id, _ = uuid.Parse(idStr)
	post.AuthorId, _ = uuid.Parse(authorStr)
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}
	post.LikesCount = clampCount(post.LikesCount)
	post.CommentsCount = clampCount(post.CommentsCount)
	post.ViewsCount = clampCount(post.ViewsCount)
	return nil, &post
}

func (db *DB) ReadPostById(id uuid.UUID) (error, *domain.Post) {
	err, post := scanPost(db.db.QueryRow(sqlSelectPostById, id.String()))
	if err != nil {
		return err, nil
	}
	if err := db.loadPostTags(post); err != nil {
		return err, nil
	}
	return nil, post
}

func (db *DB) loadPostTags(post *domain.Post) error {
	rows, err := db.db.Query(sqlSelectPostTags, post.Id.String())
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return err
		}
		post.Tags = append(post.Tags, tag)
	}
	return rows.Err()
}

func (db *DB) UpdatePost(id uuid.UUID, edit *domain.PostEdit) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpdatePost,
			edit.Content,
			edit.MediaURL,
			edit.MediaType,
			edit.ThumbnailURL,
			time.Now(),
			id.String(),
		)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(sqlDeletePostTags, id.String()); err != nil {
			return err
		}
		for _, tag := range edit.Tags {
			if _, err := tx.Exec(sqlInsertPostTag, id.String(), tag); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePostCascade removes the post together with its likes,
// bookmarks, views, comments, tags and mentions in one transaction.
func (db *DB) DeletePostCascade(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		stmts := []string{
			`DELETE FROM likes WHERE post_id = ?`,
			`DELETE FROM bookmarks WHERE post_id = ?`,
			`DELETE FROM post_views WHERE post_id = ?`,
			`DELETE FROM comments WHERE post_id = ?`,
			`DELETE FROM post_tags WHERE post_id = ?`,
			`DELETE FROM post_mentions WHERE post_id = ?`,
			`DELETE FROM posts WHERE id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt, id.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *DB) ReadPostMentions(id uuid.UUID) (error, []uuid.UUID) {
	return db.queryIds(sqlSelectMentions, id.String())
}

// PostQuery describes a listing over the posts collection. Sort and
// order values are validated at the handler boundary.
type PostQuery struct {
	AuthorIds []uuid.UUID // nil means all authors
	MediaType string      // "", "image", "video" or "text"
	SortBy    string      // created_at, likes_count or comments_count
	Order     string      // asc or desc
	Skip      int
	Limit     int
}

func (q *PostQuery) whereClause() (string, []any) {
	where := "1=1"
	var args []any
	if len(q.AuthorIds) > 0 {
		where += ` AND posts.author_id IN (` + placeholders(len(q.AuthorIds)) + `)`
		for _, id := range q.AuthorIds {
			args = append(args, id.String())
		}
	}
	switch q.MediaType {
	case "", "all":
	case "text":
		where += ` AND posts.media_url = ''`
	default:
		where += ` AND posts.media_type = ?`
		args = append(args, q.MediaType)
	}
	return where, args
}

func (q *PostQuery) orderClause() string {
	sortBy := "created_at"
	switch q.SortBy {
	case "likes_count", "comments_count":
		sortBy = q.SortBy
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY posts.%s %s", sortBy, direction)
}

// QueryPosts returns one page of posts matching the query.
func (db *DB) QueryPosts(q *PostQuery) (error, *[]domain.Post) {
	where, args := q.whereClause()
	query := sqlSelectPostBase + ` WHERE ` + where + ` ` + q.orderClause() + ` LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Skip)
	return db.queryPosts(query, args...)
}

// CountPosts returns the unfiltered total for the query; visibility
// filtering happens above this layer, so pagination totals reflect the
// unfiltered set.
func (db *DB) CountPosts(q *PostQuery) (error, int) {
	where, args := q.whereClause()
	var count int
	err := db.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE `+where, args...).Scan(&count)
	return err, count
}

const (
	sqlSelectPostsByMention = sqlSelectPostBase + `
                        INNER JOIN post_mentions ON post_mentions.post_id = posts.id
                        WHERE post_mentions.user_id = ?
                        ORDER BY posts.created_at DESC LIMIT ? OFFSET ?`
	sqlSelectPostsByTag = sqlSelectPostBase + `
                        INNER JOIN post_tags ON post_tags.post_id = posts.id
                        WHERE post_tags.tag = ?
                        ORDER BY posts.created_at DESC LIMIT ? OFFSET ?`
	sqlCountPostsByTag = `SELECT COUNT(*) FROM post_tags WHERE tag = ?`
	sqlTrendingTags    = `SELECT post_tags.tag, COUNT(*) AS cnt FROM post_tags
                        INNER JOIN posts ON posts.id = post_tags.post_id
                        WHERE posts.created_at >= ?
                        GROUP BY post_tags.tag ORDER BY cnt DESC LIMIT ?`
	sqlSearchTags = `SELECT tag, COUNT(*) AS cnt FROM post_tags
                        WHERE tag LIKE ? ESCAPE '\'
                        GROUP BY tag ORDER BY cnt DESC LIMIT ?`
)

func (db *DB) ReadPostsByMention(userId uuid.UUID, skip, limit int) (error, *[]domain.Post) {
	return db.queryPosts(sqlSelectPostsByMention, userId.String(), limit, skip)
}

func (db *DB) ReadPostsByTag(tag string, skip, limit int) (error, *[]domain.Post) {
	return db.queryPosts(sqlSelectPostsByTag, tag, limit, skip)
}

func (db *DB) CountPostsByTag(tag string) (error, int) {
	var count int
	err := db.db.QueryRow(sqlCountPostsByTag, tag).Scan(&count)
	return err, count
}

// TagCount is one row of the trending-hashtags aggregate.
type TagCount struct {
	Tag   string `json:"hashtag"`
	Count int    `json:"post_count"`
}

func (db *DB) ReadTrendingTags(since time.Time, limit int) (error, *[]TagCount) {
	return db.queryTagCounts(sqlTrendingTags, since, limit)
}

// SearchTags finds tags starting with the prefix, most used first.
func (db *DB) SearchTags(prefix string, limit int) (error, *[]TagCount) {
	return db.queryTagCounts(sqlSearchTags, escapeLike(prefix)+"%", limit)
}

func (db *DB) queryTagCounts(query string, args ...any) (error, *[]TagCount) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	tags := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return err, &tags
		}
		tags = append(tags, tc)
	}
	if err = rows.Err(); err != nil {
		return err, &tags
	}
	return nil, &tags
}

// ReadPostsByIds preserves the order of the given ids.
func (db *DB) ReadPostsByIds(ids []uuid.UUID) (error, *[]domain.Post) {
	if len(ids) == 0 {
		empty := []domain.Post{}
		return nil, &empty
	}
	query := sqlSelectPostBase + ` WHERE posts.id IN (` + placeholders(len(ids)) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}
	err, posts := db.queryPosts(query, args...)
	if err != nil {
		return err, posts
	}

	byId := make(map[uuid.UUID]domain.Post, len(*posts))
	for _, post := range *posts {
		byId[post.Id] = post
	}
	ordered := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byId[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return nil, &ordered
}

func (db *DB) queryPosts(query string, args ...any) (error, *[]domain.Post) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		err, post := scanPost(rows)
		if err != nil {
			return err, &posts
		}
		posts = append(posts, *post)
	}
	if err = rows.Err(); err != nil {
		return err, &posts
	}
	return nil, &posts
}

const (
	PostLikesCount    = "likes_count"
	PostCommentsCount = "comments_count"
	PostViewsCount    = "views_count"
)

func (db *DB) ApplyPostDelta(id uuid.UUID, field string, delta int) error {
	switch field {
	case PostLikesCount, PostCommentsCount, PostViewsCount:
	default:
		return errInvalidCounterField(field)
	}
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE posts SET `+field+` = `+field+` + ? WHERE id = ?`, delta, id.String())
		return err
	})
}
