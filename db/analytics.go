package db

import (
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const (
	sqlSelectTrendingPosts = sqlSelectPostBase + ` WHERE posts.created_at >= ?
                        ORDER BY posts.likes_count DESC LIMIT ?`
	sqlSelectTopPosts = sqlSelectPostBase + ` WHERE posts.author_id = ?
                        ORDER BY posts.likes_count DESC LIMIT ?`
	sqlPostTotals = `SELECT COUNT(*), COALESCE(SUM(likes_count), 0), COALESCE(SUM(comments_count), 0),
                        COALESCE(SUM(views_count), 0) FROM posts WHERE author_id = ?`
	sqlSumLikesReceived = `SELECT COALESCE(SUM(likes_count), 0) FROM posts WHERE author_id = ?`
	sqlSumLikesBetween  = `SELECT COALESCE(SUM(likes_count), 0) FROM posts
                        WHERE author_id = ? AND created_at >= ? AND created_at < ?`
	// substr(created_at, 1, 10) is the YYYY-MM-DD prefix of the stored
	// timestamp text
	sqlDailyActivity = `SELECT substr(created_at, 1, 10), COUNT(*), COALESCE(SUM(likes_count), 0),
                        COALESCE(SUM(comments_count), 0), COALESCE(SUM(views_count), 0)
                        FROM posts WHERE author_id = ? AND created_at >= ?
                        GROUP BY substr(created_at, 1, 10)
                        ORDER BY substr(created_at, 1, 10) ASC`
)

// ReadTrendingPosts returns the most liked posts created since the
// cutoff.
func (db *DB) ReadTrendingPosts(since time.Time, limit int) (error, *[]domain.Post) {
	return db.queryPosts(sqlSelectTrendingPosts, since, limit)
}

// ReadTopPosts returns the author's most liked posts.
func (db *DB) ReadTopPosts(authorId uuid.UUID, limit int) (error, *[]domain.Post) {
	return db.queryPosts(sqlSelectTopPosts, authorId.String(), limit)
}

// PostTotals aggregates engagement over one author's posts.
type PostTotals struct {
	Posts    int `json:"total_posts"`
	Likes    int `json:"total_likes"`
	Comments int `json:"total_comments"`
	Views    int `json:"total_views"`
}

func (db *DB) ReadPostTotals(authorId uuid.UUID) (error, *PostTotals) {
	var totals PostTotals
	err := db.db.QueryRow(sqlPostTotals, authorId.String()).Scan(
		&totals.Posts,
		&totals.Likes,
		&totals.Comments,
		&totals.Views,
	)
	if err != nil {
		return err, nil
	}
	totals.Likes = clampCount(totals.Likes)
	totals.Comments = clampCount(totals.Comments)
	totals.Views = clampCount(totals.Views)
	return nil, &totals
}

func (db *DB) SumLikesReceived(authorId uuid.UUID) (error, int) {
	var sum int
	err := db.db.QueryRow(sqlSumLikesReceived, authorId.String()).Scan(&sum)
	return err, clampCount(sum)
}

// SumLikesBetween sums likes on the author's posts created in
// [from, to).
func (db *DB) SumLikesBetween(authorId uuid.UUID, from, to time.Time) (error, int) {
	var sum int
	err := db.db.QueryRow(sqlSumLikesBetween, authorId.String(), from, to).Scan(&sum)
	return err, clampCount(sum)
}

// DailyActivity is one day of an author's posting activity.
type DailyActivity struct {
	Date     string `json:"date"`
	Posts    int    `json:"posts"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Views    int    `json:"views"`
}

// PostSearch describes the advanced post search. Sort and order values
// are validated at the handler boundary; zero-valued filters are off.
type PostSearch struct {
	Query     string // matches content or author username
	MediaType string // "", "image", "video" or "text"
	HasMedia  *bool
	MinLikes  *int
	MaxLikes  *int
	From      *time.Time
	To        *time.Time
	Tags      []string
	AuthorId  uuid.NullUUID
	SortBy    string // created_at, likes_count, comments_count or views_count
	Order     string // asc or desc
	Skip      int
	Limit     int
}

func (q *PostSearch) whereClause() (string, []any) {
	where := "1=1"
	var args []any
	if q.Query != "" {
		where += ` AND (posts.content LIKE ? ESCAPE '\' OR users.username LIKE ? ESCAPE '\')`
		pattern := "%" + escapeLike(q.Query) + "%"
		args = append(args, pattern, pattern)
	}
	switch q.MediaType {
	case "", "all":
	case "text":
		where += ` AND posts.media_url = ''`
	default:
		where += ` AND posts.media_type = ?`
		args = append(args, q.MediaType)
	}
	if q.HasMedia != nil {
		if *q.HasMedia {
			where += ` AND posts.media_url != ''`
		} else {
			where += ` AND posts.media_url = ''`
		}
	}
	if q.MinLikes != nil {
		where += ` AND posts.likes_count >= ?`
		args = append(args, *q.MinLikes)
	}
	if q.MaxLikes != nil {
		where += ` AND posts.likes_count <= ?`
		args = append(args, *q.MaxLikes)
	}
	if q.From != nil {
		where += ` AND posts.created_at >= ?`
		args = append(args, *q.From)
	}
	if q.To != nil {
		where += ` AND posts.created_at <= ?`
		args = append(args, *q.To)
	}
	if len(q.Tags) > 0 {
		where += ` AND EXISTS (SELECT 1 FROM post_tags
                        WHERE post_tags.post_id = posts.id AND post_tags.tag IN (` + placeholders(len(q.Tags)) + `))`
		for _, tag := range q.Tags {
			args = append(args, tag)
		}
	}
	if q.AuthorId.Valid {
		where += ` AND posts.author_id = ?`
		args = append(args, q.AuthorId.UUID.String())
	}
	return where, args
}

func (q *PostSearch) orderClause() string {
	sortBy := "created_at"
	switch q.SortBy {
	case "likes_count", "comments_count", "views_count":
		sortBy = q.SortBy
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}
	return "ORDER BY posts." + sortBy + " " + direction
}

// SearchPosts returns one page of posts matching the search.
func (db *DB) SearchPosts(q *PostSearch) (error, *[]domain.Post) {
	where, args := q.whereClause()
	query := sqlSelectPostBase + ` WHERE ` + where + ` ` + q.orderClause() + ` LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Skip)
	return db.queryPosts(query, args...)
}

// CountSearchPosts returns the unfiltered total for the search. The
// users join is needed because the text filter can touch the username.
func (db *DB) CountSearchPosts(q *PostSearch) (error, int) {
	where, args := q.whereClause()
	query := `SELECT COUNT(*) FROM posts INNER JOIN users ON users.id = posts.author_id WHERE ` + where
	var count int
	err := db.db.QueryRow(query, args...).Scan(&count)
	return err, count
}

func (db *DB) ReadDailyActivity(authorId uuid.UUID, since time.Time) (error, *[]DailyActivity) {
	rows, err := db.db.Query(sqlDailyActivity, authorId.String(), since)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	days := []DailyActivity{}
	for rows.Next() {
		var day DailyActivity
		if err := rows.Scan(&day.Date, &day.Posts, &day.Likes, &day.Comments, &day.Views); err != nil {
			return err, &days
		}
		days = append(days, day)
	}
	if err = rows.Err(); err != nil {
		return err, &days
	}
	return nil, &days
}
