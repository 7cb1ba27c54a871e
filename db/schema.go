package db

import (
	"database/sql"
)

const (
	//Users
	sqlCreateUsersTable = `CREATE TABLE IF NOT EXISTS users(
                        id uuid NOT NULL PRIMARY KEY,
                        username varchar(100) UNIQUE NOT NULL,
                        email varchar(255) UNIQUE NOT NULL,
                        display_name varchar(255) NOT NULL,
                        password_hash varchar(100) NOT NULL,
                        photo_url text DEFAULT '',
                        bio text DEFAULT '',
                        is_private int DEFAULT 0,
                        followers_count int DEFAULT 0,
                        following_count int DEFAULT 0,
                        posts_count int DEFAULT 0,
                        created_at timestamp default current_timestamp
                        )`

	//Sessions
	sqlCreateSessionsTable = `CREATE TABLE IF NOT EXISTS sessions(
                        token varchar(64) NOT NULL PRIMARY KEY,
                        user_id uuid NOT NULL,
                        created_at timestamp default current_timestamp,
                        expires_at timestamp NOT NULL
                        )`

	//Posts
	sqlCreatePostsTable = `CREATE TABLE IF NOT EXISTS posts(
                        id uuid NOT NULL PRIMARY KEY,
                        author_id uuid NOT NULL,
                        content text DEFAULT '',
                        media_url text DEFAULT '',
                        media_type varchar(20) DEFAULT '',
                        thumbnail_url text DEFAULT '',
                        likes_count int DEFAULT 0,
                        comments_count int DEFAULT 0,
                        views_count int DEFAULT 0,
                        created_at timestamp default current_timestamp,
                        updated_at timestamp
                        )`

	sqlCreatePostTagsTable = `CREATE TABLE IF NOT EXISTS post_tags(
                        post_id uuid NOT NULL,
                        tag varchar(100) NOT NULL,
                        UNIQUE(post_id, tag)
                        )`

	sqlCreatePostMentionsTable = `CREATE TABLE IF NOT EXISTS post_mentions(
                        post_id uuid NOT NULL,
                        user_id uuid NOT NULL,
                        UNIQUE(post_id, user_id)
                        )`

	//Comments
	sqlCreateCommentsTable = `CREATE TABLE IF NOT EXISTS comments(
                        id uuid NOT NULL PRIMARY KEY,
                        post_id uuid NOT NULL,
                        author_id uuid NOT NULL,
                        content text NOT NULL,
                        parent_id uuid,
                        replies_count int DEFAULT 0,
                        created_at timestamp default current_timestamp,
                        updated_at timestamp
                        )`

	//Stories
	sqlCreateStoriesTable = `CREATE TABLE IF NOT EXISTS stories(
                        id uuid NOT NULL PRIMARY KEY,
                        author_id uuid NOT NULL,
                        media_url text NOT NULL,
                        media_type varchar(20) DEFAULT '',
                        thumbnail_url text DEFAULT '',
                        views_count int DEFAULT 0,
                        created_at timestamp default current_timestamp,
                        expires_at timestamp NOT NULL
                        )`

	//Follow graph
	sqlCreateFollowsTable = `CREATE TABLE IF NOT EXISTS follows(
                        follower_id uuid NOT NULL,
                        following_id uuid NOT NULL,
                        created_at timestamp default current_timestamp,
                        UNIQUE(follower_id, following_id)
                        )`

	sqlCreateFollowRequestsTable = `CREATE TABLE IF NOT EXISTS follow_requests(
                        id uuid NOT NULL PRIMARY KEY,
                        requester_id uuid NOT NULL,
                        target_id uuid NOT NULL,
                        status varchar(20) NOT NULL DEFAULT 'pending',
                        created_at timestamp default current_timestamp,
                        updated_at timestamp
                        )`

	// One live pending request per pair; resolved rows stay as history
	sqlCreatePendingRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_follow_requests_pending
                        ON follow_requests(requester_id, target_id) WHERE status = 'pending'`

	sqlCreateBlocksTable = `CREATE TABLE IF NOT EXISTS blocks(
                        blocker_id uuid NOT NULL,
                        blocked_id uuid NOT NULL,
                        created_at timestamp default current_timestamp,
                        UNIQUE(blocker_id, blocked_id)
                        )`

	//Engagement edges
	sqlCreateLikesTable = `CREATE TABLE IF NOT EXISTS likes(
                        post_id uuid NOT NULL,
                        user_id uuid NOT NULL,
                        created_at timestamp default current_timestamp,
                        UNIQUE(post_id, user_id)
                        )`

	sqlCreateBookmarksTable = `CREATE TABLE IF NOT EXISTS bookmarks(
                        post_id uuid NOT NULL,
                        user_id uuid NOT NULL,
                        created_at timestamp default current_timestamp,
                        UNIQUE(post_id, user_id)
                        )`

	sqlCreatePostViewsTable = `CREATE TABLE IF NOT EXISTS post_views(
                        post_id uuid NOT NULL,
                        viewer_id uuid NOT NULL,
                        viewed_at timestamp default current_timestamp,
                        UNIQUE(post_id, viewer_id)
                        )`

	sqlCreateStoryViewsTable = `CREATE TABLE IF NOT EXISTS story_views(
                        story_id uuid NOT NULL,
                        viewer_id uuid NOT NULL,
                        viewed_at timestamp default current_timestamp,
                        UNIQUE(story_id, viewer_id)
                        )`

	//Notifications
	sqlCreateNotificationsTable = `CREATE TABLE IF NOT EXISTS notifications(
                        id uuid NOT NULL PRIMARY KEY,
                        dedup_key varchar(200) UNIQUE NOT NULL,
                        recipient_id uuid NOT NULL,
                        type varchar(30) NOT NULL,
                        actor_id uuid NOT NULL,
                        post_id uuid,
                        comment_id uuid,
                        read int DEFAULT 0,
                        created_at timestamp default current_timestamp
                        )`

	//Messages
	sqlCreateMessagesTable = `CREATE TABLE IF NOT EXISTS messages(
                        id uuid NOT NULL PRIMARY KEY,
                        sender_id uuid NOT NULL,
                        recipient_id uuid NOT NULL,
                        content text DEFAULT '',
                        post_id uuid,
                        story_id uuid,
                        read int DEFAULT 0,
                        created_at timestamp default current_timestamp
                        )`

	//Reports
	sqlCreateReportsTable = `CREATE TABLE IF NOT EXISTS reports(
                        id uuid NOT NULL PRIMARY KEY,
                        reporter_id uuid NOT NULL,
                        target_type varchar(20) NOT NULL,
                        target_id varchar(100) NOT NULL,
                        reason text NOT NULL,
                        description text DEFAULT '',
                        status varchar(20) DEFAULT 'pending',
                        created_at timestamp default current_timestamp
                        )`

	sqlCreateIndices = `
		CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_post_tags_tag ON post_tags(tag);
		CREATE INDEX IF NOT EXISTS idx_post_mentions_user_id ON post_mentions(user_id);
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
		CREATE INDEX IF NOT EXISTS idx_comments_parent_id ON comments(parent_id);
		CREATE INDEX IF NOT EXISTS idx_stories_author_id ON stories(author_id);
		CREATE INDEX IF NOT EXISTS idx_stories_expires_at ON stories(expires_at);
		CREATE INDEX IF NOT EXISTS idx_follows_follower_id ON follows(follower_id);
		CREATE INDEX IF NOT EXISTS idx_follows_following_id ON follows(following_id);
		CREATE INDEX IF NOT EXISTS idx_follow_requests_target_id ON follow_requests(target_id);
		CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_user_id ON bookmarks(user_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_recipient_id ON notifications(recipient_id);
		CREATE INDEX IF NOT EXISTS idx_messages_sender_id ON messages(sender_id);
		CREATE INDEX IF NOT EXISTS idx_messages_recipient_id ON messages(recipient_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	`
)

// CreateDB creates the database schema.
func (db *DB) CreateDB() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		stmts := []string{
			sqlCreateUsersTable,
			sqlCreateSessionsTable,
			sqlCreatePostsTable,
			sqlCreatePostTagsTable,
			sqlCreatePostMentionsTable,
			sqlCreateCommentsTable,
			sqlCreateStoriesTable,
			sqlCreateFollowsTable,
			sqlCreateFollowRequestsTable,
			sqlCreatePendingRequestIndex,
			sqlCreateBlocksTable,
			sqlCreateLikesTable,
			sqlCreateBookmarksTable,
			sqlCreatePostViewsTable,
			sqlCreateStoryViewsTable,
			sqlCreateNotificationsTable,
			sqlCreateMessagesTable,
			sqlCreateReportsTable,
			sqlCreateIndices,
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
