package web

import (
	"fmt"
	"log"

	"github.com/MimansaPatle/pictogram/social"
	"github.com/MimansaPatle/pictogram/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"golang.org/x/time/rate"
)

func Router(conf *util.AppConfig, service *social.Service) error {
	log.Printf("Starting HTTP server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Global rate limiter: 10 requests per second per IP, burst of 20
	globalLimiter := NewRateLimiter(rate.Limit(10), 20)
	g.Use(RateLimitMiddleware(globalLimiter))

	h := &handlers{service: service, conf: conf}

	// Stricter rate limit for the auth endpoints: 5 req/sec per IP
	authLimiter := NewRateLimiter(rate.Limit(5), 10)

	// Max 1MB request body size
	maxBodySize := MaxBytesMiddleware(1 * 1024 * 1024)
	g.Use(maxBodySize)

	g.POST("/auth/register", RateLimitMiddleware(authLimiter), h.handleRegister)
	g.POST("/auth/login", RateLimitMiddleware(authLimiter), h.handleLogin)

	// RSS Feed of a public user's posts
	g.GET("/feed", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")

		username := c.Query("username")
		rss, err := h.GetRSS(username)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rss})
		}
	})

	authed := g.Group("/", AuthMiddleware(service))

	authed.POST("/auth/logout", h.handleLogout)
	authed.GET("/auth/me", h.handleMe)

	authed.GET("/users/search", h.handleSearchUsers)
	authed.GET("/users/trending", h.handleTrendingUsers)
	authed.GET("/users/:id", h.handleGetProfile)
	authed.PATCH("/users/me/profile", h.handleUpdateProfile)
	authed.GET("/users/:id/posts", h.handleUserPosts)
	authed.GET("/users/:id/tagged", h.handleTaggedPosts)
	authed.GET("/users/:id/followers", h.handleFollowers)
	authed.GET("/users/:id/following", h.handleFollowing)
	authed.POST("/users/:id/follow", h.handleToggleFollow)
	authed.GET("/users/:id/follow", h.handleFollowStatus)
	authed.POST("/users/:id/block", h.handleBlockUser)
	authed.DELETE("/users/:id/block", h.handleUnblockUser)
	authed.GET("/users/me/blocked", h.handleBlockedUsers)

	authed.GET("/follow-requests", h.handlePendingRequests)
	authed.POST("/follow-requests/:id/accept", h.handleAcceptRequest)
	authed.POST("/follow-requests/:id/reject", h.handleRejectRequest)

	authed.POST("/posts", h.handleCreatePost)
	authed.GET("/posts/feed", h.handleFeed)
	authed.GET("/posts/explore", h.handleExplore)
	authed.GET("/posts/bookmarked", h.handleBookmarkedPosts)
	authed.GET("/posts/:id", h.handleGetPost)
	authed.PUT("/posts/:id", h.handleEditPost)
	authed.DELETE("/posts/:id", h.handleDeletePost)
	authed.POST("/posts/:id/like", h.handleToggleLike)
	authed.POST("/posts/:id/bookmark", h.handleToggleBookmark)
	authed.POST("/posts/:id/view", h.handleRecordView)
	authed.POST("/posts/:id/comments", h.handleAddComment)
	authed.GET("/posts/:id/comments", h.handlePostComments)

	authed.GET("/comments/:id/replies", h.handleCommentReplies)
	authed.PUT("/comments/:id", h.handleEditComment)
	authed.DELETE("/comments/:id", h.handleDeleteComment)

	authed.GET("/hashtags/trending", h.handleTrendingHashtags)
	authed.GET("/hashtags/search", h.handleSearchHashtags)
	authed.GET("/hashtags/:tag/posts", h.handleHashtagPosts)

	authed.POST("/stories", h.handleCreateStory)
	authed.GET("/stories", h.handleStoryTray)
	authed.GET("/stories/:id", h.handleGetStory)
	authed.POST("/stories/:id/view", h.handleViewStory)
	authed.GET("/stories/:id/viewers", h.handleStoryViewers)
	authed.DELETE("/stories/:id", h.handleDeleteStory)

	authed.GET("/notifications", h.handleNotifications)
	authed.GET("/notifications/unread-count", h.handleUnreadCount)
	authed.POST("/notifications/read-all", h.handleMarkAllRead)
	authed.POST("/notifications/:id/read", h.handleMarkNotificationRead)
	authed.DELETE("/notifications/:id", h.handleDeleteNotification)

	authed.POST("/messages", h.handleSendMessage)
	authed.GET("/messages/conversations", h.handleConversations)
	authed.GET("/messages/with/:id", h.handleConversationMessages)
	authed.PUT("/messages/:id/read", h.handleMarkMessageRead)
	authed.DELETE("/messages/:id", h.handleDeleteMessage)

	authed.GET("/analytics/trending", h.handleTrendingPosts)
	authed.GET("/analytics/users/:id/stats", h.handleUserStats)
	authed.GET("/analytics/dashboard", h.handleDashboard)
	authed.GET("/analytics/search/advanced", h.handleAdvancedSearch)

	authed.POST("/reports", h.handleReport)

	err := g.Run(fmt.Sprintf(":%d", conf.Conf.HttpPort))
	if err != nil {
		return err
	}
	return nil
}
