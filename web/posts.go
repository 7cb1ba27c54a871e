package web

import (
	"net/http"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Content      string `json:"content"`
	MediaURL     string `json:"media_url"`
	MediaType    string `json:"media_type"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (h *handlers) handleCreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Content == "" && req.MediaURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post needs content or media"})
		return
	}

	post, err := h.service.CreatePost(currentUser(c).Id, &domain.PostEdit{
		Content:      req.Content,
		MediaURL:     req.MediaURL,
		MediaType:    req.MediaType,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *handlers) handleGetPost(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	post, err := h.service.GetPost(currentUser(c).Id, postId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handlers) handleEditPost(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post, err := h.service.EditPost(currentUser(c).Id, postId, &domain.PostEdit{
		Content:      req.Content,
		MediaURL:     req.MediaURL,
		MediaType:    req.MediaType,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handlers) handleDeletePost(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeletePost(currentUser(c).Id, postId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *handlers) handleFeed(c *gin.Context) {
	skip, limit := pagination(c)
	page, err := h.service.Feed(currentUser(c).Id, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) handleExplore(c *gin.Context) {
	skip, limit := pagination(c)
	page, err := h.service.Explore(currentUser(c).Id,
		c.Query("media_type"), c.Query("sort_by"), c.Query("order"), skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) handleUserPosts(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	page, err := h.service.UserPosts(currentUser(c).Id, userId, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) handleTaggedPosts(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	posts, err := h.service.TaggedPosts(currentUser(c).Id, userId, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *handlers) handleToggleLike(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ToggleLike(currentUser(c).Id, postId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) handleToggleBookmark(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ToggleBookmark(currentUser(c).Id, postId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) handleBookmarkedPosts(c *gin.Context) {
	skip, limit := pagination(c)
	posts, err := h.service.BookmarkedPosts(currentUser(c).Id, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *handlers) handleRecordView(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	counted, err := h.service.RecordPostView(currentUser(c).Id, postId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

func (h *handlers) handleHashtagPosts(c *gin.Context) {
	skip, limit := pagination(c)
	page, err := h.service.HashtagPosts(currentUser(c).Id, c.Param("tag"), skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) handleTrendingHashtags(c *gin.Context) {
	tags, err := h.service.TrendingHashtags(10)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *handlers) handleSearchHashtags(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}
	tags, err := h.service.SearchHashtags(query, 10)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
