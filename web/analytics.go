package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *handlers) handleTrendingPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > maxPageSize {
		limit = 10
	}
	posts, err := h.service.TrendingPosts(currentUser(c).Id, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *handlers) handleUserStats(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	stats, err := h.service.UserStats(userId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handlers) handleDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *handlers) handleAdvancedSearch(c *gin.Context) {
	skip, limit := pagination(c)
	query := &db.PostSearch{
		Query:     c.Query("query"),
		MediaType: c.Query("media_type"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		Order:     c.DefaultQuery("sort_order", "desc"),
		Skip:      skip,
		Limit:     limit,
	}

	if raw := c.Query("has_media"); raw != "" {
		hasMedia, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid has_media"})
			return
		}
		query.HasMedia = &hasMedia
	}
	if raw := c.Query("min_likes"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_likes"})
			return
		}
		query.MinLikes = &min
	}
	if raw := c.Query("max_likes"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_likes"})
			return
		}
		query.MaxLikes = &max
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from"})
			return
		}
		query.From = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to"})
			return
		}
		query.To = &to
	}
	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
			if tag != "" {
				query.Tags = append(query.Tags, tag)
			}
		}
	}
	if raw := c.Query("author_id"); raw != "" {
		authorId, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author_id"})
			return
		}
		query.AuthorId = uuid.NullUUID{UUID: authorId, Valid: true}
	}

	page, err := h.service.SearchPosts(currentUser(c).Id, query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
