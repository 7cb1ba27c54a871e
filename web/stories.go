package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type storyRequest struct {
	MediaURL     string `json:"media_url" binding:"required"`
	MediaType    string `json:"media_type"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (h *handlers) handleCreateStory(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	story, err := h.service.CreateStory(currentUser(c).Id, req.MediaURL, req.MediaType, req.ThumbnailURL)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *handlers) handleStoryTray(c *gin.Context) {
	groups, err := h.service.ActiveStories(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *handlers) handleGetStory(c *gin.Context) {
	storyId, ok := pathId(c, "id")
	if !ok {
		return
	}
	story, err := h.service.GetStory(currentUser(c).Id, storyId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *handlers) handleViewStory(c *gin.Context) {
	storyId, ok := pathId(c, "id")
	if !ok {
		return
	}
	counted, err := h.service.RecordStoryView(currentUser(c).Id, storyId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

func (h *handlers) handleStoryViewers(c *gin.Context) {
	storyId, ok := pathId(c, "id")
	if !ok {
		return
	}
	viewers, err := h.service.StoryViewers(currentUser(c).Id, storyId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewers)
}

func (h *handlers) handleDeleteStory(c *gin.Context) {
	storyId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteStory(currentUser(c).Id, storyId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Story deleted"})
}
