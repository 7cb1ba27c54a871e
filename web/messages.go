package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type messageRequest struct {
	RecipientId string `json:"recipient_id" binding:"required"`
	Content     string `json:"content"`
	PostId      string `json:"post_id"`
	StoryId     string `json:"story_id"`
}

func (h *handlers) handleSendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	recipientId, err := uuid.Parse(req.RecipientId)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient_id"})
		return
	}

	var postId, storyId uuid.NullUUID
	if req.PostId != "" {
		parsed, err := uuid.Parse(req.PostId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post_id"})
			return
		}
		postId = uuid.NullUUID{UUID: parsed, Valid: true}
	}
	if req.StoryId != "" {
		parsed, err := uuid.Parse(req.StoryId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story_id"})
			return
		}
		storyId = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	message, err := h.service.SendMessage(currentUser(c).Id, recipientId, req.Content, postId, storyId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *handlers) handleConversations(c *gin.Context) {
	conversations, err := h.service.Conversations(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *handlers) handleConversationMessages(c *gin.Context) {
	peerId, ok := pathId(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	messages, err := h.service.ConversationMessages(currentUser(c).Id, peerId, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *handlers) handleMarkMessageRead(c *gin.Context) {
	messageId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkMessageRead(currentUser(c).Id, messageId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

func (h *handlers) handleDeleteMessage(c *gin.Context) {
	messageId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteMessage(currentUser(c).Id, messageId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
