package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type commentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentId string `json:"parent_id"`
}

func (h *handlers) handleAddComment(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var parentId uuid.NullUUID
	if req.ParentId != "" {
		parsed, err := uuid.Parse(req.ParentId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent_id"})
			return
		}
		parentId = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	comment, err := h.service.AddComment(currentUser(c).Id, postId, req.Content, parentId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *handlers) handlePostComments(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	comments, err := h.service.PostComments(currentUser(c).Id, postId, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *handlers) handleCommentReplies(c *gin.Context) {
	commentId, ok := pathId(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	replies, err := h.service.CommentReplies(commentId, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (h *handlers) handleEditComment(c *gin.Context) {
	commentId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	comment, err := h.service.EditComment(currentUser(c).Id, commentId, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *handlers) handleDeleteComment(c *gin.Context) {
	commentId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteComment(currentUser(c).Id, commentId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
