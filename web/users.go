package web

import (
	"net/http"
	"strconv"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/gin-gonic/gin"
)

type profileUpdateRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoURL"`
	IsPrivate   *bool   `json:"is_private"`
}

func (h *handlers) handleGetProfile(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	profile, err := h.service.Profile(currentUser(c).Id, userId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *handlers) handleUpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.service.UpdateProfile(currentUser(c).Id, &domain.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) handleSearchUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > maxPageSize {
		limit = 20
	}
	users, err := h.service.SearchUsers(c.Query("q"), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) handleTrendingUsers(c *gin.Context) {
	users, err := h.service.TrendingUsers(10)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) handleToggleFollow(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ToggleFollow(currentUser(c).Id, targetId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) handleFollowStatus(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	status, err := h.service.FollowStatus(currentUser(c).Id, targetId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *handlers) handleFollowers(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	users, err := h.service.Followers(userId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) handleFollowing(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	users, err := h.service.Following(userId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) handlePendingRequests(c *gin.Context) {
	pending, err := h.service.PendingFollowRequests(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *handlers) handleAcceptRequest(c *gin.Context) {
	requestId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.AcceptFollowRequest(currentUser(c).Id, requestId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow request accepted"})
}

func (h *handlers) handleRejectRequest(c *gin.Context) {
	requestId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.RejectFollowRequest(currentUser(c).Id, requestId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow request rejected"})
}

func (h *handlers) handleBlockUser(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.BlockUser(currentUser(c).Id, targetId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func (h *handlers) handleUnblockUser(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.UnblockUser(currentUser(c).Id, targetId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

func (h *handlers) handleBlockedUsers(c *gin.Context) {
	users, err := h.service.BlockedUsers(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type reportRequest struct {
	TargetType  string `json:"target_type" binding:"required"`
	TargetId    string `json:"target_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

func (h *handlers) handleReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	err := h.service.ReportContent(currentUser(c).Id, req.TargetType, req.TargetId, req.Reason, req.Description)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Report filed"})
}
