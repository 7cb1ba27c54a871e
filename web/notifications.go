package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) handleNotifications(c *gin.Context) {
	skip, limit := pagination(c)
	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.service.ListNotifications(currentUser(c).Id, unreadOnly, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *handlers) handleUnreadCount(c *gin.Context) {
	count, err := h.service.UnreadNotificationCount(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *handlers) handleMarkNotificationRead(c *gin.Context) {
	notificationId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkNotificationRead(currentUser(c).Id, notificationId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification read"})
}

func (h *handlers) handleMarkAllRead(c *gin.Context) {
	marked, err := h.service.MarkAllNotificationsRead(currentUser(c).Id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

func (h *handlers) handleDeleteNotification(c *gin.Context) {
	notificationId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteNotification(currentUser(c).Id, notificationId); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
