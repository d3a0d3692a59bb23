package handlers

import (
	"net/http"

	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// GetMyActivities retrieves the authenticated user's activity feed
// @Summary Get my activities
// @Description Get the authenticated user's recent activities, newest first
// @Tags activities
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of activities to retrieve (default: 20, max: 100)"
// @Success 200 {array} models.Activity
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /activities/me [get]
func (h *ActivityHandler) GetMyActivities(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit, ok := parseLimit(c, 20, 100)
	if !ok {
		return
	}

	activities, err := h.activityService.GetUserActivities(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// GetRecentActivities retrieves the platform wide activity feed
// @Summary Get recent activities
// @Description Get the most recent activities across all users
// @Tags activities
// @Produce json
// @Param limit query int false "Number of activities to retrieve (default: 20, max: 100)"
// @Success 200 {array} models.Activity
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /activities [get]
func (h *ActivityHandler) GetRecentActivities(c *gin.Context) {
	limit, ok := parseLimit(c, 20, 100)
	if !ok {
		return
	}

	activities, err := h.activityService.GetRecentActivities(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// GetMyNotifications retrieves the authenticated user's notifications
// @Summary Get my notifications
// @Description Get the authenticated user's notifications, optionally unread only
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Number of notifications to retrieve (default: 20, max: 100)"
// @Success 200 {array} models.Notification
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications [get]
func (h *ActivityHandler) GetMyNotifications(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit, ok := parseLimit(c, 20, 100)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.activityService.GetUserNotifications(userID, unreadOnly, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// CountUnread returns the number of unread notifications
// @Summary Count unread notifications
// @Description Get the number of unread notifications for the badge counter
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/unread-count [get]
func (h *ActivityHandler) CountUnread(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	count, err := h.activityService.CountUnreadNotifications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead marks one notification as read
// @Summary Mark notification as read
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/{id}/read [post]
func (h *ActivityHandler) MarkRead(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.activityService.MarkNotificationRead(userID, id); err != nil {
		respondServiceError(c, err, "Failed to mark notification as read")
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllRead marks every notification of the caller as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/read-all [post]
func (h *ActivityHandler) MarkAllRead(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.activityService.MarkAllNotificationsRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.Status(http.StatusNoContent)
}
