package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary List my notifications
// @Description Notifications of the authenticated user, newest first.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param unreadOnly query bool false "Only unread notifications" default(false)
// @Success 200 {array} NotificationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications [get]
func (h *Handler) listNotifications(c *gin.Context) {
	log := h.logger.WithField("method", "listNotifications")
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unreadOnly", "false"))

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), currentClaims(c).Email, unreadOnly)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToNotificationResponses(notifications))
}

// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /notifications/unread-count [get]
func (h *Handler) unreadCount(c *gin.Context) {
	log := h.logger.WithField("method", "unreadCount")

	count, err := h.notificationService.UnreadCount(c.Request.Context(), currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// @Summary Mark notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} map[string]string "Invalid notification ID"
// @Failure 403 {object} map[string]string "Notification belongs to another user"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /notifications/{id}/read [put]
func (h *Handler) markNotificationRead(c *gin.Context) {
	h.setNotificationRead(c, true)
}

// @Summary Mark notification as unread
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} map[string]string "Invalid notification ID"
// @Failure 403 {object} map[string]string "Notification belongs to another user"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /notifications/{id}/unread [put]
func (h *Handler) markNotificationUnread(c *gin.Context) {
	h.setNotificationRead(c, false)
}

func (h *Handler) setNotificationRead(c *gin.Context, read bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}
	log := h.logger.WithField("method", "setNotificationRead").WithField("id", id).WithField("read", read)

	notification, err := h.notificationService.MarkRead(c.Request.Context(), currentClaims(c).Email, id, read)
	if err != nil {
		respondError(c, log, err, "notification not found")
		return
	}
	c.JSON(http.StatusOK, ModelToNotificationResponse(notification))
}
