package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/feed"
)

// @Summary Stream newly reported incidents
// @Description Server-Sent Events. The token may be passed as the token query parameter.
// @Tags Feed
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Router /feed/incidents [get]
func (h *Handler) streamIncidents(c *gin.Context) {
	h.stream(c, feed.IncidentsTopic())
}

// @Summary Stream changes of one incident
// @Tags Feed
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Router /feed/incidents/{id} [get]
func (h *Handler) streamIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	h.stream(c, feed.IncidentTopic(id))
}

// @Summary Stream my notifications
// @Tags Feed
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Router /feed/notifications [get]
func (h *Handler) streamNotifications(c *gin.Context) {
	h.stream(c, feed.UserNotificationsTopic(currentClaims(c).UserID))
}

// stream пересылает события канала клиенту до его отключения
func (h *Handler) stream(c *gin.Context, topic string) {
	ctx := c.Request.Context()
	log := h.logger.WithField("method", "stream").WithField("topic", topic)

	events, err := h.feed.Subscribe(ctx, topic)
	if err != nil {
		log.WithError(err).Error("Failed to subscribe to live feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()
	log.Info("Live feed client connected")

	for {
		select {
		case <-ctx.Done():
			log.Info("Live feed client disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(event.Type, event.Payload)
			c.Writer.Flush()
		}
	}
}
