package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

// @Summary Track an activity event
// @Description Record a client activity event. The token is optional; anonymous events are stored without a user.
// @Tags Analytics
// @Accept json
// @Param event body TrackEventRequest true "Event"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/track [post]
func (h *Handler) trackEvent(c *gin.Context) {
	var input TrackEventRequest
	log := h.logger.WithField("method", "trackEvent")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	var email string
	if claims := currentClaims(c); claims != nil {
		email = claims.Email
	}

	event := &models.AnalyticsEvent{
		EventType: input.EventType,
		EventData: input.EventData,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := h.dashboardService.TrackEvent(c.Request.Context(), event, email); err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Dashboard statistics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "getDashboard")

	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "statistics not found")
		return
	}
	c.JSON(http.StatusOK, ModelToDashboardResponse(stats))
}

// @Summary My activity over the last 30 days
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserActivityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /analytics/user-activity [get]
func (h *Handler) getUserActivity(c *gin.Context) {
	log := h.logger.WithField("method", "getUserActivity")

	activity, err := h.dashboardService.UserActivity(c.Request.Context(), currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, UserActivityResponse{
		ActivityByType: activity.ActivityByType,
		TotalEvents:    activity.TotalEvents,
	})
}
