package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/auth"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authenticated := h.AuthMiddleware()
	can := h.RequirePermission

	// Регистрация и вход
	account := api.Group("/auth")
	{
		account.POST("/register", h.register)
		account.POST("/login", h.login)
		account.GET("/me", authenticated, h.me)
		account.PUT("/push-token", authenticated, h.updatePushToken)
	}

	// Жизненный цикл инцидентов
	incidents := api.Group("/incidents", authenticated)
	{
		incidents.POST("", can(auth.ObjectIncidents, auth.ActionCreate), h.createIncident)
		incidents.GET("", can(auth.ObjectIncidents, auth.ActionRead), h.listIncidents)
		incidents.GET("/my", can(auth.ObjectIncidents, auth.ActionRead), h.listMyIncidents)
		incidents.GET("/assigned", can(auth.ObjectIncidents, auth.ActionReadAssigned), h.listAssignedIncidents)
		incidents.GET("/pending", can(auth.ObjectIncidents, auth.ActionReadPending), h.listPendingIncidents)
		incidents.GET("/bounds", can(auth.ObjectIncidents, auth.ActionRead), h.listIncidentsInBounds)
		incidents.GET("/:id", can(auth.ObjectIncidents, auth.ActionRead), h.getIncident)
		incidents.GET("/:id/updates", can(auth.ObjectIncidents, auth.ActionRead), h.listIncidentUpdates)
		incidents.PUT("/:id/status", can(auth.ObjectIncidents, auth.ActionUpdateStatus), h.updateIncidentStatus)
		incidents.PUT("/:id/assign", can(auth.ObjectIncidents, auth.ActionAssign), h.assignIncident)
	}

	notifications := api.Group("/notifications", authenticated)
	{
		notifications.GET("", can(auth.ObjectNotifications, auth.ActionRead), h.listNotifications)
		notifications.GET("/unread-count", can(auth.ObjectNotifications, auth.ActionRead), h.unreadCount)
		notifications.PUT("/:id/read", can(auth.ObjectNotifications, auth.ActionUpdate), h.markNotificationRead)
		notifications.PUT("/:id/unread", can(auth.ObjectNotifications, auth.ActionUpdate), h.markNotificationUnread)
	}

	analytics := api.Group("/analytics")
	{
		// Анонимные события тоже принимаются
		analytics.POST("/track", h.optionalAuth(), h.trackEvent)
		analytics.GET("/dashboard", authenticated, can(auth.ObjectDashboard, auth.ActionRead), h.getDashboard)
		analytics.GET("/user-activity", authenticated, can(auth.ObjectAnalytics, auth.ActionRead), h.getUserActivity)
	}

	// Живая лента (Server-Sent Events)
	live := api.Group("/feed", authenticated, can(auth.ObjectFeed, auth.ActionRead))
	{
		live.GET("/incidents", h.streamIncidents)
		live.GET("/incidents/:id", h.streamIncident)
		live.GET("/notifications", h.streamNotifications)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
