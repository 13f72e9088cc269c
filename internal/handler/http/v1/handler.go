package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/incident_reporting_system/internal/auth"
	"github.com/shenikar/incident_reporting_system/internal/feed"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
	"github.com/sirupsen/logrus"
)

// TokenParser проверяет токен доступа
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// Authorizer проверяет права роли
type Authorizer interface {
	Allowed(role models.Role, object, action string) (bool, error)
}

// Subscriber подписывает клиента на канал живой ленты
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan feed.Event, error)
}

// Services - сервисы, которые обслуживает HTTP API
type Services struct {
	Incidents     service.IncidentService
	Notifications service.NotificationService
	Auth          service.AuthService
	Dashboard     service.DashboardService
}

type Handler struct {
	incidentService     service.IncidentService
	notificationService service.NotificationService
	authService         service.AuthService
	dashboardService    service.DashboardService
	tokens              TokenParser
	policy              Authorizer
	feed                Subscriber
	logger              *logrus.Logger
	validate            *validator.Validate
}

func NewHandler(services Services, tokens TokenParser, policy Authorizer, subscriber Subscriber, logger *logrus.Logger) *Handler {
	return &Handler{
		incidentService:     services.Incidents,
		notificationService: services.Notifications,
		authService:         services.Auth,
		dashboardService:    services.Dashboard,
		tokens:              tokens,
		policy:              policy,
		feed:                subscriber,
		logger:              logger,
		validate:            validator.New(),
	}
}

// bindAndValidate разбирает JSON тела запроса и проверяет его.
// При ошибке ответ уже отправлен.
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError переводит ошибку сервиса в HTTP-ответ
func respondError(c *gin.Context, log *logrus.Entry, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Request rejected by service validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		log.WithError(err).Warn("Conflicting request")
		c.JSON(http.StatusConflict, gin.H{"error": "resource already exists"})
	case errors.Is(err, service.ErrUnauthorized):
		log.WithError(err).Warn("Unauthorized request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrForbidden):
		log.WithError(err).Warn("Forbidden request")
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
