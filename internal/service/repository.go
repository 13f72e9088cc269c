package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/push"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Transactor выполняет fn в рамках одной транзакции. Репозитории, вызванные
// с переданным в fn контекстом, работают внутри этой транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository определяет контракт для работы с бд пользователей
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ListActiveByRole возвращает только пользователей с active = true.
	// На этом держится рассылка о новых инцидентах: отключенные сотрудники ее не получают.
	ListActiveByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	UpdatePushToken(ctx context.Context, id uuid.UUID, token *string) error
}

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*models.Incident, error)
	ListByAssignedOfficer(ctx context.Context, officerID uuid.UUID) ([]*models.Incident, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Incident, error)
	ListInBounds(ctx context.Context, bounds models.Bounds) ([]*models.Incident, error)
}

// IncidentUpdateRepository - журнал изменений инцидентов, только добавление
type IncidentUpdateRepository interface {
	Create(ctx context.Context, update *models.IncidentUpdate) error
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentUpdate, error)
}

// NotificationRepository определяет контракт для работы с бд уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
}

// AnalyticsRepository - события активности и агрегирующие запросы для дашборда
type AnalyticsRepository interface {
	SaveEvent(ctx context.Context, event *models.AnalyticsEvent) error
	CountUsers(ctx context.Context) (int64, error)
	CountIncidents(ctx context.Context) (int64, error)
	CountIncidentsSince(ctx context.Context, since time.Time) (int64, error)
	CountIncidentsByCategory(ctx context.Context) (map[models.Category]int64, error)
	CountUserEventsByTypeSince(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int64, error)
}

// LiveFeed публикует события для подключенных подписчиков
type LiveFeed interface {
	PublishIncidentCreated(ctx context.Context, incident *models.Incident) error
	PublishIncidentChanged(ctx context.Context, incident *models.Incident) error
	PublishNotification(ctx context.Context, userID uuid.UUID, notification *models.Notification) error
}

// PushQueue передает сообщение внешнему провайдеру push-уведомлений
type PushQueue interface {
	Enqueue(ctx context.Context, msg push.Message) error
}

// TokenIssuer выпускает токен доступа для пользователя
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}
