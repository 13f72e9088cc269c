package v1

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest DTO для регистрации пользователя
// @Description DTO для регистрации пользователя
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Role     string `json:"role" validate:"required,oneof=CITIZEN POLICE NGO WATCH"`
}

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PushTokenRequest DTO для регистрации токена устройства. Пустой токен отключает push.
// @Description DTO для регистрации токена устройства
type PushTokenRequest struct {
	Token string `json:"token" validate:"max=4096"`
}

// UserResponse DTO для ответа с информацией о пользователе
// @Description DTO для ответа с информацией о пользователе
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse DTO с токеном доступа
// @Description DTO с токеном доступа
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description,omitempty" validate:"max=5000"`
	Category    string   `json:"category" validate:"required,oneof=THEFT ASSAULT VANDALISM SUSPICIOUS_ACTIVITY DOMESTIC_VIOLENCE TRAFFIC FIRE MEDICAL OTHER"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	Address     *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	MediaURLs   []string `json:"media_urls,omitempty" validate:"omitempty,max=10,dive,url"` // дубликаты отбрасываются при преобразовании
}

// UpdateStatusRequest DTO для смены статуса инцидента
// @Description DTO для смены статуса инцидента
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// AssignIncidentRequest DTO для назначения сотрудника
// @Description DTO для назначения сотрудника
type AssignIncidentRequest struct {
	OfficerID string `json:"officer_id" validate:"required,uuid"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Category            string     `json:"category"`
	Status              string     `json:"status"`
	Priority            string     `json:"priority"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	Address             *string    `json:"address,omitempty"`
	MediaURLs           []string   `json:"media_urls"`
	ReporterID          uuid.UUID  `json:"reporter_id"`
	ReporterName        string     `json:"reporter_name"`
	AssignedOfficerID   *uuid.UUID `json:"assigned_officer_id,omitempty"`
	AssignedOfficerName *string    `json:"assigned_officer_name,omitempty"`
	OfficerNotes        *string    `json:"officer_notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ResolvedAt          *time.Time `json:"resolved_at"`
}

// IncidentUpdateResponse DTO записи журнала изменений
// @Description DTO записи журнала изменений
type IncidentUpdateResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Message   string    `json:"message"`
	NewStatus *string   `json:"new_status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationResponse DTO уведомления
// @Description DTO уведомления
type NotificationResponse struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Type              string     `json:"type"`
	Read              bool       `json:"read"`
	RelatedIncidentID *uuid.UUID `json:"related_incident_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// UnreadCountResponse DTO с количеством непрочитанных уведомлений
// @Description DTO с количеством непрочитанных уведомлений
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// TrackEventRequest DTO события активности
// @Description DTO события активности
type TrackEventRequest struct {
	EventType string `json:"event_type" validate:"required,max=100"`
	EventData string `json:"event_data,omitempty" validate:"max=10000"`
}

// DashboardResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type DashboardResponse struct {
	TotalUsers          int64            `json:"total_users"`
	TotalIncidents      int64            `json:"total_incidents"`
	IncidentsLast30Days int64            `json:"incidents_last_30_days"`
	IncidentsLast7Days  int64            `json:"incidents_last_7_days"`
	IncidentsByCategory map[string]int64 `json:"incidents_by_category"`
}

// UserActivityResponse DTO активности пользователя
// @Description DTO активности пользователя
type UserActivityResponse struct {
	ActivityByType map[string]int64 `json:"activity_by_type"`
	TotalEvents    int64            `json:"total_events"`
}
