package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent - событие активности пользователя
type AnalyticsEvent struct {
	ID        int64      `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	EventType string     `json:"event_type"`
	EventData string     `json:"event_data,omitempty"`
	IPAddress string     `json:"ip_address,omitempty"`
	UserAgent string     `json:"user_agent,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// DashboardStats - агрегированная статистика для панели мониторинга
type DashboardStats struct {
	TotalUsers          int64              `json:"total_users"`
	TotalIncidents      int64              `json:"total_incidents"`
	IncidentsLast30Days int64              `json:"incidents_last_30_days"`
	IncidentsLast7Days  int64              `json:"incidents_last_7_days"`
	IncidentsByCategory map[Category]int64 `json:"incidents_by_category"`
}

// UserActivity - разбивка событий активности по типам
type UserActivity struct {
	ActivityByType map[string]int64 `json:"activity_by_type"`
	TotalEvents    int64            `json:"total_events"`
}
