package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) service.AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
	}
}

// SaveEvent сохраняет запись о событии активности в бд
func (r *AnalyticsRepository) SaveEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (user_id, event_type, event_data, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at;
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		event.UserID,
		event.EventType,
		event.EventData,
		event.IPAddress,
		event.UserAgent,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analytics event: %w", err)
	}
	return nil
}

func (r *AnalyticsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users;`)
}

func (r *AnalyticsRepository) CountIncidents(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM incidents;`)
}

// CountIncidentsSince возвращает количество инцидентов, созданных после since
func (r *AnalyticsRepository) CountIncidentsSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM incidents WHERE created_at >= $1;`, since)
}

// CountIncidentsByCategory возвращает количество инцидентов по категориям
func (r *AnalyticsRepository) CountIncidentsByCategory(ctx context.Context) (map[models.Category]int64, error) {
	query := `SELECT category, COUNT(*) FROM incidents GROUP BY category;`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents by category: %w", err)
	}
	defer rows.Close()

	result := make(map[models.Category]int64)
	for rows.Next() {
		var (
			category models.Category
			count    int64
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		result[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return result, nil
}

// CountUserEventsByTypeSince группирует события пользователя по типу
func (r *AnalyticsRepository) CountUserEventsByTypeSince(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int64, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM analytics_events
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY event_type;
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count user events: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var (
			eventType string
			count     int64
		)
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		result[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return result, nil
}

func (r *AnalyticsRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}
