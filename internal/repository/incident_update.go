package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

type IncidentUpdateRepository struct {
	db *pgxpool.Pool
}

func NewIncidentUpdateRepository(db *pgxpool.Pool) service.IncidentUpdateRepository {
	return &IncidentUpdateRepository{
		db: db,
	}
}

// Create добавляет запись в журнал изменений
func (r *IncidentUpdateRepository) Create(ctx context.Context, update *models.IncidentUpdate) error {
	query := `
		INSERT INTO incident_updates (incident_id, user_id, message, new_status)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at;
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		update.IncidentID,
		update.UserID,
		update.Message,
		update.NewStatus,
	).Scan(&update.ID, &update.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident update: %w", err)
	}
	return nil
}

// ListByIncident возвращает журнал изменений инцидента, новые первыми
func (r *IncidentUpdateRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentUpdate, error) {
	query := `
		SELECT u.id, u.incident_id, u.user_id, usr.full_name, u.message, u.new_status, u.created_at
		FROM incident_updates u
		JOIN users usr ON usr.id = u.user_id
		WHERE u.incident_id = $1
		ORDER BY u.created_at DESC;
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident updates: %w", err)
	}
	defer rows.Close()

	updates := make([]*models.IncidentUpdate, 0)
	for rows.Next() {
		update := &models.IncidentUpdate{}
		err := rows.Scan(
			&update.ID,
			&update.IncidentID,
			&update.UserID,
			&update.UserName,
			&update.Message,
			&update.NewStatus,
			&update.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident update row: %w", err)
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return updates, nil
}
