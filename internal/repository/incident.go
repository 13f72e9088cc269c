package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

// Имена автора и сотрудника подтягиваются из users
const incidentSelect = `
	SELECT
		i.id,
		i.title,
		i.description,
		i.category,
		i.status,
		i.priority,
		i.latitude,
		i.longitude,
		i.address,
		i.media_urls,
		i.reporter_id,
		r.full_name,
		i.assigned_officer_id,
		o.full_name,
		i.officer_notes,
		i.created_at,
		i.updated_at,
		i.resolved_at
	FROM incidents i
	JOIN users r ON r.id = i.reporter_id
	LEFT JOIN users o ON o.id = i.assigned_officer_id
`

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (
			title, description, category, status, priority,
			latitude, longitude, address, media_urls, reporter_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at;
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Category,
		incident.Status,
		incident.Priority,
		incident.Latitude,
		incident.Longitude,
		incident.Address,
		incident.MediaURLs,
		incident.ReporterID,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := incidentSelect + `WHERE i.id = $1;`
	incident, err := scanIncident(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// Update сохраняет изменяемые поля инцидента
func (r *IncidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	query := `
		UPDATE incidents SET
			title = $1,
			description = $2,
			status = $3,
			priority = $4,
			assigned_officer_id = $5,
			officer_notes = $6,
			resolved_at = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at;
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Status,
		incident.Priority,
		incident.AssignedOfficerID,
		incident.OfficerNotes,
		incident.ResolvedAt,
		incident.ID,
	).Scan(&incident.UpdatedAt)
	if err != nil {
		// Ни одной строки не обновлено, значит инцидента с таким id не существует
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("incident with id %s not found for update: %w", incident.ID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to update incident: %w", err)
	}
	return nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (r *IncidentRepository) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := incidentSelect + `
		ORDER BY i.created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.list(ctx, "ListIncidents", query, pageSize, offset)
}

// ListByReporter возвращает инциденты автора, новые первыми
func (r *IncidentRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*models.Incident, error) {
	query := incidentSelect + `
		WHERE i.reporter_id = $1
		ORDER BY i.created_at DESC;
	`
	return r.list(ctx, "ListByReporter", query, reporterID)
}

// ListByAssignedOfficer возвращает инциденты, назначенные сотруднику
func (r *IncidentRepository) ListByAssignedOfficer(ctx context.Context, officerID uuid.UUID) ([]*models.Incident, error) {
	query := incidentSelect + `
		WHERE i.assigned_officer_id = $1
		ORDER BY i.created_at DESC;
	`
	return r.list(ctx, "ListByAssignedOfficer", query, officerID)
}

// ListByStatus возвращает инциденты в статусе, сначала более приоритетные
func (r *IncidentRepository) ListByStatus(ctx context.Context, status models.Status) ([]*models.Incident, error) {
	query := incidentSelect + `
		WHERE i.status = $1
		ORDER BY
			CASE i.priority
				WHEN 'CRITICAL' THEN 4
				WHEN 'HIGH' THEN 3
				WHEN 'MEDIUM' THEN 2
				ELSE 1
			END DESC,
			i.created_at DESC;
	`
	return r.list(ctx, "ListByStatus", query, status)
}

// ListInBounds находит инциденты внутри прямоугольника координат
func (r *IncidentRepository) ListInBounds(ctx context.Context, bounds models.Bounds) ([]*models.Incident, error) {
	query := incidentSelect + `
		WHERE i.latitude BETWEEN $1 AND $2
			AND i.longitude BETWEEN $3 AND $4
		ORDER BY i.created_at DESC;
	`
	return r.list(ctx, "ListInBounds", query, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
}

func (r *IncidentRepository) list(ctx context.Context, op, query string, args ...any) ([]*models.Incident, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents in %s: %w", op, err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in %s: %w", op, err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return incidents, nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Category,
		&incident.Status,
		&incident.Priority,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Address,
		&incident.MediaURLs,
		&incident.ReporterID,
		&incident.ReporterName,
		&incident.AssignedOfficerID,
		&incident.AssignedOfficerName,
		&incident.OfficerNotes,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}
