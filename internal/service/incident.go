package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=../handler/http/v1/mocks/incident_mock.go -package=mocks

// IncidentService определяет контракт жизненного цикла инцидента
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident, reporterEmail string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, notes *string, actorEmail string) (*models.Incident, error)
	AssignIncident(ctx context.Context, id, officerID uuid.UUID, actorEmail string) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	ListMyIncidents(ctx context.Context, email string) ([]*models.Incident, error)
	ListAssignedIncidents(ctx context.Context, email string) ([]*models.Incident, error)
	ListPendingIncidents(ctx context.Context) ([]*models.Incident, error)
	ListIncidentsInBounds(ctx context.Context, bounds models.Bounds) ([]*models.Incident, error)
	ListIncidentUpdates(ctx context.Context, id uuid.UUID) ([]*models.IncidentUpdate, error)
}

type incidentService struct {
	tx       Transactor
	repo     IncidentRepository
	updates  IncidentUpdateRepository
	users    UserRepository
	notifier NotificationService
	feed     LiveFeed
	logger   *logrus.Logger
	now      func() time.Time
}

func NewIncidentService(
	tx Transactor,
	repo IncidentRepository,
	updates IncidentUpdateRepository,
	users UserRepository,
	notifier NotificationService,
	feed LiveFeed,
	logger *logrus.Logger,
) IncidentService {
	return &incidentService{
		tx:       tx,
		repo:     repo,
		updates:  updates,
		users:    users,
		notifier: notifier,
		feed:     feed,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateIncident создает инцидент от имени автора и уведомляет всех
// активных сотрудников полиции
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident, reporterEmail string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"title":    incident.Title,
		"category": incident.Category,
	})
	log.Info("Attempting to create a new incident")

	if !incident.Category.Valid() {
		log.Warn("Unknown incident category")
		return fmt.Errorf("service: unknown category %q: %w", incident.Category, ErrValidation)
	}

	reporter, err := s.users.GetByEmail(ctx, reporterEmail)
	if err != nil {
		log.WithError(err).Warn("Reporter identity could not be resolved")
		return fmt.Errorf("service: reporter not found: %w", err)
	}

	incident.ReporterID = reporter.ID
	incident.ReporterName = reporter.FullName
	incident.Status = models.StatusPending
	incident.Priority = DeterminePriority(incident.Category)
	incident.AssignedOfficerID = nil
	incident.AssignedOfficerName = nil
	incident.OfficerNotes = nil
	incident.ResolvedAt = nil
	if incident.MediaURLs == nil {
		incident.MediaURLs = []string{}
	}

	var dispatches []Dispatch
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, incident); err != nil {
			return fmt.Errorf("could not create incident: %w", err)
		}

		officers, err := s.users.ListActiveByRole(ctx, models.RolePolice)
		if err != nil {
			return fmt.Errorf("could not list police officers: %w", err)
		}

		dispatches, err = s.notifier.NotifyIncidentCreated(ctx, incident, officers)
		return err
	})
	if err != nil {
		log.WithError(err).Error("Failed to create incident")
		return fmt.Errorf("service: %w", err)
	}

	s.notifier.Deliver(ctx, dispatches)
	if err := s.feed.PublishIncidentCreated(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to publish incident to live feed")
	}

	log.WithFields(logrus.Fields{
		"incident_id":    incident.ID,
		"priority":       incident.Priority,
		"officers_count": len(dispatches),
	}).Info("Incident created successfully")
	return nil
}

// UpdateStatus устанавливает новый статус. Переход допускается из любого
// статуса в любой, каждое изменение фиксируется в журнале.
func (s *incidentService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, notes *string, actorEmail string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateStatus",
		"incident_id": id,
		"status":      status,
	})
	log.Info("Attempting to update incident status")

	if !status.Valid() {
		log.Warn("Unknown incident status")
		return nil, fmt.Errorf("service: unknown status %q: %w", status, ErrValidation)
	}

	var (
		incident   *models.Incident
		dispatches []Dispatch
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		incident, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("incident with id %s not found for status update: %w", id, err)
		}

		actor, err := s.users.GetByEmail(ctx, actorEmail)
		if err != nil {
			return fmt.Errorf("acting user not found: %w", err)
		}

		reporter, err := s.users.GetByID(ctx, incident.ReporterID)
		if err != nil {
			return fmt.Errorf("reporter of incident %s not found: %w", id, err)
		}

		incident.Status = status
		if notes != nil {
			incident.OfficerNotes = notes
		}
		// resolved_at не сбрасывается при уходе из RESOLVED/CLOSED
		if status.StampsResolution() {
			resolvedAt := s.now()
			incident.ResolvedAt = &resolvedAt
		}

		if err := s.repo.Update(ctx, incident); err != nil {
			return fmt.Errorf("could not update incident: %w", err)
		}

		message := fmt.Sprintf("Status updated to %s", status)
		if notes != nil {
			message = *notes
		}
		newStatus := status
		if err := s.updates.Create(ctx, &models.IncidentUpdate{
			IncidentID: incident.ID,
			UserID:     actor.ID,
			UserName:   actor.FullName,
			Message:    message,
			NewStatus:  &newStatus,
		}); err != nil {
			return fmt.Errorf("could not record incident update: %w", err)
		}

		dispatches, err = s.notifier.NotifyIncidentUpdated(ctx, incident, reporter)
		return err
	})
	if err != nil {
		log.WithError(err).Error("Failed to update incident status")
		return nil, fmt.Errorf("service: %w", err)
	}

	s.notifier.Deliver(ctx, dispatches)
	if err := s.feed.PublishIncidentChanged(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to publish incident update to live feed")
	}

	log.Info("Incident status updated successfully")
	return incident, nil
}

// AssignIncident назначает сотрудника и переводит инцидент в ASSIGNED
// независимо от текущего статуса
func (s *incidentService) AssignIncident(ctx context.Context, id, officerID uuid.UUID, actorEmail string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AssignIncident",
		"incident_id": id,
		"officer_id":  officerID,
		"actor":       actorEmail,
	})
	log.Info("Attempting to assign incident")

	var (
		incident   *models.Incident
		dispatches []Dispatch
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		incident, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("incident with id %s not found for assignment: %w", id, err)
		}

		officer, err := s.users.GetByID(ctx, officerID)
		if err != nil {
			return fmt.Errorf("officer with id %s not found: %w", officerID, err)
		}

		incident.AssignedOfficerID = &officer.ID
		incident.AssignedOfficerName = &officer.FullName
		incident.Status = models.StatusAssigned

		if err := s.repo.Update(ctx, incident); err != nil {
			return fmt.Errorf("could not update incident: %w", err)
		}

		dispatches, err = s.notifier.NotifyIncidentAssigned(ctx, incident, officer)
		return err
	})
	if err != nil {
		log.WithError(err).Error("Failed to assign incident")
		return nil, fmt.Errorf("service: %w", err)
	}

	s.notifier.Deliver(ctx, dispatches)
	if err := s.feed.PublishIncidentChanged(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to publish incident assignment to live feed")
	}

	log.Info("Incident assigned successfully")
	return incident, nil
}

// GetIncident получает инцидент по ID
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (s *incidentService) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "ListIncidents",
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing incidents")

	incidents, err := s.repo.ListIncidents(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// ListMyIncidents возвращает инциденты, созданные пользователем
func (s *incidentService) ListMyIncidents(ctx context.Context, email string) ([]*models.Incident, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: user not found: %w", err)
	}
	incidents, err := s.repo.ListByReporter(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list reported incidents: %w", err)
	}
	return incidents, nil
}

// ListAssignedIncidents возвращает инциденты, назначенные пользователю
func (s *incidentService) ListAssignedIncidents(ctx context.Context, email string) ([]*models.Incident, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: user not found: %w", err)
	}
	incidents, err := s.repo.ListByAssignedOfficer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list assigned incidents: %w", err)
	}
	return incidents, nil
}

func (s *incidentService) ListPendingIncidents(ctx context.Context) ([]*models.Incident, error) {
	incidents, err := s.repo.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("service: could not list pending incidents: %w", err)
	}
	return incidents, nil
}

// ListIncidentsInBounds возвращает инциденты в прямоугольной области карты
func (s *incidentService) ListIncidentsInBounds(ctx context.Context, bounds models.Bounds) ([]*models.Incident, error) {
	if bounds.MinLat > bounds.MaxLat || bounds.MinLon > bounds.MaxLon {
		return nil, fmt.Errorf("service: inverted bounds: %w", ErrValidation)
	}
	incidents, err := s.repo.ListInBounds(ctx, bounds)
	if err != nil {
		return nil, fmt.Errorf("service: could not list incidents in bounds: %w", err)
	}
	return incidents, nil
}

// ListIncidentUpdates возвращает журнал изменений инцидента, новые первыми
func (s *incidentService) ListIncidentUpdates(ctx context.Context, id uuid.UUID) ([]*models.IncidentUpdate, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	updates, err := s.updates.ListByIncident(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not list incident updates: %w", err)
	}
	return updates, nil
}
