package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=dashboard.go -destination=../handler/http/v1/mocks/dashboard_mock.go -package=mocks

// DashboardService - статистика только для чтения и учет событий активности
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	UserActivity(ctx context.Context, email string) (*models.UserActivity, error)
	TrackEvent(ctx context.Context, event *models.AnalyticsEvent, email string) error
}

type dashboardService struct {
	repo   AnalyticsRepository
	users  UserRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewDashboardService(repo AnalyticsRepository, users UserRepository, logger *logrus.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now()
	stats := &models.DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("service: could not count users: %w", err)
	}
	if stats.TotalIncidents, err = s.repo.CountIncidents(ctx); err != nil {
		return nil, fmt.Errorf("service: could not count incidents: %w", err)
	}
	if stats.IncidentsLast30Days, err = s.repo.CountIncidentsSince(ctx, now.AddDate(0, 0, -30)); err != nil {
		return nil, fmt.Errorf("service: could not count recent incidents: %w", err)
	}
	if stats.IncidentsLast7Days, err = s.repo.CountIncidentsSince(ctx, now.AddDate(0, 0, -7)); err != nil {
		return nil, fmt.Errorf("service: could not count recent incidents: %w", err)
	}
	if stats.IncidentsByCategory, err = s.repo.CountIncidentsByCategory(ctx); err != nil {
		return nil, fmt.Errorf("service: could not count incidents by category: %w", err)
	}
	return stats, nil
}

// UserActivity возвращает разбивку событий пользователя за последние 30 дней
func (s *dashboardService) UserActivity(ctx context.Context, email string) (*models.UserActivity, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: user not found: %w", err)
	}

	byType, err := s.repo.CountUserEventsByTypeSince(ctx, user.ID, s.now().AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("service: could not count user events: %w", err)
	}

	activity := &models.UserActivity{ActivityByType: byType}
	for _, count := range byType {
		activity.TotalEvents += count
	}
	return activity, nil
}

// TrackEvent сохраняет событие. Анонимные события (email пустой или
// неизвестный) сохраняются без пользователя.
func (s *dashboardService) TrackEvent(ctx context.Context, event *models.AnalyticsEvent, email string) error {
	if event.EventType == "" {
		return fmt.Errorf("service: event type is required: %w", ErrValidation)
	}

	if email != "" {
		user, err := s.users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			event.UserID = &user.ID
		case !errors.Is(err, ErrNotFound):
			return fmt.Errorf("service: could not resolve user: %w", err)
		}
	}

	if err := s.repo.SaveEvent(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.EventType).Error("Failed to save analytics event")
		return fmt.Errorf("service: could not save event: %w", err)
	}
	return nil
}
