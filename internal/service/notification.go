package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/push"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=notification.go -destination=../handler/http/v1/mocks/notification_mock.go -package=mocks

// Dispatch - сохраненное уведомление и его адресат, ожидающие доставки
type Dispatch struct {
	Recipient    *models.User
	Notification *models.Notification
}

// NotificationService определяет контракт рассылки уведомлений.
// Методы Notify* только сохраняют записи и должны вызываться внутри
// транзакции операции. Deliver вызывается после фиксации транзакции.
type NotificationService interface {
	NotifyIncidentCreated(ctx context.Context, incident *models.Incident, recipients []*models.User) ([]Dispatch, error)
	NotifyIncidentUpdated(ctx context.Context, incident *models.Incident, reporter *models.User) ([]Dispatch, error)
	NotifyIncidentAssigned(ctx context.Context, incident *models.Incident, officer *models.User) ([]Dispatch, error)
	Deliver(ctx context.Context, dispatches []Dispatch)
	ListNotifications(ctx context.Context, email string, unreadOnly bool) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, email string) (int64, error)
	MarkRead(ctx context.Context, email string, id uuid.UUID, read bool) (*models.Notification, error)
}

type notificationService struct {
	repo   NotificationRepository
	users  UserRepository
	feed   LiveFeed
	push   PushQueue
	logger *logrus.Logger
}

func NewNotificationService(repo NotificationRepository, users UserRepository, feed LiveFeed, pushQueue PushQueue, logger *logrus.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		users:  users,
		feed:   feed,
		push:   pushQueue,
		logger: logger,
	}
}

// NotifyIncidentCreated создает по одному уведомлению для каждого адресата
func (s *notificationService) NotifyIncidentCreated(ctx context.Context, incident *models.Incident, recipients []*models.User) ([]Dispatch, error) {
	title := "New Incident Reported"
	message := fmt.Sprintf("%s - %s", incident.Title, incident.Category)

	dispatches := make([]Dispatch, 0, len(recipients))
	for _, recipient := range recipients {
		d, err := s.record(ctx, recipient, incident, models.NotificationIncidentCreated, title, message)
		if err != nil {
			return nil, err
		}
		dispatches = append(dispatches, d)
	}
	return dispatches, nil
}

// NotifyIncidentUpdated уведомляет автора инцидента об изменении
func (s *notificationService) NotifyIncidentUpdated(ctx context.Context, incident *models.Incident, reporter *models.User) ([]Dispatch, error) {
	message := fmt.Sprintf("Your incident '%s' has been updated", incident.Title)
	d, err := s.record(ctx, reporter, incident, models.NotificationIncidentUpdated, "Incident Updated", message)
	if err != nil {
		return nil, err
	}
	return []Dispatch{d}, nil
}

// NotifyIncidentAssigned уведомляет назначенного сотрудника
func (s *notificationService) NotifyIncidentAssigned(ctx context.Context, incident *models.Incident, officer *models.User) ([]Dispatch, error) {
	message := fmt.Sprintf("You have been assigned to: %s", incident.Title)
	d, err := s.record(ctx, officer, incident, models.NotificationIncidentAssigned, "New Incident Assigned", message)
	if err != nil {
		return nil, err
	}
	return []Dispatch{d}, nil
}

func (s *notificationService) record(ctx context.Context, recipient *models.User, incident *models.Incident, kind models.NotificationType, title, message string) (Dispatch, error) {
	incidentID := incident.ID
	notification := &models.Notification{
		UserID:            recipient.ID,
		Title:             title,
		Message:           message,
		Type:              kind,
		Read:              false,
		RelatedIncidentID: &incidentID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return Dispatch{}, fmt.Errorf("service: could not create notification for user %s: %w", recipient.ID, err)
	}
	return Dispatch{Recipient: recipient, Notification: notification}, nil
}

// Deliver публикует уведомления в живую ленту и ставит push-сообщения в
// очередь. Ошибки доставки логируются и не возвращаются.
func (s *notificationService) Deliver(ctx context.Context, dispatches []Dispatch) {
	for _, d := range dispatches {
		log := s.logger.WithFields(logrus.Fields{
			"service":         "notification",
			"method":          "Deliver",
			"user_id":         d.Recipient.ID,
			"notification_id": d.Notification.ID,
		})

		if err := s.feed.PublishNotification(ctx, d.Recipient.ID, d.Notification); err != nil {
			log.WithError(err).Warn("Failed to publish notification to live feed")
		}

		if !d.Recipient.HasPushToken() {
			continue
		}
		msg := push.Message{
			Token: *d.Recipient.PushToken,
			Title: d.Notification.Title,
			Body:  d.Notification.Message,
		}
		if d.Notification.RelatedIncidentID != nil {
			msg.Data = map[string]string{"incident_id": d.Notification.RelatedIncidentID.String()}
		}
		if err := s.push.Enqueue(ctx, msg); err != nil {
			log.WithError(err).Error("Error sending push notification")
		}
	}
}

// ListNotifications возвращает уведомления пользователя, новые первыми
func (s *notificationService) ListNotifications(ctx context.Context, email string, unreadOnly bool) ([]*models.Notification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "notification",
		"method":      "ListNotifications",
		"unread_only": unreadOnly,
	})

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.WithError(err).Warn("Notifications requested for unknown user")
		return nil, fmt.Errorf("service: user not found: %w", err)
	}

	notifications, err := s.repo.ListByUser(ctx, user.ID, unreadOnly)
	if err != nil {
		log.WithError(err).Error("Failed to list notifications from repository")
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount возвращает количество непрочитанных уведомлений
func (s *notificationService) UnreadCount(ctx context.Context, email string) (int64, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("service: user not found: %w", err)
	}
	count, err := s.repo.CountUnread(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("service: could not count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead переключает флаг прочтения. Изменять можно только свои уведомления.
func (s *notificationService) MarkRead(ctx context.Context, email string, id uuid.UUID, read bool) (*models.Notification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":         "notification",
		"method":          "MarkRead",
		"notification_id": id,
		"read":            read,
	})

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: user not found: %w", err)
	}

	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to toggle a non-existent notification")
		return nil, fmt.Errorf("service: notification not found: %w", err)
	}
	if notification.UserID != user.ID {
		log.Warn("Attempted to toggle another user's notification")
		return nil, fmt.Errorf("service: notification belongs to another user: %w", ErrForbidden)
	}

	if err := s.repo.SetRead(ctx, id, read); err != nil {
		log.WithError(err).Error("Failed to update notification in repository")
		return nil, fmt.Errorf("service: could not update notification: %w", err)
	}
	notification.Read = read
	return notification, nil
}
