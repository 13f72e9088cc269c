package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

// Типы событий живой ленты
const (
	EventIncidentCreated = "incident.created"
	EventIncidentChanged = "incident.changed"
	EventNotification    = "notification"
)

const (
	incidentsTopic = "feed:incidents"
)

// IncidentsTopic - общий канал новых инцидентов
func IncidentsTopic() string {
	return incidentsTopic
}

// IncidentTopic - канал изменений конкретного инцидента
func IncidentTopic(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", incidentsTopic, id.String())
}

// UserNotificationsTopic - личный канал уведомлений пользователя
func UserNotificationsTopic(userID uuid.UUID) string {
	return fmt.Sprintf("feed:users:%s:notifications", userID.String())
}

// Event - сообщение живой ленты
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// RedisFeed публикует события через Redis Pub/Sub. Истории нет:
// событие получают только подписчики, подключенные в момент публикации.
type RedisFeed struct {
	redisClient *redis.Client
}

// NewRedisFeed создает новый RedisFeed
func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{
		redisClient: client,
	}
}

// PublishIncidentCreated публикует новый инцидент в общий канал
func (f *RedisFeed) PublishIncidentCreated(ctx context.Context, incident *models.Incident) error {
	return f.publish(ctx, IncidentsTopic(), EventIncidentCreated, incident)
}

// PublishIncidentChanged публикует изменение инцидента в его канал
func (f *RedisFeed) PublishIncidentChanged(ctx context.Context, incident *models.Incident) error {
	return f.publish(ctx, IncidentTopic(incident.ID), EventIncidentChanged, incident)
}

// PublishNotification публикует уведомление в личный канал пользователя
func (f *RedisFeed) PublishNotification(ctx context.Context, userID uuid.UUID, notification *models.Notification) error {
	return f.publish(ctx, UserNotificationsTopic(userID), EventNotification, notification)
}

func (f *RedisFeed) publish(ctx context.Context, topic, eventType string, payload any) error {
	message, err := encodeEvent(eventType, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := f.redisClient.Publish(ctx, topic, message).Err(); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", eventType, topic, err)
	}
	return nil
}

// Subscribe подписывается на канал. Канал событий закрывается при отмене ctx.
func (f *RedisFeed) Subscribe(ctx context.Context, topic string) (<-chan Event, error) {
	pubsub := f.redisClient.Subscribe(ctx, topic)
	// Дожидаемся подтверждения подписки, чтобы не потерять первые события
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				event, err := decodeEvent(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

func encodeEvent(eventType string, payload any, ts time.Time) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	message, err := json.Marshal(Event{Type: eventType, Payload: raw, Timestamp: ts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return message, nil
}

func decodeEvent(raw string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal feed event: %w", err)
	}
	return event, nil
}
