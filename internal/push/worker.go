package push

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Результаты доставки, передаваемые наблюдателю
const (
	ResultDelivered = "delivered"
	ResultFailed    = "failed"
	ResultSkipped   = "skipped"
)

// Observer получает результат каждой попытки доставки
type Observer interface {
	ObservePushDelivery(result string)
}

// Worker - обработчик очереди push-сообщений
type Worker struct {
	redisClient *redis.Client
	sender      Sender
	logger      *logrus.Logger
	observer    Observer
	retryDelay  time.Duration
}

// NewWorker создает новый Worker. observer может быть nil.
func NewWorker(redisClient *redis.Client, sender Sender, logger *logrus.Logger, observer Observer) *Worker {
	return &Worker{
		redisClient: redisClient,
		sender:      sender,
		logger:      logger,
		observer:    observer,
		retryDelay:  time.Second,
	}
}

// Start запускает горутину для обработки очереди push-сообщений
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting push worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping push worker.")
				return
			default:
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, pushQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop push message from Redis")
					time.Sleep(w.retryDelay)
					continue
				}

				// result[0] - ключ, result[1] - значение
				var msg Message
				if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal push message from Redis")
					continue
				}

				w.Process(ctx, msg)
			}
		}
	}()
}

// Process выполняет одну попытку доставки. Повторов нет: ошибка
// только логируется.
func (w *Worker) Process(ctx context.Context, msg Message) {
	log := w.logger.WithField("push_title", msg.Title)

	err := w.sender.Send(ctx, msg)
	switch {
	case err == nil:
		log.Info("Push notification delivered")
		w.observe(ResultDelivered)
	case errors.Is(err, ErrProviderNotConfigured):
		log.Warn("Push provider URL is not configured. Skipping push delivery.")
		w.observe(ResultSkipped)
	default:
		log.WithError(err).Error("Failed to deliver push notification")
		w.observe(ResultFailed)
	}
}

func (w *Worker) observe(result string) {
	if w.observer != nil {
		w.observer.ObservePushDelivery(result)
	}
}
