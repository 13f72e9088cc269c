package metrics

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
)

// StatsSource - источник агрегированной статистики
type StatsSource interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// Refresher по расписанию переносит статистику дашборда в метрики
type Refresher struct {
	cron    *cron.Cron
	source  StatsSource
	metrics *Metrics
	logger  *logrus.Logger
}

func NewRefresher(source StatsSource, metrics *Metrics, logger *logrus.Logger) *Refresher {
	return &Refresher{
		cron:    cron.New(),
		source:  source,
		metrics: metrics,
		logger:  logger,
	}
}

// Start выполняет первое обновление сразу и регистрирует задачу по расписанию spec
func (r *Refresher) Start(ctx context.Context, spec string) error {
	if _, err := r.cron.AddFunc(spec, func() { r.Refresh(ctx) }); err != nil {
		return fmt.Errorf("invalid metrics refresh schedule %q: %w", spec, err)
	}

	r.logger.WithField("schedule", spec).Info("Starting metrics refresher...")
	r.Refresh(ctx)
	r.cron.Start()
	return nil
}

// Stop останавливает планировщик и ждет завершения текущей задачи
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Stopping metrics refresher.")
}

func (r *Refresher) Refresh(ctx context.Context) {
	stats, err := r.source.Stats(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Failed to refresh dashboard metrics")
		return
	}
	r.metrics.SetDashboard(stats)
}
