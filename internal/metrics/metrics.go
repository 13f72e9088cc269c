package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

const namespace = "incident_reporting"

// Metrics - набор метрик сервиса на собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	pushDeliveries *prometheus.CounterVec

	usersTotal          prometheus.Gauge
	incidentsTotal      prometheus.Gauge
	incidentsLast7Days  prometheus.Gauge
	incidentsLast30Days prometheus.Gauge
	incidentsByCategory *prometheus.GaugeVec
	lastRefreshTS       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.pushDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_deliveries_total",
		Help:      "Push notification delivery attempts by result",
	}, []string{"result"})

	m.usersTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "users_total",
		Help:      "Registered users",
	})
	m.incidentsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "incidents_total",
		Help:      "Reported incidents",
	})
	m.incidentsLast7Days = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "incidents_last_7_days",
		Help:      "Incidents reported during the last 7 days",
	})
	m.incidentsLast30Days = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "incidents_last_30_days",
		Help:      "Incidents reported during the last 30 days",
	})
	m.incidentsByCategory = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "incidents_by_category",
		Help:      "Reported incidents by category",
	}, []string{"category"})
	m.lastRefreshTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dashboard_last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last successful dashboard refresh",
	})

	m.registry.MustRegister(
		m.httpRequests, m.httpDuration, m.pushDeliveries,
		m.usersTotal, m.incidentsTotal, m.incidentsLast7Days, m.incidentsLast30Days,
		m.incidentsByCategory, m.lastRefreshTS,
	)
	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware считает запросы и их длительность по шаблону маршрута
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObservePushDelivery учитывает результат попытки доставки push-уведомления
func (m *Metrics) ObservePushDelivery(result string) {
	m.pushDeliveries.WithLabelValues(result).Inc()
}

// SetDashboard обновляет показатели панели мониторинга
func (m *Metrics) SetDashboard(stats *models.DashboardStats) {
	m.usersTotal.Set(float64(stats.TotalUsers))
	m.incidentsTotal.Set(float64(stats.TotalIncidents))
	m.incidentsLast7Days.Set(float64(stats.IncidentsLast7Days))
	m.incidentsLast30Days.Set(float64(stats.IncidentsLast30Days))

	m.incidentsByCategory.Reset()
	for category, count := range stats.IncidentsByCategory {
		m.incidentsByCategory.WithLabelValues(string(category)).Set(float64(count))
	}
	m.lastRefreshTS.Set(float64(time.Now().Unix()))
}
