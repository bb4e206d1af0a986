package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 进步引擎指标
	EventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_events_processed_total",
			Help: "Total number of activity events accepted by the progression engine",
		},
		[]string{"kind"},
	)

	EventsDuplicate = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_events_duplicate_total",
			Help: "Total number of activity events rejected as duplicates",
		},
		[]string{"kind"},
	)

	AchievementsUnlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "progression_achievements_unlocked_total",
			Help: "Total number of achievement unlocks granted",
		},
	)

	// 成就评估失败不阻塞主奖励，通过该计数器暴露出来
	AchievementEvalFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "progression_achievement_eval_failures_total",
			Help: "Total number of achievement definitions skipped due to evaluation errors",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(EventsProcessed)
	prometheus.MustRegister(EventsDuplicate)
	prometheus.MustRegister(AchievementsUnlocked)
	prometheus.MustRegister(AchievementEvalFailures)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
