package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsflux/inspection-service/pkg/metrics"
)

// MetricsMiddleware creates middleware that records HTTP metrics
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return MetricsMiddlewareWithConfig(m, DefaultMetricsConfig())
}

// MetricsEndpoint returns a handler for the /metrics endpoint
func MetricsEndpoint(m *metrics.Metrics) gin.HandlerFunc {
	handler := m.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// MetricsConfig holds configuration for metrics middleware
type MetricsConfig struct {
	// ExcludePaths lists paths to exclude from metrics
	ExcludePaths []string
}

// DefaultMetricsConfig returns a default metrics configuration
func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		ExcludePaths: []string{"/metrics", "/health", "/ready"},
	}
}

// MetricsMiddlewareWithConfig creates metrics middleware with custom configuration
func MetricsMiddlewareWithConfig(m *metrics.Metrics, config *MetricsConfig) gin.HandlerFunc {
	excludeMap := make(map[string]bool)
	for _, path := range config.ExcludePaths {
		excludeMap[path] = true
	}

	return func(c *gin.Context) {
		if excludeMap[c.Request.URL.Path] {
			c.Next()
			return
		}

		m.IncrementHTTPRequestsInFlight()
		defer m.DecrementHTTPRequestsInFlight()

		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath() // Use route pattern, not actual path

		if path == "" {
			path = c.Request.URL.Path
		}

		m.RecordHTTPRequest(method, path, status, duration)
	}
}

// InspectionMetrics provides helpers for recording inspection business metrics
type InspectionMetrics struct {
	metrics *metrics.Metrics
}

// NewInspectionMetrics creates a new InspectionMetrics helper
func NewInspectionMetrics(m *metrics.Metrics) *InspectionMetrics {
	return &InspectionMetrics{metrics: m}
}

// RecordOpened records a new inspection workflow
func (b *InspectionMetrics) RecordOpened() {
	b.metrics.RecordInspectionOpened()
}

// RecordCompleted records a checklist reaching completion
func (b *InspectionMetrics) RecordCompleted() {
	b.metrics.RecordInspectionCompleted()
}

// RecordChecklistItemSet records a checklist item update
func (b *InspectionMetrics) RecordChecklistItemSet(item string, value bool) {
	b.metrics.RecordChecklistItemSet(item, value)
}

// RecordDiscrepancy records a discrepancy by type and severity
func (b *InspectionMetrics) RecordDiscrepancy(discrepancyType, severity string) {
	b.metrics.RecordDiscrepancyRecorded(discrepancyType, severity)
}

// RecordReportGenerated records a generated inspection report
func (b *InspectionMetrics) RecordReportGenerated() {
	b.metrics.RecordReportGenerated()
}

// RecordReportGateRejection records a refused report request
func (b *InspectionMetrics) RecordReportGateRejection() {
	b.metrics.RecordReportGateRejection()
}

// RecordCircuitBreakerState records circuit breaker state
func (b *InspectionMetrics) RecordCircuitBreakerState(name string, state int) {
	b.metrics.SetCircuitBreakerState(name, state)
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (b *InspectionMetrics) RecordCircuitBreakerTrip(name string) {
	b.metrics.RecordCircuitBreakerTrip(name)
}
