package monitoring

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
)

type requestIDKey struct{}

// RequestIDFromContext extracts the request ID assigned by the
// monitoring middleware, or an empty string if none was set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// MonitoringMiddleware combines metrics, tracing, and logging. The
// tracing manager may be nil; spans are then no-ops and only metrics
// and logs are produced.
type MonitoringMiddleware struct {
	metrics *MetricsCollector
	tracing *TracingManager
	logger  *logger.Logger
	noop    trace.Tracer
}

// NewMonitoringMiddleware creates a new monitoring middleware
func NewMonitoringMiddleware(metrics *MetricsCollector, tracing *TracingManager, log *logger.Logger) *MonitoringMiddleware {
	return &MonitoringMiddleware{
		metrics: metrics,
		tracing: tracing,
		logger:  log,
		noop:    trace.NewNoopTracerProvider().Tracer("noop"),
	}
}

func (mm *MonitoringMiddleware) startSpan(ctx context.Context, kind string, start func() (context.Context, trace.Span)) (context.Context, trace.Span) {
	if mm.tracing == nil {
		return mm.noop.Start(ctx, kind)
	}
	return start()
}

// HTTPMiddleware creates comprehensive HTTP monitoring middleware
func (mm *MonitoringMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Generate request ID if not present
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

		// Extract incoming trace context and start a span
		ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(r.Header))
		ctx, span := mm.startSpan(ctx, r.Method+" "+r.URL.Path, func() (context.Context, trace.Span) {
			return mm.tracing.StartHTTPSpan(ctx, r.Method, r.URL.Path)
		})
		defer span.End()

		span.SetAttributes(
			attribute.String("http.user_agent", r.UserAgent()),
			attribute.String("http.remote_addr", r.RemoteAddr),
			attribute.String("request.id", requestID),
		)

		wrapper := &monitoringResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		wrapper.Header().Set("X-Request-ID", requestID)
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(wrapper.Header()))

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		duration := time.Since(start)

		statusCode := strconv.Itoa(wrapper.statusCode)
		mm.metrics.RecordHTTPRequest(r.Method, r.URL.Path, statusCode, duration)

		span.SetAttributes(
			attribute.Int("http.status_code", wrapper.statusCode),
			attribute.Int64("http.response_size", wrapper.bytesWritten),
		)

		if wrapper.statusCode >= 400 {
			span.SetStatus(codes.Error, http.StatusText(wrapper.statusCode))
		}

		mm.logger.WithFields(map[string]interface{}{
			"request_id":    requestID,
			"method":        r.Method,
			"path":          r.URL.Path,
			"status_code":   wrapper.statusCode,
			"duration_ms":   duration.Milliseconds(),
			"bytes_written": wrapper.bytesWritten,
		}).Info("Request processed")
	})
}

// DatabaseMiddleware creates middleware for database operations
func (mm *MonitoringMiddleware) DatabaseMiddleware(operation, table string) func(context.Context, func() error) error {
	return func(ctx context.Context, dbFunc func() error) error {
		start := time.Now()

		_, span := mm.startSpan(ctx, "db."+operation, func() (context.Context, trace.Span) {
			return mm.tracing.StartDatabaseSpan(ctx, operation, table)
		})
		defer span.End()

		err := dbFunc()

		mm.metrics.RecordDBQuery(operation, time.Since(start))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			mm.metrics.RecordSystemError("database_error", "database")
		}

		return err
	}
}

// AuthMiddleware creates middleware for authentication operations
func (mm *MonitoringMiddleware) AuthMiddleware(method string) func(context.Context, func() error) error {
	return func(ctx context.Context, authFunc func() error) error {
		_, span := mm.startSpan(ctx, "auth."+method, func() (context.Context, trace.Span) {
			return mm.tracing.StartAuthSpan(ctx, method)
		})
		defer span.End()

		err := authFunc()

		status := "success"
		if err != nil {
			status = "failed"
		}

		mm.metrics.RecordAuthAttempt(method, status)
		span.SetAttributes(attribute.String("auth.status", status))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			mm.metrics.RecordSystemError("auth_error", "authentication")
		}

		return err
	}
}

// NotificationMiddleware creates middleware for notification delivery
func (mm *MonitoringMiddleware) NotificationMiddleware(channel, notificationType string) func(context.Context, func() error) error {
	return func(ctx context.Context, sendFunc func() error) error {
		_, span := mm.startSpan(ctx, "notification."+channel, func() (context.Context, trace.Span) {
			return mm.tracing.StartNotificationSpan(ctx, channel, notificationType)
		})
		defer span.End()

		err := sendFunc()

		status := "delivered"
		if err != nil {
			status = "failed"
		}

		mm.metrics.RecordNotificationDelivery(channel, status)
		span.SetAttributes(attribute.String("notification.status", status))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			mm.metrics.RecordSystemError("delivery_error", "notification")
		}

		return err
	}
}

// monitoringResponseWriter wraps http.ResponseWriter to capture metrics
type monitoringResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (mrw *monitoringResponseWriter) WriteHeader(code int) {
	mrw.statusCode = code
	mrw.ResponseWriter.WriteHeader(code)
}

func (mrw *monitoringResponseWriter) Write(b []byte) (int, error) {
	n, err := mrw.ResponseWriter.Write(b)
	mrw.bytesWritten += int64(n)
	return n, err
}
