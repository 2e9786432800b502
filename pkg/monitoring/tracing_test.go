package monitoring

import (
	"context"
	"errors"
	"testing"
)

func newTestTracingManager(t *testing.T) *TracingManager {
	tm, err := NewTracingManager(&TracingConfig{
		ServiceName:    "test-service",
		ServiceVersion: "0.0.1",
		JaegerEndpoint: "http://localhost:14268/api/traces",
		Environment:    "test",
		SamplingRate:   1.0,
	})
	if err != nil {
		t.Fatalf("failed to create tracing manager: %v", err)
	}
	return tm
}

func TestTracingManager_StartDatabaseSpan(t *testing.T) {
	tm := newTestTracingManager(t)

	ctx, span := tm.StartDatabaseSpan(context.Background(), "select", "medications")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("Expected a valid span context for database span")
	}
	if tm.TraceIDFromContext(ctx) == "" {
		t.Error("Expected a trace ID in the returned context")
	}
}

func TestTracingManager_StartHTTPSpan(t *testing.T) {
	tm := newTestTracingManager(t)

	ctx, span := tm.StartHTTPSpan(context.Background(), "GET", "/api/v1/medications")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("Expected a valid span context for HTTP span")
	}
	if tm.SpanIDFromContext(ctx) == "" {
		t.Error("Expected a span ID in the returned context")
	}
}

func TestTracingManager_RecordError(t *testing.T) {
	tm := newTestTracingManager(t)

	_, span := tm.StartSpan(context.Background(), "unit-of-work")
	defer span.End()

	tm.RecordError(span, errors.New("query timeout"))

	if !span.IsRecording() {
		t.Error("Expected span to still be recording after an error")
	}
}

func TestTracingManager_NotificationAndAuthSpans(t *testing.T) {
	tm := newTestTracingManager(t)

	_, authSpan := tm.StartAuthSpan(context.Background(), "validate_jwt")
	authSpan.End()

	_, notifSpan := tm.StartNotificationSpan(context.Background(), "email", "medication_reminder")
	notifSpan.End()
}
