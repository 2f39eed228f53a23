package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrKind      = "kind"
)

// Metrics records the counters of one run. The zero value is a valid
// no-op recorder, as is a nil pointer.
type Metrics struct {
	messagesMatched metric.Int64Counter
	messagesDeleted metric.Int64Counter
	messageErrors   metric.Int64Counter
	apiCalls        metric.Int64Counter
}

// NewMetrics creates the run counters on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.messagesMatched, err = meter.Int64Counter(
		"messages_matched_total",
		metric.WithDescription("Total number of messages matched by the search query"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_matched_total counter: %w", err)
	}

	m.messagesDeleted, err = meter.Int64Counter(
		"messages_deleted_total",
		metric.WithDescription("Total number of messages deleted"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_deleted_total counter: %w", err)
	}

	m.messageErrors, err = meter.Int64Counter(
		"message_errors_total",
		metric.WithDescription("Total number of per-message failures recorded during a run"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message_errors_total counter: %w", err)
	}

	m.apiCalls, err = meter.Int64Counter(
		"gmail_api_calls_total",
		metric.WithDescription("Total number of Gmail API calls issued"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_api_calls_total counter: %w", err)
	}

	return m, nil
}

// RecordMatched adds n matched messages.
func (m *Metrics) RecordMatched(ctx context.Context, n int) {
	if m == nil || m.messagesMatched == nil {
		return // Instrumentation not initialized
	}
	m.messagesMatched.Add(ctx, int64(n))
}

// RecordDeleted adds n deleted messages.
func (m *Metrics) RecordDeleted(ctx context.Context, n int) {
	if m == nil || m.messagesDeleted == nil {
		return // Instrumentation not initialized
	}
	m.messagesDeleted.Add(ctx, int64(n))
}

// RecordMessageError counts one per-message failure of the given kind.
func (m *Metrics) RecordMessageError(ctx context.Context, kind string) {
	if m == nil || m.messageErrors == nil {
		return // Instrumentation not initialized
	}
	m.messageErrors.Add(ctx, 1, metric.WithAttributes(attribute.String(attrKind, kind)))
}

// RecordAPICall counts one Gmail API call for the given operation.
func (m *Metrics) RecordAPICall(ctx context.Context, operation string) {
	if m == nil || m.apiCalls == nil {
		return // Instrumentation not initialized
	}
	m.apiCalls.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOperation, operation)))
}
