package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todo-api/query"
)

const (
	tracerName    = "todo-api"
	itemsSpanName = "api.items.query"
	itemsRoute    = "/api/items"
)

// itemsRequestMetrics collects per-request timings for the items query
// and emits them twice: as attributes on an OpenTelemetry span and as a
// structured log entry carrying the trace id.
type itemsRequestMetrics struct {
	logger *log.Logger
	span   trace.Span
	start  time.Time

	queryDuration  time.Duration
	encodeDuration time.Duration

	filterProvided bool
	orderProvided  bool
	cursorProvided bool
	itemsReturned  int
	totalCount     int
	hasNextPage    bool
	errorStage     string
}

func newItemsRequestMetrics(ctx context.Context, logger *log.Logger) (*itemsRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, itemsSpanName)
	return &itemsRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}, spanCtx
}

func (m *itemsRequestMetrics) ObserveQuery(d time.Duration) {
	if d > 0 {
		m.queryDuration = d
	}
}

func (m *itemsRequestMetrics) ObserveEncode(d time.Duration) {
	if d > 0 {
		m.encodeDuration = d
	}
}

func (m *itemsRequestMetrics) SetParamsProvided(p query.Params) {
	m.filterProvided = p.Completed != nil
	m.orderProvided = len(p.OrderBy) > 0
	m.cursorProvided = p.After != ""
}

func (m *itemsRequestMetrics) SetItemsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.itemsReturned = count
}

func (m *itemsRequestMetrics) SetTotalCount(count int) {
	if count < 0 {
		count = 0
	}
	m.totalCount = count
}

func (m *itemsRequestMetrics) SetHasNextPage(hasNext bool) {
	m.hasNextPage = hasNext
}

func (m *itemsRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *itemsRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}
	defer m.span.End()

	totalMs := durationToMillis(time.Since(m.start))
	attrs := []attribute.KeyValue{
		attribute.String("http.route", itemsRoute),
		attribute.Int("http.status_code", status),
		attribute.Float64("todo.items.total_ms", totalMs),
		attribute.Bool("todo.items.filter_provided", m.filterProvided),
		attribute.Bool("todo.items.order_provided", m.orderProvided),
		attribute.Bool("todo.items.cursor_provided", m.cursorProvided),
		attribute.Int("todo.items.items_returned", m.itemsReturned),
		attribute.Int("todo.items.total_count", m.totalCount),
		attribute.Bool("todo.items.has_next_page", m.hasNextPage),
	}
	if m.errorStage != "" {
		attrs = append(attrs, attribute.String("todo.items.error_stage", m.errorStage))
	}
	m.span.SetAttributes(attrs...)
	if err != nil || m.errorStage != "" {
		m.span.SetStatus(codes.Error, m.errorStage)
	} else {
		m.span.SetStatus(codes.Ok, "")
	}

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"route":           itemsRoute,
		"status":          status,
		"total_ms":        totalMs,
		"filter_provided": m.filterProvided,
		"order_provided":  m.orderProvided,
		"cursor_provided": m.cursorProvided,
		"items_returned":  m.itemsReturned,
		"total_count":     m.totalCount,
		"has_next_page":   m.hasNextPage,
	}
	if m.queryDuration > 0 {
		fields["query_ms"] = durationToMillis(m.queryDuration)
	}
	if m.encodeDuration > 0 {
		fields["encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	if sc := m.span.SpanContext(); sc.HasTraceID() {
		fields["trace_id"] = sc.TraceID().String()
	}
	m.logger.WithFields(fields).Info("items.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
