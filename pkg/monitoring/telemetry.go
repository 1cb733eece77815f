package monitoring

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Cache event results
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheFetch      = "fetch"
	CacheInvalidate = "invalidate"
	CacheDiscard    = "discard"
)

var (
	meterProvider       *sdkmetric.MeterProvider
	requestCounter      metric.Int64Counter
	latencyHist         metric.Float64Histogram
	dbLatencyHist       metric.Float64Histogram
	dbErrorCounter      metric.Int64Counter
	cacheEventCounter   metric.Int64Counter
	cacheFetchHist      metric.Float64Histogram
	entityChangeCounter metric.Int64Counter
	aggregationHist     metric.Float64Histogram
	aggregationFailures metric.Int64Counter
	initOnce            sync.Once
	httpHandler         http.Handler
)

// Config captures the minimal setup parameters
type Config struct {
	ServiceName   string
	ResourceAttrs map[string]string
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and runtime instrumentation.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "logistics-backend"
	}

	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	for k, v := range cfg.ResourceAttrs {
		attrs = append(attrs, attribute.String(k, v))
	}

	var initErr error

	initOnce.Do(func() {
		exp, err := prometheus.New(prometheus.WithoutUnits())
		if err != nil {
			initErr = err
			return
		}

		res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
		if err != nil {
			initErr = err
			return
		}

		meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exp),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(meterProvider)
		httpHandler = promhttp.Handler()

		if initErr = registerInstruments(meterProvider.Meter(cfg.ServiceName)); initErr != nil {
			return
		}

		// Go runtime metrics (goroutines, GC, etc.)
		_ = runtime.Start(
			runtime.WithMinimumReadMemStatsInterval(10*time.Second),
			runtime.WithMeterProvider(meterProvider),
		)
	})

	if initErr != nil {
		return nil, initErr
	}

	return func(ctx context.Context) error {
		if meterProvider != nil {
			return meterProvider.Shutdown(ctx)
		}
		return nil
	}, nil
}

func registerInstruments(meter metric.Meter) error {
	var err error

	if requestCounter, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests processed"),
	); err != nil {
		return err
	}
	if latencyHist, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
	); err != nil {
		return err
	}
	if dbLatencyHist, err = meter.Float64Histogram(
		"db_latency_seconds",
		metric.WithDescription("Database latency segmented by table and operation"),
	); err != nil {
		return err
	}
	if dbErrorCounter, err = meter.Int64Counter(
		"db_errors_total",
		metric.WithDescription("Failed database statements by table and operation"),
	); err != nil {
		return err
	}
	if cacheEventCounter, err = meter.Int64Counter(
		"query_cache_events_total",
		metric.WithDescription("Query cache hits, misses, fetches, invalidations and discarded results"),
	); err != nil {
		return err
	}
	if cacheFetchHist, err = meter.Float64Histogram(
		"query_cache_fetch_duration_seconds",
		metric.WithDescription("Duration of query cache fetches"),
	); err != nil {
		return err
	}
	if entityChangeCounter, err = meter.Int64Counter(
		"entity_changes_total",
		metric.WithDescription("Entity changed events by entity, operation and origin"),
	); err != nil {
		return err
	}
	if aggregationHist, err = meter.Float64Histogram(
		"aggregation_duration_seconds",
		metric.WithDescription("Dashboard aggregation duration"),
	); err != nil {
		return err
	}
	if aggregationFailures, err = meter.Int64Counter(
		"aggregation_failures_total",
		metric.WithDescription("Failed aggregation sub-queries"),
	); err != nil {
		return err
	}
	return nil
}

// Handler returns the Prometheus /metrics handler.
func Handler() http.Handler {
	if httpHandler != nil {
		return httpHandler
	}
	return http.NotFoundHandler()
}

// HTTPMetricsMiddleware records request counts and latency, labelled by route pattern.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCounter == nil || latencyHist == nil {
			next.ServeHTTP(w, r)
			return
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		attrs := attributeSet(r.Method, routePattern(r), recorder.status)
		requestCounter.Add(r.Context(), 1, metric.WithAttributes(attrs...))
		latencyHist.Record(r.Context(), time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	s.status = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}

// Flush keeps server-sent event streams working through the recorder.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// routePattern avoids unbounded label cardinality from path parameters.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func attributeSet(method, route string, status int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	}
}

// RecordDBLatency records datastore read/write duration.
func RecordDBLatency(ctx context.Context, table, operation string, duration time.Duration, err error) {
	if dbLatencyHist == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("db.table", table),
		attribute.String("db.operation", operation),
	)
	dbLatencyHist.Record(ctx, duration.Seconds(), attrs)
	if err != nil && dbErrorCounter != nil {
		dbErrorCounter.Add(ctx, 1, attrs)
	}
}

// RecordCacheEvent increments query cache counters.
func RecordCacheEvent(ctx context.Context, scope, result string) {
	if cacheEventCounter == nil {
		return
	}

	cacheEventCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.scope", scope),
		attribute.String("cache.result", result),
	))
}

// RecordCacheFetch records how long a fetcher took and whether it failed.
func RecordCacheFetch(ctx context.Context, scope string, duration time.Duration, err error) {
	if cacheFetchHist == nil {
		return
	}

	cacheFetchHist.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("cache.scope", scope),
		attribute.String("cache.outcome", outcomeLabel(err == nil)),
	))
}

// RecordEntityChange counts entity changed events handled by the coordinator.
func RecordEntityChange(ctx context.Context, entity, op, origin string) {
	if entityChangeCounter == nil {
		return
	}

	entityChangeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity.name", entity),
		attribute.String("entity.operation", op),
		attribute.String("event.origin", origin),
	))
}

// RecordAggregation records an aggregate's duration and its failed sub-queries.
func RecordAggregation(ctx context.Context, aggregate string, duration time.Duration, failed []string) {
	if aggregationHist != nil {
		aggregationHist.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("aggregate.name", aggregate),
			attribute.String("aggregate.outcome", outcomeLabel(len(failed) == 0)),
		))
	}
	if aggregationFailures == nil {
		return
	}
	for _, name := range failed {
		aggregationFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("aggregate.name", aggregate),
			attribute.String("aggregate.subquery", name),
		))
	}
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
