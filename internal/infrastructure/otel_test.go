package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"edaclean/internal/config"
	apperrors "edaclean/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(config.Default().Telemetry, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_Prometheus(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.MetricExporter = "prometheus"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	require.NotNil(t, providers.MeterProvider)
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := NewCleaningMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordRun(context.Background(), "clean", 2, 10*time.Millisecond, true)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cleaning_runs_total")
	assert.Contains(t, rec.Body.String(), "cleaning_rows_dropped_total")

	// A second initialization uses its own registry.
	again, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	assert.NoError(t, again.Shutdown(context.Background()))
}

func TestInitializeOTel_Stdout(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.TraceExporter = "stdout"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "clean")
	assert.True(t, span.IsRecording())
	RecordError(ctx, errors.New("boom"))
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.TraceExporter = "jaeger"

	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)

	cfg = config.Default().Telemetry
	cfg.MetricExporter = "statsd"
	_, err = InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestRecordError_MarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	providers := NewOTelProviders(tp, nil, discardLogger())

	ctx, span := providers.Tracer.Start(context.Background(), "clean")
	RecordError(ctx, apperrors.NewInvalidInputError("sample is empty"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Error", spans[0].Status().Code.String())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestCleaningMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	providers := NewOTelProviders(nil, mp, discardLogger())

	metrics, err := NewCleaningMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRun(ctx, "clean", 3, 20*time.Millisecond, true)
	metrics.RecordRun(ctx, "clean", 0, 5*time.Millisecond, false)
	metrics.RecordMasked(ctx, "alcohol", 2)
	metrics.RecordMasked(ctx, "pH", 0)
	metrics.RecordError(ctx, "clean", apperrors.NewColumnNotFoundError("density"))
	metrics.RecordError(ctx, "clean", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	histograms := map[string]uint64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histograms[m.Name] += dp.Count
				}
			}
		}
	}

	assert.Equal(t, int64(2), sums["cleaning_runs_total"])
	assert.Equal(t, int64(3), sums["cleaning_rows_dropped_total"])
	assert.Equal(t, int64(2), sums["cleaning_outliers_masked_total"])
	assert.Equal(t, int64(1), sums["cleaning_errors_total"])
	assert.Equal(t, uint64(2), histograms["cleaning_duration_seconds"])
}

func TestCleaningMetrics_NilSafe(t *testing.T) {
	var metrics *CleaningMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordRun(ctx, "clean", 1, time.Second, true)
		metrics.RecordMasked(ctx, "alcohol", 1)
		metrics.RecordError(ctx, "clean", errors.New("boom"))
	})
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "INSUFFICIENT_DATA", errorType(apperrors.NewInsufficientDataError(2, 4)))
	assert.Equal(t, "CANCELED", errorType(context.Canceled))
	assert.Equal(t, "UNKNOWN", errorType(errors.New("boom")))
}
