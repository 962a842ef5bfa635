package infrastructure

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "edaclean/internal/errors"
)

// CleaningMetrics holds the instruments recorded by cleaning passes
type CleaningMetrics struct {
	Runs           metric.Int64Counter
	RowsDropped    metric.Int64Counter
	OutliersMasked metric.Int64Counter
	Duration       metric.Float64Histogram
	Errors         metric.Int64Counter
}

// NewCleaningMetrics registers the cleaning instruments on meter
func NewCleaningMetrics(meter metric.Meter) (*CleaningMetrics, error) {
	runs, err := meter.Int64Counter(
		"cleaning_runs_total",
		metric.WithDescription("Total number of cleaning passes"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"cleaning_rows_dropped_total",
		metric.WithDescription("Total number of rows removed by cleaning passes"),
	)
	if err != nil {
		return nil, err
	}

	masked, err := meter.Int64Counter(
		"cleaning_outliers_masked_total",
		metric.WithDescription("Total number of values masked as outliers"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"cleaning_duration_seconds",
		metric.WithDescription("Cleaning pass duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"cleaning_errors_total",
		metric.WithDescription("Total number of failed cleaning passes"),
	)
	if err != nil {
		return nil, err
	}

	return &CleaningMetrics{
		Runs:           runs,
		RowsDropped:    rowsDropped,
		OutliersMasked: masked,
		Duration:       duration,
		Errors:         errs,
	}, nil
}

// RecordRun records one finished pass of the given operation
func (m *CleaningMetrics) RecordRun(ctx context.Context, operation string, rowsDropped int, duration time.Duration, success bool) {
	if m == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)

	m.Runs.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, duration.Seconds(), attrs)
	if rowsDropped > 0 {
		m.RowsDropped.Add(ctx, int64(rowsDropped), metric.WithAttributes(attribute.String("operation", operation)))
	}
}

// RecordMasked records the outliers masked in one column
func (m *CleaningMetrics) RecordMasked(ctx context.Context, column string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.OutliersMasked.Add(ctx, int64(count), metric.WithAttributes(attribute.String("column", column)))
}

// RecordError counts a failed pass, labelled with the AppError type when
// there is one
func (m *CleaningMetrics) RecordError(ctx context.Context, operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.Errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("error.type", errorType(err)),
	))
}

func errorType(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "CANCELED"
	}
	return "UNKNOWN"
}
