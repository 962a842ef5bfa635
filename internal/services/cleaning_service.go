package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"edaclean/internal/config"
	apperrors "edaclean/internal/errors"
	"edaclean/internal/files"
	"edaclean/internal/frame"
	"edaclean/internal/infrastructure"
	"edaclean/internal/outliers"
	"edaclean/internal/stats"
	"edaclean/internal/tableio"
	"edaclean/internal/validation"
)

// Operation names used for spans, metrics and logs
const (
	OpClean     = "clean"
	OpCleanFile = "clean_file"
	OpSummarize = "summarize"
	OpDescribe  = "describe"
	OpCleanDir  = "clean_dir"
)

// CleaningService runs outlier cleaning passes with the configured options,
// tracing, measuring and logging each one.
type CleaningService struct {
	cfg       config.CleaningConfig
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.CleaningMetrics
	validator *validation.FileValidator
}

// CleanResult is the outcome of one cleaning pass
type CleanResult struct {
	Table  *frame.Table
	Report *outliers.CleanReport
	// Duplicates counts rows removed by duplicate dropping before cleaning.
	Duplicates int
}

// RowsDropped returns every row the pass removed, duplicates included
func (r *CleanResult) RowsDropped() int {
	return r.Duplicates + r.Report.RowsDropped()
}

// NewCleaningService creates a cleaning service. A nil logger falls back to
// the global logger; nil providers disable tracing and metrics.
func NewCleaningService(cfg config.CleaningConfig, logger *slog.Logger, providers *infrastructure.OTelProviders) (*CleaningService, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if providers == nil {
		providers = infrastructure.NewOTelProviders(nil, nil, logger)
	}

	metrics, err := infrastructure.NewCleaningMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaning metrics: %w", err)
	}

	logger = infrastructure.WithComponent(logger, "cleaning_service")
	return &CleaningService{
		cfg:       cfg,
		logger:    logger,
		tracer:    providers.Tracer,
		metrics:   metrics,
		validator: validation.NewFileValidator(logger),
	}, nil
}

// Options returns the CleanTable options derived from the configuration
func (s *CleaningService) Options() outliers.CleanOptions {
	return outliers.CleanOptions{
		Columns:        append([]string(nil), s.cfg.Columns...),
		Multiplier:     s.cfg.Multiplier,
		DropIncomplete: s.cfg.DropIncomplete,
		Workers:        s.cfg.Workers,
	}
}

// Clean drops duplicate rows when configured, then masks outliers and drops
// incomplete rows according to the configuration.
func (s *CleaningService) Clean(ctx context.Context, t *frame.Table) (*CleanResult, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.startSpan(ctx, OpClean)
	defer span.End()

	start := time.Now()
	result, err := s.clean(ctx, t)
	s.finish(ctx, span, OpClean, start, result, err)
	return result, err
}

// CleanFile reads a CSV or XLSX table from in, cleans it and writes the
// result to out. Formats are chosen by file extension.
func (s *CleaningService) CleanFile(ctx context.Context, in, out string) (*CleanResult, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.startSpan(ctx, OpCleanFile,
		attribute.String("cleaning.input", in),
		attribute.String("cleaning.output", out))
	defer span.End()

	start := time.Now()
	result, err := s.cleanFile(ctx, in, out)
	s.finish(ctx, span, OpCleanFile, start, result, err)
	return result, err
}

func (s *CleaningService) cleanFile(ctx context.Context, in, out string) (*CleanResult, error) {
	if err := s.validator.ValidateTableFile(in); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateOutputFile(in, out); err != nil {
		return nil, err
	}

	t, err := tableio.ReadFile(ctx, in, tableio.ReadOptions{TextColumns: s.cfg.TextColumns})
	if err != nil {
		return nil, err
	}

	result, err := s.clean(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := tableio.WriteFile(ctx, out, result.Table); err != nil {
		return nil, err
	}
	return result, nil
}

// CleanDir cleans every CSV and XLSX file directly inside inDir, writing
// each result under the same name in outDir. Files that fail are skipped
// and their errors combined; results are keyed by file name.
func (s *CleaningService) CleanDir(ctx context.Context, inDir, outDir string) (map[string]*CleanResult, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.startSpan(ctx, OpCleanDir,
		attribute.String("cleaning.input", inDir),
		attribute.String("cleaning.output", outDir))
	defer span.End()

	if err := s.validator.ValidateInputDirectory(inDir); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	found, err := files.NewDiscovery("").FindTables(inDir)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	var errs error
	results := make(map[string]*CleanResult, len(found))
	for _, f := range found {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		result, err := s.CleanFile(ctx, f.Path, filepath.Join(outDir, f.Name))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		results[f.Name] = result
	}

	span.SetAttributes(
		attribute.Int("cleaning.files", len(found)),
		attribute.Int("cleaning.failed", len(multierr.Errors(errs))))
	if errs != nil {
		infrastructure.RecordError(ctx, errs)
	}
	s.logger.InfoContext(ctx, "directory cleaned",
		slog.String("input", inDir),
		slog.String("output", outDir),
		slog.Int("files", len(found)),
		slog.Int("cleaned", len(results)),
		slog.Int("failed", len(multierr.Errors(errs))))
	return results, errs
}

func (s *CleaningService) clean(ctx context.Context, t *frame.Table) (*CleanResult, error) {
	if t == nil {
		return nil, apperrors.NewInvalidInputError("table is nil")
	}

	duplicates := 0
	if s.cfg.DropDuplicates {
		deduped := t.DropDuplicates(true)
		duplicates = t.Len() - deduped.Len()
		t = deduped
	}

	cleaned, report, err := outliers.CleanTable(ctx, t, s.Options())
	if err != nil {
		return nil, err
	}
	return &CleanResult{Table: cleaned, Report: report, Duplicates: duplicates}, nil
}

// Summarize reports fences, extremes and outlier counts for the configured
// columns. Reports for columns that could be profiled are returned even when
// others failed; the failures are combined in the error.
func (s *CleaningService) Summarize(ctx context.Context, t *frame.Table) ([]outliers.ColumnReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.startSpan(ctx, OpSummarize)
	defer span.End()

	start := time.Now()
	reports, err := outliers.Summarize(t, s.cfg.Columns, s.cfg.Multiplier)
	s.finishPartial(ctx, OpSummarize, start, len(reports), err)

	for _, r := range reports {
		s.logger.DebugContext(ctx, "column summary",
			slog.String("column", r.Column),
			slog.Float64("min", r.Min),
			slog.Float64("max", r.Max),
			slog.Float64("lower_fence", r.Fences.Lower),
			slog.Float64("upper_fence", r.Fences.Upper),
			slog.Int("below", r.Below),
			slog.Int("above", r.Above))
	}
	return reports, err
}

// Describe computes descriptive statistics for the configured columns, or
// every numeric column when none are configured.
func (s *CleaningService) Describe(ctx context.Context, t *frame.Table) (map[string]stats.Description, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.startSpan(ctx, OpDescribe)
	defer span.End()

	start := time.Now()
	descriptions, err := describeTable(t, s.cfg.Columns)
	s.finishPartial(ctx, OpDescribe, start, len(descriptions), err)
	return descriptions, err
}

func describeTable(t *frame.Table, columns []string) (map[string]stats.Description, error) {
	if t == nil {
		return nil, apperrors.NewInvalidInputError("table is nil")
	}
	if len(columns) == 0 {
		columns = t.NumericNames()
	}

	var errs error
	descriptions := make(map[string]stats.Description, len(columns))
	for _, name := range columns {
		values, err := t.Numeric(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		d, err := stats.Describe(values)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("column %q: %w", name, err))
			continue
		}
		descriptions[name] = d
	}
	return descriptions, errs
}

func (s *CleaningService) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("cleaning.operation", op),
		attribute.String("trace_id", infrastructure.GetTraceID(ctx)))
	return s.tracer.Start(ctx, "cleaning."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
}

// finish records the outcome of a cleaning pass on the span, the metrics and
// the log
func (s *CleaningService) finish(ctx context.Context, span trace.Span, op string, start time.Time, result *CleanResult, err error) {
	duration := time.Since(start)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordError(ctx, op, err)
		s.metrics.RecordRun(ctx, op, 0, duration, false)
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "cleaning failed",
			slog.String("operation", op),
			slog.Duration("duration", duration))
		return
	}

	report := result.Report
	s.metrics.RecordRun(ctx, op, result.RowsDropped(), duration, true)
	for _, c := range report.Columns {
		s.metrics.RecordMasked(ctx, c.Column, c.Total())
		s.logger.DebugContext(ctx, "column cleaned",
			slog.String("run_id", report.RunID),
			slog.String("column", c.Column),
			slog.Float64("lower_fence", c.Fences.Lower),
			slog.Float64("upper_fence", c.Fences.Upper),
			slog.Int("below", c.Below),
			slog.Int("above", c.Above))
	}

	span.SetAttributes(
		attribute.String("cleaning.run_id", report.RunID),
		attribute.Int("cleaning.rows_in", report.RowsIn+result.Duplicates),
		attribute.Int("cleaning.rows_out", report.RowsOut),
		attribute.Int("cleaning.columns", len(report.Columns)),
		attribute.Int("cleaning.masked", report.Masked()),
	)

	s.logger.InfoContext(ctx, "cleaning complete",
		slog.String("operation", op),
		slog.String("run_id", report.RunID),
		slog.Float64("multiplier", report.Multiplier),
		slog.Int("columns", len(report.Columns)),
		slog.Int("rows_in", report.RowsIn+result.Duplicates),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("rows_dropped", result.RowsDropped()),
		slog.Int("masked", report.Masked()),
		slog.Duration("duration", duration))
}

// finishPartial records an operation that may succeed for some columns and
// fail for others
func (s *CleaningService) finishPartial(ctx context.Context, op string, start time.Time, columns int, err error) {
	duration := time.Since(start)
	failures := multierr.Errors(err)

	s.metrics.RecordRun(ctx, op, 0, duration, err == nil)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordError(ctx, op, err)
		for _, e := range failures {
			s.logger.WarnContext(ctx, "column skipped",
				slog.String("operation", op),
				slog.String("error", e.Error()))
		}
	}

	s.logger.InfoContext(ctx, op+" complete",
		slog.Int("columns", columns),
		slog.Int("failed", len(failures)),
		slog.Duration("duration", duration))
}
