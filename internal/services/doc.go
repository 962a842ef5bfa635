// Package services is the layer library callers use to run cleaning passes.
// It wraps the pure functions of the outliers and stats packages with the
// cross-cutting concerns they leave out: trace IDs, OpenTelemetry spans,
// cleaning metrics and structured logs.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	logger, _ := infrastructure.InitializeLogger(cfg.Logging)
//	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
//	if err != nil {
//	    return err
//	}
//	defer providers.Shutdown(ctx)
//
//	svc, err := services.NewCleaningService(cfg.Cleaning, logger, providers)
//	if err != nil {
//	    return err
//	}
//	result, err := svc.CleanFile(ctx, "data/winequality-red.csv", "out/wine-clean.xlsx")
//
// Every operation ensures the context carries a trace ID, so all log records
// of one pass share a trace_id attribute.
package services
