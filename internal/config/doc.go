// Package config provides configuration management for edaclean. It loads
// settings from multiple sources, validates them, and exposes typed structs
// for the cleaning pipeline, logging and telemetry.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//	1. Default values (Default)
//	2. YAML config file (EDA_CONFIG_FILE, ./edaclean.yaml or ./configs/edaclean.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables use the EDA_ prefix followed by section and field:
//
//	EDA_CLEANING_MULTIPLIER=3
//	EDA_CLEANING_COLUMNS=alcohol,pH
//	EDA_CLEANING_DROP_INCOMPLETE=false
//	EDA_LOGGING_LEVEL=debug
//	EDA_TELEMETRY_METRIC_EXPORTER=prometheus
//
// # Config File
//
//	cleaning:
//	  multiplier: 1.5
//	  drop_incomplete: true
//	  columns: [fixed acidity, residual sugar]
//	logging:
//	  level: info
//	  output: both
//	  file_path: logs/edaclean.log
//
// # Validation
//
// Load rejects a configuration that violates any field constraint (negative
// multiplier, unknown log level or exporter, sample ratio outside [0, 1])
// with a CONFIG AppError listing every violation.
package config
