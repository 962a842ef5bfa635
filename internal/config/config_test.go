package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/outliers"
)

var configEnvVars = []string{
	"EDA_CLEANING_MULTIPLIER", "EDA_CLEANING_DROP_INCOMPLETE", "EDA_CLEANING_DROP_DUPLICATES",
	"EDA_CLEANING_WORKERS", "EDA_CLEANING_COLUMNS", "EDA_CLEANING_TEXT_COLUMNS",
	"EDA_LOGGING_LEVEL", "EDA_LOGGING_OUTPUT", "EDA_LOGGING_FILE_PATH",
	"EDA_TELEMETRY_SERVICE_NAME", "EDA_TELEMETRY_ENVIRONMENT", "EDA_TELEMETRY_TRACE_EXPORTER",
	"EDA_TELEMETRY_METRIC_EXPORTER", "EDA_TELEMETRY_SAMPLE_RATIO",
	ConfigFileEnv,
}

// clearEnv unsets every EDA_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range configEnvVars {
		t.Setenv(envVar, "")
		os.Unsetenv(envVar)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edaclean.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultMultiplier, cfg.Cleaning.Multiplier)
				assert.True(t, cfg.Cleaning.DropIncomplete)
				assert.False(t, cfg.Cleaning.DropDuplicates)
				assert.Zero(t, cfg.Cleaning.Workers)
				assert.Empty(t, cfg.Cleaning.Columns)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)

				assert.Equal(t, AppName, cfg.Telemetry.ServiceName)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.Equal(t, "none", cfg.Telemetry.MetricExporter)
				assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
			},
		},
		{
			name: "environment variables override defaults",
			env: map[string]string{
				"EDA_CLEANING_MULTIPLIER":       "3",
				"EDA_CLEANING_DROP_INCOMPLETE":  "false",
				"EDA_CLEANING_WORKERS":          "2",
				"EDA_CLEANING_COLUMNS":          "alcohol,pH",
				"EDA_LOGGING_LEVEL":             "debug",
				"EDA_TELEMETRY_METRIC_EXPORTER": "prometheus",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3.0, cfg.Cleaning.Multiplier)
				assert.False(t, cfg.Cleaning.DropIncomplete)
				assert.Equal(t, 2, cfg.Cleaning.Workers)
				assert.Equal(t, []string{"alcohol", "pH"}, cfg.Cleaning.Columns)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
			},
		},
		{
			name: "config file overlays defaults",
			file: `
cleaning:
  multiplier: 2.5
  drop_duplicates: true
  columns: [fixed acidity, residual sugar]
  text_columns: [quality_label]
logging:
  output: both
  file_path: out/run.log
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2.5, cfg.Cleaning.Multiplier)
				assert.True(t, cfg.Cleaning.DropDuplicates)
				assert.True(t, cfg.Cleaning.DropIncomplete, "unset file keys keep defaults")
				assert.Equal(t, []string{"fixed acidity", "residual sugar"}, cfg.Cleaning.Columns)
				assert.Equal(t, []string{"quality_label"}, cfg.Cleaning.TextColumns)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, "out/run.log", cfg.Logging.FilePath)
				assert.Equal(t, "info", cfg.Logging.Level)
			},
		},
		{
			name: "environment wins over config file",
			env:  map[string]string{"EDA_CLEANING_MULTIPLIER": "0"},
			file: "cleaning:\n  multiplier: 2.5\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0.0, cfg.Cleaning.Multiplier)
			},
		},
		{
			name:    "negative multiplier rejected",
			env:     map[string]string{"EDA_CLEANING_MULTIPLIER": "-1"},
			wantErr: true,
		},
		{
			name:    "unknown log level rejected",
			env:     map[string]string{"EDA_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "unknown trace exporter rejected",
			file:    "telemetry:\n  trace_exporter: jaeger\n",
			wantErr: true,
		},
		{
			name:    "sample ratio above one rejected",
			env:     map[string]string{"EDA_TELEMETRY_SAMPLE_RATIO": "1.5"},
			wantErr: true,
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"EDA_CLEANING_WORKERS": "many"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "cleaning: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_ConfigFileEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "cleaning:\n  workers: 4\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cleaning.Workers)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Cleaning.Multiplier = -2
	cfg.Cleaning.Workers = -1
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 3, appErr.Context["fields"])
	assert.Contains(t, err.Error(), "Cleaning.Multiplier must be >= 0")
	assert.Contains(t, err.Error(), "Cleaning.Workers must be >= 0")
	assert.Contains(t, err.Error(), "Logging.Level must be one of")
}

func TestValidate_FilePathRequiredForFileOutput(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg.Logging.Output = "console"
	assert.NoError(t, cfg.Validate())
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestDefault_MultiplierMatchesCleaner(t *testing.T) {
	assert.Equal(t, outliers.DefaultCleanOptions().Multiplier, Default().Cleaning.Multiplier)
}
