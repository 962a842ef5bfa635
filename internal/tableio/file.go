package tableio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/frame"
	"edaclean/internal/infrastructure"
)

// Format identifies a supported file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", apperrors.NewInvalidInputError(fmt.Sprintf("unsupported file type %q", filepath.Ext(path))).
			WithContext("path", path)
	}
}

// ReadFile reads a CSV or XLSX file, chosen by extension, into a table.
// Log records carry the trace ID of ctx.
func ReadFile(ctx context.Context, path string, opts ReadOptions) (*frame.Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var tbl *frame.Table
	switch format {
	case FormatXLSX:
		tbl, err = ReadXLSX(path, "", opts)
	default:
		file, openErr := os.Open(path)
		if openErr != nil {
			return nil, apperrors.NewStorageError("open csv", openErr).WithContext("path", path)
		}
		defer file.Close()
		tbl, err = ReadCSV(file, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	infrastructure.LoggerWithContext(ctx).Debug("table loaded",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("rows", tbl.Len()),
		slog.Int("columns", tbl.Width()))
	return tbl, nil
}

// WriteFile writes the table to a CSV or XLSX file, chosen by extension,
// creating parent directories as needed.
func WriteFile(ctx context.Context, path string, t *frame.Table) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create directory", err).WithContext("path", path)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(path, "", t)
	default:
		err = writeCSVFile(path, t)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	infrastructure.LoggerWithContext(ctx).Debug("table written",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("rows", t.Len()))
	return nil
}

func writeCSVFile(path string, t *frame.Table) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperrors.NewStorageError("create csv", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = apperrors.NewStorageError("close csv", cerr)
		}
	}()

	return WriteCSV(file, t, WriteOptions{})
}
