package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/tableio"
)

// FileValidator checks table files and directories before a cleaning pass
// touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory checks that dir exists and is a directory
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		v.logger.Error("Input directory is not accessible",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("input directory %s is not accessible", dir), err).
			WithContext("path", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not a directory", dir)).
			WithContext("path", dir)
	}
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it if needed, and is
// writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err).
			WithContext("path", dir)
	}

	testFile, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err).
			WithContext("path", dir)
	}
	testFile.Close()
	os.Remove(testFile.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateTableFile checks that path is a readable, non-empty CSV or XLSX
// file that is not an Excel lock file
func (v *FileValidator) ValidateTableFile(path string) error {
	if _, err := tableio.FormatOf(path); err != nil {
		return err
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a temporary Excel file", path)).
			WithContext("path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("File is not accessible",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not accessible", path), err).
			WithContext("path", path)
	}
	if info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path)).
			WithContext("path", path)
	}
	if info.Size() == 0 {
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is empty", path)).
			WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err).
			WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputFile checks that out has a supported extension, does not
// overwrite in, and can be written
func (v *FileValidator) ValidateOutputFile(in, out string) error {
	if _, err := tableio.FormatOf(out); err != nil {
		return err
	}

	absIn, errIn := filepath.Abs(in)
	absOut, errOut := filepath.Abs(out)
	if errIn == nil && errOut == nil && absIn == absOut {
		return apperrors.NewAppValidationError("output would overwrite the input file").
			WithContext("path", out)
	}

	return v.ValidateOutputDirectory(filepath.Dir(out))
}
