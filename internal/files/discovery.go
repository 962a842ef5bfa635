package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "edaclean/internal/errors"
	"edaclean/internal/tableio"
)

// FileInfo represents information about a discovered table file
type FileInfo struct {
	Path    string
	Name    string
	Format  tableio.Format
	Size    int64
	ModTime time.Time
}

// Discovery finds table files below a base path
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// passed to its methods are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindTables lists the CSV and XLSX files directly inside dir, sorted by
// name. Subdirectories, empty files and Excel lock files (~$name.xlsx) are
// skipped.
func (d *Discovery) FindTables(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read directory "+fullPath, err).
			WithContext("path", fullPath)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}

		format, err := tableio.FormatOf(entry.Name())
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
