package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
)

var (
	// ErrNotExist indicates the dataset path does not exist
	ErrNotExist = errors.New("file does not exist")

	// ErrNotRegular indicates the dataset path is a directory or device
	ErrNotRegular = errors.New("not a regular file")

	// ErrEmptyFile indicates a zero-byte dataset
	ErrEmptyFile = errors.New("file is empty")

	// ErrUnsupportedType indicates an extension the loader cannot read
	ErrUnsupportedType = errors.New("unsupported dataset type")

	// ErrTemporaryFile indicates an office lock file such as ~$data.xlsx
	ErrTemporaryFile = errors.New("temporary office file")
)

// DatasetExtensions are the file extensions the dataset loader reads
var DatasetExtensions = []string{".csv", ".xlsx", ".xlsm"}

// FileValidator checks dataset and output paths before any work starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: infrastructure.WithComponent(logger, "file_validator"),
	}
}

// ValidateDataset checks that path is a readable, non-empty file with a
// supported extension
func (v *FileValidator) ValidateDataset(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		v.logger.Error("Dataset does not exist", slog.String("file", path))
		return fmt.Errorf("%s: %w", path, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		v.logger.Error("Dataset is not a regular file", slog.String("path", path))
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		return fmt.Errorf("%s: %w", path, ErrTemporaryFile)
	}
	if !supportedExtension(path) {
		v.logger.Error("Dataset has an unsupported extension",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return fmt.Errorf("%s: %w (expected %s)", path, ErrUnsupportedType, strings.Join(DatasetExtensions, ", "))
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Dataset validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it if needed, and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

func supportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range DatasetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
