package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the application paths, all relative to the executable
type Paths struct {
	ExecutableDir string
	DataDir       string

	// DatasetFile is the default merged dataset
	DatasetFile string
}

// GetPaths returns the application paths relative to the executable location.
// Paths never depend on the current working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return pathsFor(filepath.Dir(exe)), nil
}

// pathsFor lays out the default tree under exeDir:
//
//	exeDir/
//	  ├── data/netflix_final_merged.csv
//	  ├── exports/   (chart tables written on request)
//	  └── logs/
func pathsFor(exeDir string) *Paths {
	dataDir := filepath.Join(exeDir, DefaultDataDir)
	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		DatasetFile:   filepath.Join(dataDir, DefaultDataFile),
	}
}

// Resolve returns path unchanged when absolute, otherwise relative to the executable
func (p *Paths) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.ExecutableDir, path)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs where the dataset was resolved to
func (p *Paths) LogPathResolution(logger *slog.Logger, dataset string) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("path resolution summary",
		slog.String("executable_dir", p.ExecutableDir),
		slog.Group("dataset",
			slog.String("path", dataset),
			slog.Bool("exists", FileExists(dataset)),
			slog.Bool("default", dataset == p.DatasetFile),
		))
}
