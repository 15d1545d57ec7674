package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem abstracts file reads so loading is testable without touching
// the real filesystem.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the real filesystem.
func DefaultFS() FileSystem {
	return osFS{}
}

// Loader reads configuration from a TOML file with environment overrides.
type Loader struct {
	fs   FileSystem
	path string
}

// NewLoader creates a loader for the given path.
func NewLoader(path string) *Loader {
	return &Loader{fs: DefaultFS(), path: path}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fs FileSystem, path string) *Loader {
	return &Loader{fs: fs, path: path}
}

// Load reads the TOML file over the defaults, applies environment
// overrides, and validates the result. A missing file is not an error.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	data, err := l.fs.ReadFile(l.path)
	switch {
	case os.IsNotExist(err):
		// No file, defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", l.path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", l.path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides settings from SMEAR_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SMEAR_CURSOR_SHAPE"); v != "" {
		cfg.Cursor.Shape = v
	}
	if v := os.Getenv("SMEAR_FONT_NAME"); v != "" {
		cfg.Font.Name = v
	}
	if v := os.Getenv("SMEAR_FONT_SIZE"); v != "" {
		if size, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Font.Size = size
		}
	}
}
