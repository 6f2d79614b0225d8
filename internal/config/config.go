// Package config reads the optional imdbload.yaml project file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// FilesConfig names the three source files.
type FilesConfig struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Ratings string `yaml:"ratings"`
}

// FileConfig mirrors the imdbload.yaml layout. Every key is optional;
// flags and environment variables take precedence over file values.
type FileConfig struct {
	DSN          string      `yaml:"dsn,omitempty"`
	Schema       string      `yaml:"schema,omitempty"`
	Truncate     bool        `yaml:"truncate,omitempty"`
	StrictHeader bool        `yaml:"strict_header,omitempty"`
	Files        FilesConfig `yaml:"files"`
}

// Load reads and parses the config file at path. A missing file returns
// ErrConfigNotFound; callers can check for it with errors.Is and fall
// back to defaults.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", imdbload.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
