// Package config loads user preferences from ~/.cardsmith.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const FileName = ".cardsmith.yaml"

type Config struct {
	ExportDirectory string  `yaml:"export_directory"`
	ZoomStep        float64 `yaml:"zoom_step"`
	NoticeSeconds   float64 `yaml:"notice_seconds"`
	LogFile         string  `yaml:"log_file"`
	Template        string  `yaml:"template"`
}

func Default() *Config {
	return &Config{
		ZoomStep:      0.1,
		NoticeSeconds: 2,
	}
}

// Path returns the default config location in the home directory.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, FileName), nil
}

// Load reads the config at path. A missing file yields the defaults; an
// unreadable or malformed one is an error.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return Default(), fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	homeDir, _ := os.UserHomeDir()
	config.ExportDirectory = expandPath(config.ExportDirectory, homeDir)
	config.LogFile = expandPath(config.LogFile, homeDir)
	config.Template = expandPath(config.Template, homeDir)

	if config.ZoomStep <= 0 {
		config.ZoomStep = Default().ZoomStep
	}
	if config.NoticeSeconds <= 0 {
		config.NoticeSeconds = Default().NoticeSeconds
	}
	return config, nil
}

// LoadDefault loads the config from the home directory.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeSeconds * float64(time.Second))
}

// ExportPath places filename in the export directory, creating it if needed.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.ExportDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}
