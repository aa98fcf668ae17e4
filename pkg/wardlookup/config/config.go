package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed sample_config.toml
var sampleConfig string

// API contains settings for the postcodes.io client.
type API struct {
	BaseURL              string `toml:"base_url" yaml:"base_url"`
	UserAgent            string `toml:"user_agent" yaml:"user_agent"`
	BatchSize            int    `toml:"batch_size" yaml:"batch_size"`
	SingleTimeoutSeconds int    `toml:"single_timeout_seconds" yaml:"single_timeout_seconds"`
	BatchTimeoutSeconds  int    `toml:"batch_timeout_seconds" yaml:"batch_timeout_seconds"`
}

// Lookup contains settings for reading the input and pacing requests.
type Lookup struct {
	PostcodeColumn string  `toml:"postcode_column" yaml:"postcode_column"`
	DelaySeconds   float64 `toml:"delay_seconds" yaml:"delay_seconds"`
	// Sheet selects the input worksheet. Empty selects the first sheet.
	Sheet string `toml:"sheet" yaml:"sheet"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Config encapsulates all configuration values for wardlookup.
type Config struct {
	API     API     `toml:"api" yaml:"api"`
	Lookup  Lookup  `toml:"lookup" yaml:"lookup"`
	Logging Logging `toml:"logging" yaml:"logging"`
}

// Delay returns the pause between consecutive remote calls.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Lookup.DelaySeconds * float64(time.Second))
}

// SingleTimeout returns the per-request timeout for single lookups.
func (c *Config) SingleTimeout() time.Duration {
	return time.Duration(c.API.SingleTimeoutSeconds) * time.Second
}

// BatchTimeout returns the per-request timeout for batch lookups.
func (c *Config) BatchTimeout() time.Duration {
	return time.Duration(c.API.BatchTimeoutSeconds) * time.Second
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; the defaults are used instead. It returns the config, the
// resolved path, and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse config: %w", err)
		}
	default:
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(envBaseURL); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = value
	}
	if value, ok := os.LookupEnv(envUserAgent); ok && strings.TrimSpace(value) != "" {
		c.API.UserAgent = value
	}
}

func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	c.Lookup.PostcodeColumn = strings.TrimSpace(c.Lookup.PostcodeColumn)
	if c.Lookup.PostcodeColumn == "" {
		c.Lookup.PostcodeColumn = defaultPostcodeColumn
	}
	c.Lookup.Sheet = strings.TrimSpace(c.Lookup.Sheet)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
