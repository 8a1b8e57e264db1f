// Package config loads SuiteDeploy settings from defaults, an optional YAML
// file in the workspace, a workspace .env file and SUITEDEPLOY_* environment
// variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"suitedeploy/internal/logging"
)

// DefaultFilename is looked up in the workspace when no --config is given.
const DefaultFilename = ".suitedeploy.yaml"

// Config holds all SuiteDeploy configuration.
type Config struct {
	// Workspace root; empty means the current directory.
	Workspace string `yaml:"workspace"`

	Paths   PathsConfig   `yaml:"paths"`
	CLI     CLIConfig     `yaml:"cli"`
	Scan    ScanConfig    `yaml:"scan"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig locates the SDF project and the caches. SDFProject is relative
// to the workspace; the others are relative to the SDF project.
type PathsConfig struct {
	SDFProject  string `yaml:"sdf_project"`
	SDFObjects  string `yaml:"sdf_objects"`
	SuiteDeploy string `yaml:"suitedeploy"`
	DeployFile  string `yaml:"deploy_file"`
}

// CLIConfig configures the SuiteCloud CLI invocations.
type CLIConfig struct {
	Binary string `yaml:"binary"`
	// WorkDir is relative to the workspace; empty means the workspace root.
	WorkDir string `yaml:"workdir"`
	// Timeout per invocation; empty or "0" means none.
	Timeout               string `yaml:"timeout"`
	ImportType            string `yaml:"import_type"`
	DestinationFolder     string `yaml:"destination_folder"`
	AccountSpecificValues string `yaml:"account_specific_values"`
}

// ScanConfig configures the local object scanner.
type ScanConfig struct {
	Workers int `yaml:"workers"`
}

// WatchConfig configures the Objects directory watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures the output log.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	// File is relative to the workspace; empty disables the output log.
	File string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			SDFProject:  "src",
			SDFObjects:  "Objects",
			SuiteDeploy: "SuiteDeploy",
			DeployFile:  "deploy.xml",
		},
		CLI: CLIConfig{
			Binary:                "suitecloud",
			ImportType:            "ALL",
			DestinationFolder:     "/Objects",
			AccountSpecificValues: "ERROR",
		},
		Scan: ScanConfig{
			Workers: 4,
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   filepath.Join(".suitedeploy", "output.log"),
		},
	}
}

// Load reads the YAML file at path over the defaults and applies .env and
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadDotEnv loads <workspace>/.env into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(workspace string) error {
	path := filepath.Join(workspace, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides applies SUITEDEPLOY_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SUITEDEPLOY_WORKSPACE"); v != "" {
		c.Workspace = v
	}
	if v := os.Getenv("SUITEDEPLOY_CLI_BIN"); v != "" {
		c.CLI.Binary = v
	}
	if v := os.Getenv("SUITEDEPLOY_CLI_TIMEOUT"); v != "" {
		c.CLI.Timeout = v
	}
	if v := os.Getenv("SUITEDEPLOY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SUITEDEPLOY_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SUITEDEPLOY_SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Scan.Workers = n
		}
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CLI.Binary) == "" {
		return fmt.Errorf("cli.binary is required")
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if _, err := parseDuration(c.CLI.Timeout); err != nil {
		return fmt.Errorf("cli.timeout: %w", err)
	}
	if _, err := parseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	return nil
}

// GetCLITimeout returns the per-invocation timeout; zero means none.
func (c *Config) GetCLITimeout() time.Duration {
	d, _ := parseDuration(c.CLI.Timeout)
	return d
}

// GetDebounce returns the watcher debounce, defaulting to 500ms.
func (c *Config) GetDebounce() time.Duration {
	d, _ := parseDuration(c.Watch.Debounce)
	if d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// GetScanWorkers returns the scanner pool size, at least 1.
func (c *Config) GetScanWorkers() int {
	if c.Scan.Workers < 1 {
		return 1
	}
	return c.Scan.Workers
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
