package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxLength = 280
	DefaultLogLevel  = "info"

	dataDirName    = ".threadsuite"
	configFileName = "config.yaml"
	envLogLevel    = "THREADSUITE_LOG_LEVEL"
)

type Config struct {
	HomePath   string
	DataDir    string
	DBPath     string
	LogDir     string
	ConfigPath string
	LogLevel   string
	Targets    []Target
	Thread     Thread
}

// Target maps a launch target name to its two candidate locations.
// Relative paths are resolved against HomePath at load time.
type Target struct {
	Name     string `yaml:"name"`
	Primary  string `yaml:"primary"`
	Fallback string `yaml:"fallback"`
}

type Thread struct {
	MaxLength           int      `yaml:"max_length"`
	ReserveForNumbering bool     `yaml:"reserve_for_numbering"`
	Hashtags            []string `yaml:"hashtags,omitempty"`
}

type fileConfig struct {
	LogLevel string      `yaml:"log_level,omitempty"`
	Targets  []Target    `yaml:"targets,omitempty"`
	Thread   *fileThread `yaml:"thread,omitempty"`
}

type fileThread struct {
	MaxLength           *int     `yaml:"max_length,omitempty"`
	ReserveForNumbering *bool    `yaml:"reserve_for_numbering,omitempty"`
	Hashtags            []string `yaml:"hashtags,omitempty"`
}

// New returns the default configuration rooted at homePath without reading
// any file.
func New(homePath string) (Config, error) {
	if strings.TrimSpace(homePath) == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	dataDir := filepath.Join(homePath, dataDirName)
	cfg := Config{
		HomePath:   homePath,
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "threadsuite.db"),
		LogDir:     filepath.Join(dataDir, "logs"),
		ConfigPath: filepath.Join(dataDir, configFileName),
		LogLevel:   DefaultLogLevel,
		Targets:    DefaultTargets(runtime.GOOS),
		Thread: Thread{
			MaxLength:           DefaultMaxLength,
			ReserveForNumbering: true,
		},
	}
	cfg.resolveTargetPaths()
	return cfg, nil
}

// Load builds the configuration for homePath, overlaying the YAML file at
// configPath (or the default location when empty) and environment overrides.
// A missing file is not an error.
func Load(homePath, configPath string) (Config, error) {
	cfg, err := New(homePath)
	if err != nil {
		return Config{}, err
	}
	if configPath != "" {
		cfg.ConfigPath = configPath
	}

	raw, err := os.ReadFile(cfg.ConfigPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", cfg.ConfigPath, err)
		}
		cfg.apply(fc)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) {
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if len(fc.Targets) > 0 {
		c.Targets = fc.Targets
		c.resolveTargetPaths()
	}
	if fc.Thread != nil {
		if fc.Thread.MaxLength != nil {
			c.Thread.MaxLength = *fc.Thread.MaxLength
		}
		if fc.Thread.ReserveForNumbering != nil {
			c.Thread.ReserveForNumbering = *fc.Thread.ReserveForNumbering
		}
		if len(fc.Thread.Hashtags) > 0 {
			c.Thread.Hashtags = fc.Thread.Hashtags
		}
	}
}

func (c *Config) applyEnvOverrides() {
	if level := strings.TrimSpace(os.Getenv(envLogLevel)); level != "" {
		c.LogLevel = level
	}
}

func (c *Config) resolveTargetPaths() {
	for i := range c.Targets {
		c.Targets[i].Primary = c.resolve(c.Targets[i].Primary)
		c.Targets[i].Fallback = c.resolve(c.Targets[i].Fallback)
	}
}

func (c *Config) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.HomePath, path)
}

// Validate rejects target tables whose tiers collapse onto one location and
// thread settings that can never produce a segment.
func (c Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Targets))
	for _, t := range c.Targets {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("target name is required")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate target %q", name)
		}
		seen[name] = struct{}{}
		if t.Primary == "" || t.Fallback == "" {
			return fmt.Errorf("target %q: primary and fallback paths are required", name)
		}
		if filepath.Clean(t.Primary) == filepath.Clean(t.Fallback) {
			return fmt.Errorf("target %q: primary and fallback resolve to the same path %s", name, filepath.Clean(t.Primary))
		}
	}
	if c.Thread.MaxLength < 1 {
		return fmt.Errorf("thread.max_length must be at least 1, got %d", c.Thread.MaxLength)
	}
	return nil
}

// DefaultTargets returns the suite's built-in applications. Each prefers the
// build output directory and falls back to the home directory itself.
func DefaultTargets(goos string) []Target {
	suffix := ""
	if goos == "windows" {
		suffix = ".exe"
	}
	entries := []struct{ name, exe string }{
		{"main", "TwitterAgent-Main"},
		{"ideator", "TwitterAgent-Ideator"},
		{"api_manager", "TwitterAgent-APIManager"},
	}
	targets := make([]Target, 0, len(entries))
	for _, e := range entries {
		targets = append(targets, Target{
			Name:     e.name,
			Primary:  filepath.Join("dist", e.exe+suffix),
			Fallback: e.exe + suffix,
		})
	}
	return targets
}

// WriteDefault writes a starter config file and refuses to overwrite one.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	maxLength := DefaultMaxLength
	reserve := true
	fc := fileConfig{
		LogLevel: DefaultLogLevel,
		Targets:  DefaultTargets(runtime.GOOS),
		Thread: &fileThread{
			MaxLength:           &maxLength,
			ReserveForNumbering: &reserve,
		},
	}
	raw, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
