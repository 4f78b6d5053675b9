package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "printscan"
	configFile = "config.yaml"

	// CurrentVersion is the only config file version understood
	CurrentVersion = 1
)

// fileMutex serialises writes to the config file.
var fileMutex sync.Mutex

// ConfigDirEnvVar overrides the configuration directory.
const ConfigDirEnvVar = "PRINTSCAN_CONFIG_DIR"

// GetConfigDir returns the per-user printscan config directory:
//   - $PRINTSCAN_CONFIG_DIR when set
//   - Linux: $XDG_CONFIG_HOME/printscan or $HOME/.config/printscan
//   - macOS: $HOME/.config/printscan
//   - Windows: %LOCALAPPDATA%\printscan
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}
	base, err := configBase(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// configBase picks the per-user config root for goos.
func configBase(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	if goos == "windows" {
		if dir := getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		if profile := getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "AppData", "Local"), nil
		}
		return "", errors.New("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
	}

	if goos != "darwin" {
		if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir, nil
		}
	}

	h, err := home()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(h, ".config"), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// ResolvePath returns path, or the default location when path is empty.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return GetConfigPath()
}

// Load reads the configuration at path (default location when empty).
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	configPath, err := ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document over the defaults.
// Fields absent from the document keep their default value; a denylist in
// the document replaces the default one.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()
	cfg.Discovery.Denylist = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	d := c.Discovery
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("discovery.port %d out of range 1-65535", d.Port)
	}
	if d.Concurrency < 1 {
		return fmt.Errorf("discovery.concurrency must be positive, got %d", d.Concurrency)
	}
	if d.Parallelism < 1 {
		return fmt.Errorf("discovery.parallelism must be positive, got %d", d.Parallelism)
	}
	if d.Deadline < 0 || d.TCPTimeout < 0 || d.SNMP.Timeout < 0 || c.Registry.MDNSTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if d.SNMP.Retries < 0 {
		return fmt.Errorf("discovery.snmp.retries must not be negative, got %d", d.SNMP.Retries)
	}
	for i, p := range c.Registry.Printers {
		if p.Name == "" {
			return fmt.Errorf("registry.printers[%d]: name is required", i)
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Save writes the configuration to path (default location when empty).
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	configPath, err := ResolvePath(path)
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# printscan configuration file
#
# Durations use Go syntax (300ms, 10s). Printers whose name contains a
# denylist marker are never probed.
#
# discovery.deadline bounds the whole address cascade of one printer. With
# no host answering, one /24 costs about 254/concurrency x tcp_timeout for
# the TCP scan (8s at defaults) and 254/concurrency x snmp.timeout x
# (retries+1) for the SNMP scan (9.6s). Raise the deadline, or disable
# tcp_scan, when printers are only found by SNMP.
#
# Location: ` + configPath + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a default configuration with an example static
// printer. It refuses to overwrite an existing file unless force is set.
func CreateDefaultConfig(path string, force bool) (string, error) {
	configPath, err := ResolvePath(path)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, fmt.Errorf("config file already exists: %s", configPath)
		}
	}

	cfg := NewConfig()
	cfg.Registry.Printers = []StaticPrinter{
		{
			Name: "Example Label Printer",
			URI:  "socket://192.168.1.60:9100",
		},
	}

	return configPath, cfg.Save(configPath)
}
