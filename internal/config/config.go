package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	appName                = "hoteldesk"
	defaultConfigName      = "config.json"
	defaultDatabaseFile    = "client.db"
	defaultLogFile         = "hoteldesk.log"
	defaultBackendURL      = "http://localhost:8080"
	defaultHost            = "127.0.0.1"
	defaultPort            = 8090
	defaultDispatchTimeout = "15s"
)

type Config struct {
	BackendURL      string `json:"backend_url"`
	DatabasePath    string `json:"database_path"`
	LogPath         string `json:"log_path"`
	Host            string `json:"host"`
	Port            int    `json:"port"`
	DispatchTimeout string `json:"dispatch_timeout"`
	OpenBrowser     bool   `json:"open_browser"`
}

// IsDev reports whether HOTELDESK_DEV is set to a true value.
func IsDev() bool {
	v, err := strconv.ParseBool(os.Getenv("HOTELDESK_DEV"))
	return err == nil && v
}

// Dir is the per-user configuration directory. Development builds get their
// own so they never touch a real session.
func Dir() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting user config directory: %w", err)
	}
	name := appName
	if IsDev() {
		name = appName + "-dev"
	}
	return filepath.Join(userConfigDir, name), nil
}

func LoadConfig(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(configDir, defaultConfigName)

	var cfg *Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg, err = createDefaultConfig(configPath, configDir)
		if err != nil {
			return nil, err
		}
	} else {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = &Config{}
		if err := json.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", configPath, err)
		}
	}

	cfg.applyDefaults(configDir)
	cfg.applyEnv()

	if _, err := time.ParseDuration(cfg.DispatchTimeout); err != nil {
		return nil, fmt.Errorf("invalid dispatch_timeout %q: %w", cfg.DispatchTimeout, err)
	}
	return cfg, nil
}

// Addr is the console listen address. It is loopback unless host is set.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Timeout is the dispatch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.DispatchTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultDispatchTimeout)
	}
	return d
}

func (c *Config) applyDefaults(configDir string) {
	if c.BackendURL == "" {
		c.BackendURL = defaultBackendURL
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(configDir, defaultDatabaseFile)
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(configDir, defaultLogFile)
	}
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.DispatchTimeout == "" {
		c.DispatchTimeout = defaultDispatchTimeout
	}
}

func (c *Config) applyEnv() {
	if url := strings.TrimSpace(os.Getenv("HOTELDESK_BACKEND_URL")); url != "" {
		c.BackendURL = url
	}
	if host := strings.TrimSpace(os.Getenv("HOTELDESK_HOST")); host != "" {
		c.Host = host
	}
	if p, err := strconv.Atoi(os.Getenv("HOTELDESK_PORT")); err == nil && p > 0 {
		c.Port = p
	}
}

func createDefaultConfig(configPath, configDir string) (*Config, error) {
	cfg := Config{
		BackendURL:      defaultBackendURL,
		DatabasePath:    filepath.Join(configDir, defaultDatabaseFile),
		LogPath:         filepath.Join(configDir, defaultLogFile),
		Host:            defaultHost,
		Port:            defaultPort,
		DispatchTimeout: defaultDispatchTimeout,
		OpenBrowser:     true,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return nil, err
	}

	return &cfg, nil
}
