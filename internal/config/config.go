// Package config provides YAML-based configuration loading for Pitwall.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Pitwall configuration, loaded from pitwall.yaml.
type Config struct {
	Owner            string         `yaml:"owner"`
	FreeSessionLimit int            `yaml:"free_session_limit"`
	Database         DatabaseConfig `yaml:"database"`
	Server           ServerConfig   `yaml:"server"`
	Notify           NotifyConfig   `yaml:"notify"`
	Tracks           []TrackSeed    `yaml:"tracks"`
}

// DatabaseConfig selects the storage backend: a local sqlite file (default)
// or a MySQL-compatible server.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql
	Path   string `yaml:"path"`   // sqlite only
	Host   string `yaml:"host"`   // mysql only
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
	User   string `yaml:"user"`
}

// ServerConfig holds settings for the web API server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// NotifyConfig configures the optional activity digest. Platform empty means
// notifications are off.
type NotifyConfig struct {
	Platform   string `yaml:"platform"` // slack, discord
	Channel    string `yaml:"channel"`
	Token      string `yaml:"token"`
	DigestCron string `yaml:"digest_cron"` // 5-field cron expression
}

// TrackSeed defines a circuit to upsert at db init time.
type TrackSeed struct {
	Name     string  `yaml:"name"`
	Location string  `yaml:"location"`
	LengthKm float64 `yaml:"length_km"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.FreeSessionLimit == 0 {
		c.FreeSessionLimit = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "pitwall.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" && c.Owner != "" {
		c.Database.Name = "pitwall_" + c.Owner
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Notify.DigestCron == "" {
		c.Notify.DigestCron = "0 18 * * 0"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Owner == "" {
		errs = append(errs, "owner is required")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not sqlite or mysql", c.Database.Driver))
	}
	switch c.Notify.Platform {
	case "":
	case "slack", "discord":
		if c.Notify.Channel == "" {
			errs = append(errs, "notify.channel is required when notify.platform is set")
		}
		if c.Notify.Token == "" {
			errs = append(errs, "notify.token is required when notify.platform is set")
		}
	default:
		errs = append(errs, fmt.Sprintf("notify.platform %q is not slack or discord", c.Notify.Platform))
	}
	for i, t := range c.Tracks {
		if t.Name == "" {
			errs = append(errs, fmt.Sprintf("tracks[%d].name is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
