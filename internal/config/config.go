package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Database DatabaseConfig `yaml:"database"`
	Audit    AuditConfig    `yaml:"audit"`
	Import   ImportConfig   `yaml:"import"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	ClientID string `yaml:"client_id"`
}

// DatabaseConfig locates the sqlite database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuditConfig controls the audit log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// ImportConfig controls chart import behavior.
type ImportConfig struct {
	// DefaultDisposition applies to removals with no explicit
	// disposition: "inactive" or "delete".
	DefaultDisposition string `yaml:"default_disposition"`
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName, clientID string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			ClientID: clientID,
		},
		Database: DatabaseConfig{
			Path: "ledgerline.db",
		},
		Audit: AuditConfig{
			Enabled: true,
			Dir:     "logs",
		},
		Import: ImportConfig{
			DefaultDisposition: "inactive",
		},
	}
}
