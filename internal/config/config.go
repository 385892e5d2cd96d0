package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"hangarbook/internal/models"
)

type Config struct {
	Server struct {
		Port          int      `yaml:"port"`
		Locales       []string `yaml:"locales"`
		DefaultLocale string   `yaml:"default_locale"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	// Resources is the static catalog of bookable resources. The
	// booking core never mutates it.
	Resources []models.Resource `yaml:"resources"`
}

func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// Missing config file falls back to defaults.
	} else {
		// Support ${ENV_VAR} placeholders in YAML config.
		data = []byte(os.ExpandEnv(string(data)))
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.Locales) == 0 {
		c.Server.Locales = []string{"en"}
	}
	if c.Server.DefaultLocale == "" {
		c.Server.DefaultLocale = c.Server.Locales[0]
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/hangarbook.db"
	}
	if len(c.Resources) == 0 {
		c.Resources = []models.Resource{
			{ID: "aircraft1", Title: "Cessna 172"},
			{ID: "aircraft2", Title: "Piper PA-28"},
			{ID: "aircraft3", Title: "Diamond DA40"},
		}
	}
}

// LocaleSupported reports whether the given locale is configured.
func (c *Config) LocaleSupported(locale string) bool {
	for _, l := range c.Server.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

func (c *Config) BackupInterval() time.Duration {
	if c.Backup.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Backup.IntervalHours) * time.Hour
}
