// Package app wires configuration and the shared service container.
package app

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ServerConfig listener settings. The public listener should stay on
// loopback unless the deployment really is remote.
type ServerConfig struct {
	RunMode            string   `yaml:"run-mode" default:"release"`
	PublicListen       string   `yaml:"public-listen" default:"127.0.0.1:8765"`
	PrivateListen      string   `yaml:"private-listen" default:"127.0.0.1:8766"`
	ReadTimeout        string   `yaml:"read-timeout" default:"60s"`
	WriteTimeout       string   `yaml:"write-timeout" default:"60s"`
	ContextTimeout     string   `yaml:"context-timeout" default:"30s"`
	CORSOrigins        []string `yaml:"cors-origins"`
	RateLimitPerSecond int64    `yaml:"rate-limit-per-second" default:"0"`
}

// SecurityConfig API key settings. An empty key disables the check.
type SecurityConfig struct {
	APIKey string `yaml:"api-key"`
}

// LogConfig logger settings.
type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file" default:"storage/logs/ankibridge.log"`
	Production bool   `yaml:"production" default:"false"`
}

// DatabaseConfig collection database settings.
type DatabaseConfig struct {
	Type            string `yaml:"type" default:"sqlite"`
	Path            string `yaml:"path" default:"storage/database/collection.db"`
	UserName        string `yaml:"username"`
	Password        string `yaml:"password"`
	Host            string `yaml:"host"`
	Name            string `yaml:"name"`
	TablePrefix     string `yaml:"table-prefix" default:"ab_"`
	AutoMigrate     bool   `yaml:"auto-migrate" default:"true"`
	Charset         string `yaml:"charset" default:"utf8mb4"`
	ParseTime       bool   `yaml:"parse-time" default:"true"`
	MaxIdleConns    int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns    int    `yaml:"max-open-conns" default:"30"`
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// StorageConfig media byte store settings.
type StorageConfig struct {
	Type     string `yaml:"type" default:"localfs"`
	SavePath string `yaml:"save-path" default:"storage/media"`
	// MaxUploadSize largest media file accepted, e.g. "512KB" or "100MB"
	MaxUploadSize string `yaml:"max-upload-size" default:"100MB"`
}

// SchedulerConfig review scheduling settings.
type SchedulerConfig struct {
	// Fsrs selects the FSRS scheduler instead of SM-2
	Fsrs bool `yaml:"fsrs" default:"false"`
	// RevisionLimit revisions kept per note, 0 disables history
	RevisionLimit int `yaml:"revision-limit" default:"20"`
}

// BackupConfig collection backup task settings.
type BackupConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Cron    string `yaml:"cron" default:"0 3 * * *"`
	Path    string `yaml:"path" default:"storage/backup"`
	Keep    int    `yaml:"keep" default:"7"`
	Startup bool   `yaml:"startup" default:"false"`
}

// TasksConfig background task settings.
type TasksConfig struct {
	Backup                BackupConfig `yaml:"backup"`
	RevisionPruneInterval string       `yaml:"revision-prune-interval" default:"6h"`
	MediaCleanupInterval  string       `yaml:"media-cleanup-interval" default:"1h"`
	CheckRelease          bool         `yaml:"check-release" default:"true"`
	ReleaseURL            string       `yaml:"release-url" default:"https://api.github.com/repos/ankibridge/ankibridge-service/releases/latest"`
}

// WorkerPoolConfig async worker settings.
type WorkerPoolConfig struct {
	MaxWorkers     int `yaml:"max-workers" default:"4"`
	QueueSize      int `yaml:"queue-size" default:"256"`
	WarningPercent int `yaml:"warning-percent" default:"80"`
}

// Config the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Security   SecurityConfig   `yaml:"security"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Tasks      TasksConfig      `yaml:"tasks"`
	WorkerPool WorkerPoolConfig `yaml:"worker-pool"`
}

// LoadConfig reads and validates the yaml config file, filling unset
// values with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes yaml config bytes.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost"}
	}
	return cfg, nil
}
