package config

import (
	"time"

	"github.com/shelfmon/shelfmon/internal/schedule"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config is the complete .shelfmon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// APIURL is the middleware WebSocket endpoint,
	// e.g. ws://nas.local/websocket.
	APIURL string `yaml:"api_url" mapstructure:"api_url"`

	// RefreshInterval is the periodic silent-refresh cadence for the
	// dashboard (disk-update events refresh immediately regardless).
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// NoColor disables ANSI colors in the TUI.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	// Tasks are the user's scheduled middleware tasks, edited with
	// 'shelfmon schedule'.
	Tasks map[string]TaskConfig `yaml:"tasks" mapstructure:"tasks"`
}

// TaskConfig is one scheduled task entry.
type TaskConfig struct {
	// Method is the middleware call the task triggers.
	Method string `yaml:"method" mapstructure:"method"`

	// Schedule is the cron expression, stored in five-field form.
	Schedule string `yaml:"schedule" mapstructure:"schedule"`
}

// Crontab parses the task's schedule.
func (t TaskConfig) Crontab() (schedule.Crontab, error) {
	return schedule.Parse(t.Schedule)
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:         CurrentConfigVersion,
		APIURL:          "ws://localhost/websocket",
		RefreshInterval: 30 * time.Second,
		Tasks:           map[string]TaskConfig{},
	}
}
