package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stridex/stridex/internal/constants"
)

// Backend names accepted by storage.New
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	Balance Balance       `yaml:"balance" json:"balance"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// Balance carries the tunable numbers of the rules engine
type Balance struct {
	HistoryDays         int     `yaml:"history_days" json:"history_days"`
	WeekdayCompletionP  float64 `yaml:"weekday_completion_p" json:"weekday_completion_p"`
	WeekendCompletionP  float64 `yaml:"weekend_completion_p" json:"weekend_completion_p"`
	XPPerCompletion     int     `yaml:"xp_per_completion" json:"xp_per_completion"`
	XPPerPositiveEntry  int     `yaml:"xp_per_positive_entry" json:"xp_per_positive_entry"`
	XPPerNeutralEntry   int     `yaml:"xp_per_neutral_entry" json:"xp_per_neutral_entry"`
	MaxHabitStreak      int     `yaml:"max_habit_streak" json:"max_habit_streak"`
	MinPredictorRecords int     `yaml:"min_predictor_records" json:"min_predictor_records"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	// DSN is only read by the sqlite backend. The default keeps the database in memory.
	DSN string `yaml:"dsn" json:"dsn"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr" json:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

type LogConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	Debug      bool   `yaml:"debug" json:"debug"`
	JSON       bool   `yaml:"json" json:"json"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

// DefaultBalance returns the stock rules-engine numbers
func DefaultBalance() Balance {
	return Balance{
		HistoryDays:         constants.HistoryDays,
		WeekdayCompletionP:  constants.WeekdayCompletionP,
		WeekendCompletionP:  constants.WeekendCompletionP,
		XPPerCompletion:     constants.XPPerCompletion,
		XPPerPositiveEntry:  constants.XPPerPositiveEntry,
		XPPerNeutralEntry:   constants.XPPerNeutralEntry,
		MaxHabitStreak:      constants.MaxHabitStreak,
		MinPredictorRecords: constants.MinPredictorRecords,
	}
}

func Default() *Config {
	return &Config{
		Balance: DefaultBalance(),
		Storage: StorageConfig{
			Backend: BackendMemory,
			DSN:     "file:stridex?mode=memory&cache=shared",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "5s",
		},
		Log: LogConfig{
			Dir:        filepath.Join(os.TempDir(), constants.AppName, "logs"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a YAML config on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects balance values the rules engine cannot work with
func (c *Config) Validate() error {
	b := c.Balance
	if b.HistoryDays < 1 {
		return fmt.Errorf("balance.history_days must be at least 1, got %d", b.HistoryDays)
	}
	for name, p := range map[string]float64{
		"weekday_completion_p": b.WeekdayCompletionP,
		"weekend_completion_p": b.WeekendCompletionP,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("balance.%s must be within [0,1], got %v", name, p)
		}
	}
	if b.XPPerCompletion < 0 || b.XPPerPositiveEntry < 0 || b.XPPerNeutralEntry < 0 {
		return fmt.Errorf("balance xp awards must not be negative")
	}
	if b.MaxHabitStreak < 1 {
		return fmt.Errorf("balance.max_habit_streak must be at least 1, got %d", b.MaxHabitStreak)
	}
	if b.MinPredictorRecords < 2 {
		return fmt.Errorf("balance.min_predictor_records must be at least 2, got %d", b.MinPredictorRecords)
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
