package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides config values from STRIDEX_* environment variables.
// Unset or unparsable variables leave the current value in place.
func (c *Config) ApplyEnv() {
	if val, ok := getEnvInt("STRIDEX_HISTORY_DAYS"); ok {
		c.Balance.HistoryDays = val
	}
	if val, ok := getEnvFloat("STRIDEX_WEEKDAY_COMPLETION_P"); ok {
		c.Balance.WeekdayCompletionP = val
	}
	if val, ok := getEnvFloat("STRIDEX_WEEKEND_COMPLETION_P"); ok {
		c.Balance.WeekendCompletionP = val
	}
	if val, ok := getEnvInt("STRIDEX_XP_PER_COMPLETION"); ok {
		c.Balance.XPPerCompletion = val
	}
	if val := os.Getenv("STRIDEX_STORAGE"); val != "" {
		c.Storage.Backend = val
	}
	if val := os.Getenv("STRIDEX_SQLITE_DSN"); val != "" {
		c.Storage.DSN = val
	}
	if val := os.Getenv("STRIDEX_ADDR"); val != "" {
		c.Server.Addr = val
	}
	if val := os.Getenv("STRIDEX_LOG_DIR"); val != "" {
		c.Log.Dir = val
	}
	if val, err := strconv.ParseBool(os.Getenv("STRIDEX_DEBUG")); err == nil {
		c.Log.Debug = val
	}
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getEnvFloat(key string) (float64, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
