// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Stats    StatsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DatabaseConfig holds event log storage configuration.
type DatabaseConfig struct {
	Path string
}

// StatsConfig holds summary computation configuration.
type StatsConfig struct {
	// SessionGap is the maximum idle time between listens that still
	// counts as one session (default: 3m).
	SessionGap time.Duration
	// BucketMinutes is the width of intraday distribution buckets.
	// Must divide a day evenly (default: 30).
	BucketMinutes int
	// TopN is the number of entries kept per ranked dimension (default: 10).
	TopN int
	// SongListCap caps the flat per-song list (default: 200).
	SongListCap int
	// TimeZone is the IANA zone used for day and week boundaries
	// (default: Local).
	TimeZone string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dbPath := flag.String("db-path", "", "Path to the playback event database")

	// Stats flags
	sessionGap := flag.String("session-gap", "", "Session merge gap (e.g., 3m)")
	bucketMinutes := flag.String("bucket-minutes", "", "Intraday bucket width in minutes (default: 30)")
	topN := flag.String("top-n", "", "Top entries per ranked dimension (default: 10)")
	songListCap := flag.String("song-list-cap", "", "Cap on the flat song list (default: 200)")
	timeZone := flag.String("time-zone", "", "IANA time zone for day boundaries (default: Local)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DB_PATH", ""),
		},
		Stats: StatsConfig{
			BucketMinutes: getIntConfigValue(*bucketMinutes, "STATS_BUCKET_MINUTES", 30),
			TopN:          getIntConfigValue(*topN, "STATS_TOP_N", 10),
			SongListCap:   getIntConfigValue(*songListCap, "STATS_SONG_LIST_CAP", 200),
			TimeZone:      getConfigValue(*timeZone, "STATS_TIME_ZONE", "Local"),
		},
	}

	// Parse session gap duration.
	sessionGapStr := getConfigValue(*sessionGap, "STATS_SESSION_GAP", "3m")
	gap, err := time.ParseDuration(sessionGapStr)
	if err != nil {
		return nil, fmt.Errorf("invalid session gap %q: %w", sessionGapStr, err)
	}
	cfg.Stats.SessionGap = gap

	// Expand and validate database path.
	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.Stats.SessionGap <= 0 {
		return fmt.Errorf("invalid session gap: %s (must be positive)", c.Stats.SessionGap)
	}

	if c.Stats.BucketMinutes <= 0 || 1440%c.Stats.BucketMinutes != 0 {
		return fmt.Errorf("invalid bucket minutes: %d (must divide a day evenly)", c.Stats.BucketMinutes)
	}

	if c.Stats.TopN <= 0 {
		return fmt.Errorf("invalid top-n: %d (must be positive)", c.Stats.TopN)
	}

	if c.Stats.SongListCap <= 0 {
		return fmt.Errorf("invalid song list cap: %d (must be positive)", c.Stats.SongListCap)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid time zone %q: %w", c.Stats.TimeZone, err)
	}

	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Stats.TimeZone == "" || c.Stats.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Stats.TimeZone)
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDatabasePath expands ~ and makes the path absolute.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "PlayTally", "playtally.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
