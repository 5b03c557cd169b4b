package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spf13/viper"
)

type Config struct {
	v      *viper.Viper
	Logger *log.Logger
}

// NewConfig loads the configuration from various sources using viper
func NewConfig() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Try to read config file (don't error if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		// Config file can't be read, continue with env vars and defaults
		l := log.New(os.Stderr)
		l.Warnf("error reading config file: %v\nContinuing with envs...", err)
	}

	// Bind environment variables
	err := bindEnvs(v)
	if err != nil {
		// If env binding also fails, we'll basically have no config
		// and need to exit at this point.
		return nil, fmt.Errorf("error binding environment variables: %w", err)
	}

	newLogFile, err := newLogFile(v.GetString("log_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := pruneOldLogFiles(v.GetString("log_dir")); err != nil {
		return nil, fmt.Errorf("failed to prune old log files: %w", err)
	}

	// Log both to a file and to stderr
	w := io.MultiWriter(os.Stderr, newLogFile)

	newCfg := &Config{
		v:      v,
		Logger: log.New(w),
	}

	// Validate required fields
	if err := validateConfig(newCfg); err != nil {
		return nil, err
	}

	return newCfg, nil
}

// newLogFile generates a new log file
func newLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory is not set")
	}

	// Create dir if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create a new log file with timestamp
	file, err := os.Create(fmt.Sprintf("%s/voidbot_%s.log", dir, time.Now().Format("20060102_150405")))
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (c *Config) RotateAndPruneLogs() error {
	return pruneOldLogFiles(c.v.GetString("log_dir"))
}

// pruneOldLogFiles removes log files older than 7 days
func pruneOldLogFiles(dir string) error {
	logFiles, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range logFiles {
		if file.IsDir() {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > 7*24*time.Hour {
			if err := os.Remove(filepath.Join(dir, file.Name())); err != nil {
				return fmt.Errorf("failed to remove old log file %s: %w", file.Name(), err)
			}
		}
	}

	return nil
}

// NewMockConfig creates a mock configuration for testing
func NewMockConfig(kv map[string]interface{}) *Config {
	v := viper.New()
	setDefaults(v)
	for k, val := range kv {
		v.Set(k, val)
	}
	return &Config{
		v:      v,
		Logger: log.New(os.Stderr),
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("database_path", "./voidbot.db")
	v.SetDefault("data_backend", "firestore")
	v.SetDefault("health_addr", ":3000")
	// Role keywords that classify a roster member as operations/management
	// rather than a playing pro. Matched case-insensitively against the role.
	v.SetDefault("ops_keywords", []string{"management", "manager", "coach", "owner", "founder", "staff"})
}

// bindEnvs binds environment variables to viper keys
func bindEnvs(v *viper.Viper) error {
	bindings := []struct {
		key string
		env string
	}{
		{"bot_token", "VOIDBOT_TOKEN"},
		{"guild_id", "VOIDBOT_GUILD_ID"},
		{"firebase_project_id", "VOIDBOT_FIREBASE_PROJECT_ID"},
		{"google_credentials_file", "VOIDBOT_GOOGLE_CREDENTIALS_FILE"},
		{"data_backend", "VOIDBOT_DATA_BACKEND"},
		{"postgres_dsn", "VOIDBOT_POSTGRES_DSN"},
		{"youtube_api_key", "VOIDBOT_YOUTUBE_API_KEY"},
		{"youtube_channel_id", "VOIDBOT_YOUTUBE_CHANNEL_ID"},
		{"mod_action_log_channel_id", "VOIDBOT_MOD_ACTION_LOG_CHANNEL_ID"},
		{"log_channel_id", "VOIDBOT_LOG_CHANNEL_ID"},
		{"log_dir", "VOIDBOT_LOG_DIR"},
		{"database_path", "VOIDBOT_DATABASE_PATH"},
		{"health_addr", "VOIDBOT_HEALTH_ADDR"},
	}

	for _, binding := range bindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return fmt.Errorf("error binding %s environment variable: %w", binding.key, err)
		}
	}
	return nil
}

// validateConfig validates that all required configuration fields are present
func validateConfig(cfg *Config) error {
	if cfg.v.GetString("bot_token") == "" {
		return fmt.Errorf("bot_token is required (set VOIDBOT_TOKEN environment variable)")
	}

	if cfg.v.GetString("firebase_project_id") == "" && cfg.v.GetString("data_backend") == "firestore" {
		cfg.Logger.Warn("firebase_project_id is not set (set VOIDBOT_FIREBASE_PROJECT_ID environment variable); content commands will report a configuration error")
	}

	if cfg.v.GetString("data_backend") == "postgres" && cfg.v.GetString("postgres_dsn") == "" {
		return fmt.Errorf("postgres_dsn is required when data_backend is postgres (set VOIDBOT_POSTGRES_DSN environment variable)")
	}

	if cfg.v.GetString("youtube_api_key") == "" || cfg.v.GetString("youtube_channel_id") == "" {
		cfg.Logger.Warn("youtube_api_key/youtube_channel_id not set; /videos and /latest_video will report a configuration error")
	}

	return nil
}
