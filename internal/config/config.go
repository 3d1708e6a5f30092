package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	SessionSecret   string   `mapstructure:"session_secret"`
	SessionTTLHours int      `mapstructure:"session_ttl_hours"`
	PingMessage     string   `mapstructure:"ping_message"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	LoginRateLimit  int      `mapstructure:"login_rate_limit"`
	QuestionsFile   string   `mapstructure:"questions_file"`
}

// DatabaseConfig holds database connection settings. Driver selects the
// backend: "sqlite" keeps everything in a single local file, "postgres"
// uses the connection fields.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// RemindersConfig controls the daily check-in reminder scheduler. Time is
// a UTC wall-clock value in "HH:MM" form.
type RemindersConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Time    string `mapstructure:"time"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.session_secret", "dev-only-secret-change-me")
	v.SetDefault("server.session_ttl_hours", 24*7)
	v.SetDefault("server.ping_message", "ping")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.login_rate_limit", 5)
	v.SetDefault("server.questions_file", "config/questions.yaml")

	// Database defaults. A single sqlite file is enough for the
	// single-process deployment this app targets.
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/moodcheck.db")
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "moodcheck")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	// Reminder defaults
	v.SetDefault("reminders.enabled", false)
	v.SetDefault("reminders.time", "09:00")
}

// Init initializes the configuration with Viper. Config loads before the
// logger exists, so reload events go through the global zap logger, which
// main installs right after startup.
func Init(projectRoot string) error {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("MOODCHECK") // e.g., MOODCHECK_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the initial configuration from the file.
	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal the config into our global Conf variable
	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		if err := v.Unmarshal(&Conf); err != nil {
			zap.L().Error("Error reloading configuration", zap.Error(err))
		}
	})

	return nil
}
