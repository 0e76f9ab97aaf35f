package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`          // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`            // Telegram API token loaded from environment
	Theme            string    `mapstructure:"theme"`        // light or dark rendering preference
	MetricsAddr      string    `mapstructure:"metrics_addr"` // listen address for /metrics, empty disables it
	Telegram         Telegram  `mapstructure:"telegram"`     // Telegram client options
	Fragments        Fragments `mapstructure:"fragments"`    // verse fragment asset options
	DB               DB        `mapstructure:"database"`     // database configuration section
}

// Telegram contains bot client options.
type Telegram struct {
	Debug         bool `mapstructure:"debug"`          // log raw Telegram API traffic
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
}

// Fragments describes where the primary copy of the verse fragment asset lives.
// When both URL and Path are empty only the bundled copy is used.
type Fragments struct {
	URL   string `mapstructure:"url"`   // HTTP location of ayah_fragments.json
	Path  string `mapstructure:"path"`  // filesystem location of ayah_fragments.json
	Cache bool   `mapstructure:"cache"` // keep the parsed asset for the process lifetime
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether a database connection string is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A local .env file is optional.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("theme", "light")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.update_timeout", 60)
	v.SetDefault("fragments.url", "")
	v.SetDefault("fragments.path", "")
	v.SetDefault("fragments.cache", false)
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("theme", "APP_THEME")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// The database only overrides the bundled chapter table, so it stays optional.
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}
