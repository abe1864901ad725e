package config

import (
	"reflect"
	"strings"
	"time"

	"variant-manager/core/database"
	"variant-manager/core/lock"
	"variant-manager/core/logger"
	"variant-manager/core/server"
	"variant-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used for report archives.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the catalog database.
	Database database.Config `mapstructure:"database"`
	// Redis holds configuration for distributed job locks.
	Redis lock.Config `mapstructure:"redis"`
	// Catalog holds tuning for generation and reconciliation.
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// CatalogConfig tunes the catalog jobs.
type CatalogConfig struct {
	// RetryBaseDelayMS is the backoff unit for retryable transactions.
	RetryBaseDelayMS int `mapstructure:"retry_base_delay_ms" default:"50"`
	// ReconcileBatchSize is the number of records checked per query.
	ReconcileBatchSize int `mapstructure:"reconcile_batch_size" default:"500"`
	// ReportPrefix is the bucket prefix for reconciliation reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/reconcile"`
	// LockTTLSeconds bounds how long a reconciliation run holds its lock.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"600"`
}

// RetryBaseDelay returns the configured backoff unit.
func (c CatalogConfig) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

// LockTTL returns the configured lock lifetime.
func (c CatalogConfig) LockTTL() time.Duration {
	if c.LockTTLSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. DATABASE_HOST -> database.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every key with its 'default' tag,
// so AutomaticEnv can resolve nested keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
