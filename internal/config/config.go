package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Events    EventsConfig    `mapstructure:"events"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
	Timeout    int    `mapstructure:"timeout"`
}

// StorageConfig selects the key-value backend holding the reminder records.
// Driver is one of "postgres", "mongo" or "memory".
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type EventsConfig struct {
	PublishRetries int `mapstructure:"publish_retries"`
}

type ReminderConfig struct {
	Timezone          string `mapstructure:"timezone"`
	RecordFiredEvents bool   `mapstructure:"record_fired_events"`
	PreviewLength     int    `mapstructure:"preview_length"`
	TestDelaySeconds  int    `mapstructure:"test_delay_seconds"`
	FiredRetrySeconds int    `mapstructure:"fired_retry_seconds"`
}

type NotifierConfig struct {
	Sender            string         `mapstructure:"sender"`
	PermissionGranted bool           `mapstructure:"permission_granted"`
	MaxRetries        int            `mapstructure:"max_retries"`
	FCM               FCMConfig      `mapstructure:"fcm"`
	Telegram          TelegramConfig `mapstructure:"telegram"`
}

type FCMConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	DeviceToken     string `mapstructure:"device_token"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type SchedulerConfig struct {
	PollInterval    int    `mapstructure:"poll_interval"`
	WorkerCount     int    `mapstructure:"worker_count"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	CleanupSchedule string `mapstructure:"cleanup_schedule"`
	Enabled         bool   `mapstructure:"enabled"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "reminders")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "reminders")
	v.SetDefault("mongo.collection", "kv_records")
	v.SetDefault("mongo.timeout", 10)

	v.SetDefault("storage.driver", "postgres")

	v.SetDefault("events.publish_retries", 3)

	v.SetDefault("reminder.timezone", "Local")
	v.SetDefault("reminder.record_fired_events", true)
	v.SetDefault("reminder.preview_length", 100)
	v.SetDefault("reminder.test_delay_seconds", 2)
	v.SetDefault("reminder.fired_retry_seconds", 60)

	v.SetDefault("notifier.sender", "log")
	v.SetDefault("notifier.permission_granted", true)
	v.SetDefault("notifier.max_retries", 3)
	v.SetDefault("notifier.fcm.credentials_file", "")
	v.SetDefault("notifier.fcm.device_token", "")
	v.SetDefault("notifier.telegram.token", "")
	v.SetDefault("notifier.telegram.chat_id", 0)

	v.SetDefault("scheduler.poll_interval", 1) // seconds between due-notification scans
	v.SetDefault("scheduler.worker_count", 1)
	v.SetDefault("scheduler.shutdown_timeout", 30)
	v.SetDefault("scheduler.cleanup_schedule", "@every 1h")
	v.SetDefault("scheduler.enabled", true)

	v.SetDefault("catalog.path", "")

	v.SetDefault("ratelimit.requests_per_second", 20.0)
	v.SetDefault("ratelimit.burst", 40)
}
