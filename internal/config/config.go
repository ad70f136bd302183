package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Redis       RedisConfig       `toml:"redis"`
	Kafka       KafkaConfig       `toml:"kafka"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | memory
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Brokers     string `toml:"brokers"` // через запятую, пусто - публикация выключена
	TopicPrefix string `toml:"topic_prefix"`
	PollEvery   int    `toml:"poll_every_ms"`
	BatchSize   int    `toml:"batch_size"`
}

type RateLimitConfig struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"`
	Window  int  `toml:"window"` // секунды
	Burst   int  `toml:"burst"`
}

type UserServiceConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`   // секунды
	CacheTTL int    `toml:"cache_ttl"` // секунды, 0 - без кэша
}

type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	LeadTimeMinutes    int    `toml:"lead_time_minutes"`
	ToleranceMinutes   int    `toml:"tolerance_minutes"`
	DefaultHorizonDays int    `toml:"default_horizon_days"`
	MaxHorizonDays     int    `toml:"max_horizon_days"`
}

// Location часовой пояс бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// LeadTime минимальный запас до начала слота
func (b BookingConfig) LeadTime() time.Duration {
	return time.Duration(b.LeadTimeMinutes) * time.Minute
}

// Load читает TOML, накладывает .env и переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          StorageDriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Kafka: KafkaConfig{
			TopicPrefix: "booking.",
			PollEvery:   2000,
			BatchSize:   50,
		},
		RateLimit: RateLimitConfig{
			Limit:  60,
			Window: 60,
			Burst:  10,
		},
		UserService: UserServiceConfig{
			URL:      "http://localhost:8081",
			Timeout:  5,
			CacheTTL: 300,
		},
		Booking: BookingConfig{
			Timezone:           "UTC",
			LeadTimeMinutes:    60,
			ToleranceMinutes:   5,
			DefaultHorizonDays: 90,
			MaxHorizonDays:     365,
		},
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Booking.Timezone, "BOOKING_TIMEZONE")

	for env, dst := range map[string]*int{
		"DB_PORT":   &c.Database.Port,
		"REDIS_DB":  &c.Redis.DB,
		"HTTP_PORT": &c.Server.HTTPPort,
	} {
		if err := setInt(dst, env); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv("REDIS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: invalid REDIS_ENABLED=%q: %w", v, err)
		}
		c.Redis.Enabled = enabled
	}
	return nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("config: database.host and database.dbname are required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: invalid booking.timezone %q: %w", c.Booking.Timezone, err)
	}
	if c.Booking.LeadTimeMinutes < 0 {
		return errors.New("config: booking.lead_time_minutes must not be negative")
	}
	if c.Booking.ToleranceMinutes < 0 {
		return errors.New("config: booking.tolerance_minutes must not be negative")
	}
	if c.Booking.MaxHorizonDays <= 0 {
		return errors.New("config: booking.max_horizon_days must be positive")
	}
	if c.Booking.DefaultHorizonDays <= 0 || c.Booking.DefaultHorizonDays > c.Booking.MaxHorizonDays {
		return fmt.Errorf("config: booking.default_horizon_days must be in 1..%d", c.Booking.MaxHorizonDays)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("config: rate_limit.limit and rate_limit.window must be positive")
	}
	return nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, env string) error {
	v, ok := os.LookupEnv(env)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", env, v, err)
	}
	*dst = n
	return nil
}
