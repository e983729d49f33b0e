package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/pkg/types"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Storage   StorageConfig   `toml:"storage"`
	Redis     RedisConfig     `toml:"redis"`
	NATS      NATSConfig      `toml:"nats"`
	Cache     CacheConfig     `toml:"cache"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Engine    EngineConfig    `toml:"engine"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
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

type MongoConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	ConnectTimeout int    `toml:"connect_timeout"` // секунды
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | mongo
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"` // секунды
}

type NATSConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Name    string `toml:"name"`
}

type CacheConfig struct {
	Enabled         bool `toml:"enabled"`
	TTL             int  `toml:"ttl"`              // секунды
	CleanupInterval int  `toml:"cleanup_interval"` // секунды
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// EngineConfig значения по умолчанию движка доступности
// Настройки заведения в базе перекрывают их
type EngineConfig struct {
	Timezone               string `toml:"timezone"`
	DefaultTableCapacity   int    `toml:"default_table_capacity"`
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
	SlotDurationMinutes    int    `toml:"slot_duration_minutes"`
	FallbackTime           string `toml:"fallback_time"`
	OpenTime               string `toml:"open_time"`
	CloseTime              string `toml:"close_time"`
	RequireSpecificTable   bool   `toml:"require_specific_table"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию из TOML файла
// Переменные окружения (и .env рядом с бинарником) перекрывают секреты из файла
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и утилитах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 10
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverPostgres
	}

	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 10
	}
	if c.NATS.Name == "" {
		c.NATS.Name = "padel-app"
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = 60
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}

	if c.Engine.Timezone == "" {
		c.Engine.Timezone = domain.DefaultTimezone
	}
	if c.Engine.DefaultTableCapacity == 0 {
		c.Engine.DefaultTableCapacity = domain.DefaultTableCapacity
	}
	if c.Engine.DefaultDurationMinutes == 0 {
		c.Engine.DefaultDurationMinutes = domain.DefaultDurationMinutes
	}
	if c.Engine.SlotDurationMinutes == 0 {
		c.Engine.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Engine.FallbackTime == "" {
		c.Engine.FallbackTime = domain.DefaultFallbackTime
	}
	if c.Engine.OpenTime == "" {
		c.Engine.OpenTime = domain.DefaultOpenTime
	}
	if c.Engine.CloseTime == "" {
		c.Engine.CloseTime = domain.DefaultCloseTime
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "padel_app"
	}
}

// Validate проверяет значения после заполнения умолчаний
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo.uri and mongo.database are required for mongo storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("%w: nats.url is required when nats is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate_limit values must not be negative", ErrInvalidConfig)
	}

	if _, err := time.LoadLocation(c.Engine.Timezone); err != nil {
		return fmt.Errorf("%w: engine.timezone %q: %v", ErrInvalidConfig, c.Engine.Timezone, err)
	}
	if c.Engine.DefaultTableCapacity < domain.MinTableCapacity || c.Engine.DefaultTableCapacity > domain.MaxTableCapacity {
		return fmt.Errorf("%w: engine.default_table_capacity %d", ErrInvalidConfig, c.Engine.DefaultTableCapacity)
	}
	if c.Engine.DefaultDurationMinutes < domain.MinDurationMinutes || c.Engine.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: engine.default_duration_minutes %d", ErrInvalidConfig, c.Engine.DefaultDurationMinutes)
	}
	if c.Engine.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.Engine.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: engine.slot_duration_minutes %d", ErrInvalidConfig, c.Engine.SlotDurationMinutes)
	}
	for name, value := range map[string]string{
		"fallback_time": c.Engine.FallbackTime,
		"open_time":     c.Engine.OpenTime,
		"close_time":    c.Engine.CloseTime,
	} {
		if err := types.TimeString(value).Validate(); err != nil {
			return fmt.Errorf("%w: engine.%s: %v", ErrInvalidConfig, name, err)
		}
	}

	return nil
}

// Location часовой пояс по умолчанию
func (e EngineConfig) Location() *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Settings настройки движка доступности по умолчанию
func (e EngineConfig) Settings() availability.Settings {
	return availability.Settings{
		Location:               e.Location(),
		DefaultTableCapacity:   e.DefaultTableCapacity,
		DefaultDurationMinutes: e.DefaultDurationMinutes,
		SlotDurationMinutes:    e.SlotDurationMinutes,
		FallbackTime:           e.FallbackTime,
		OpenTime:               e.OpenTime,
		CloseTime:              e.CloseTime,
		RequireSpecificTable:   e.RequireSpecificTable,
	}
}
