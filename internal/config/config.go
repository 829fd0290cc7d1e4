package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrReadConfig возвращается, если не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Availability  AvailabilityConfig  `toml:"availability"`
	ExportService ExportServiceConfig `toml:"export_service"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN формирует строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis, в котором хранится кэш с тегами
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig настройки расчета доступности
type AvailabilityConfig struct {
	MaxRangeDays       int    `toml:"max_range_days"`
	PercentageRounding string `toml:"percentage_rounding"` // half_up | floor | ceil
	CacheTTLSeconds    int    `toml:"cache_ttl_seconds"`
}

// ExportServiceConfig настройки клиента внешнего сервиса экспорта
type ExportServiceConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"` // секунды на один HTTP запрос
	PollIntervalMs  int    `toml:"poll_interval_ms"`
	MaxPollAttempts int    `toml:"max_poll_attempts"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки TOML
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		// Экспорт ждёт завершения задачи до ~60 секунд
		c.Server.WriteTimeout = 90
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
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

	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "smc-reservations"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_reservation_service"
	}

	if c.Availability.MaxRangeDays == 0 {
		c.Availability.MaxRangeDays = domain.DefaultMaxRangeDays
	}
	if c.Availability.PercentageRounding == "" {
		c.Availability.PercentageRounding = string(domain.RoundHalfUp)
	}
	if c.Availability.CacheTTLSeconds == 0 {
		c.Availability.CacheTTLSeconds = domain.DefaultCacheTTLSeconds
	}

	if c.ExportService.Timeout == 0 {
		c.ExportService.Timeout = 10
	}
	if c.ExportService.PollIntervalMs == 0 {
		c.ExportService.PollIntervalMs = 3000
	}
	if c.ExportService.MaxPollAttempts == 0 {
		c.ExportService.MaxPollAttempts = 20
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}
	if c.Availability.MaxRangeDays < 1 {
		return fmt.Errorf("%w: availability.max_range_days must be positive", ErrInvalidConfig)
	}
	if _, err := domain.ParseRoundingMode(c.Availability.PercentageRounding); err != nil {
		return fmt.Errorf("%w: availability.percentage_rounding: %v", ErrInvalidConfig, err)
	}
	if c.Availability.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: availability.cache_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	if c.ExportService.URL == "" {
		return fmt.Errorf("%w: export_service.url is required", ErrInvalidConfig)
	}
	if c.ExportService.PollIntervalMs < 1 || c.ExportService.MaxPollAttempts < 1 {
		return fmt.Errorf("%w: export_service polling settings must be positive", ErrInvalidConfig)
	}
	return nil
}
