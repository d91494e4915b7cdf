package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Health    HealthConfig    `toml:"health"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	SMS       SMSConfig       `toml:"sms"`
	Site      SiteConfig      `toml:"site"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// HealthConfig константы модели износа защитного покрытия
type HealthConfig struct {
	OptimalProtectionDays int     `toml:"optimal_protection_days"`
	ExponentialBase       float64 `toml:"exponential_base"`
	NotifyWindowStart     int     `toml:"notify_window_start"`
	NotifyWindowEnd       int     `toml:"notify_window_end"`
	ExcellentThreshold    int     `toml:"excellent_threshold"`
	GoodThreshold         int     `toml:"good_threshold"`
	FairThreshold         int     `toml:"fair_threshold"`
	NeedsServiceBelow     int     `toml:"needs_service_below"`
	AverageBookingValue   float64 `toml:"average_booking_value"`
}

// DecayModel собирает модель износа из конфигурации
// Веса смешивания кривых не настраиваются: от них зависят уже показанные клиентам значения
func (c HealthConfig) DecayModel() domain.DecayModel {
	m := domain.DefaultDecayModel()
	m.OptimalProtectionDays = c.OptimalProtectionDays
	m.ExponentialBase = c.ExponentialBase
	m.NotifyWindowStart = c.NotifyWindowStart
	m.NotifyWindowEnd = c.NotifyWindowEnd
	m.ExcellentThreshold = c.ExcellentThreshold
	m.GoodThreshold = c.GoodThreshold
	m.FairThreshold = c.FairThreshold
	return m
}

type SchedulerConfig struct {
	Enabled              bool `toml:"enabled"`
	IntervalHours        int  `toml:"interval_hours"`
	Workers              int  `toml:"workers"`
	LookupTimeoutSeconds int  `toml:"lookup_timeout_seconds"`
}

// Interval период запуска ежедневной проверки
func (c SchedulerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

// LookupTimeout таймаут обработки одного автомобиля
func (c SchedulerConfig) LookupTimeout() time.Duration {
	return time.Duration(c.LookupTimeoutSeconds) * time.Second
}

type SMSConfig struct {
	BaseURL           string `toml:"base_url"`
	AccountSID        string `toml:"account_sid"`
	AuthToken         string `toml:"auth_token"`
	FromNumber        string `toml:"from_number"`
	CountryCode       string `toml:"country_code"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	Timeout           int    `toml:"timeout"` // секунды
}

type SiteConfig struct {
	URL string `toml:"url"`
}

// Load читает конфигурацию из TOML-файла, применяет значения по умолчанию,
// переопределения из окружения и валидирует результат
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setIntDefault(&c.Server.HTTPPort, 8080)
	setIntDefault(&c.Server.ReadTimeout, 15)
	setIntDefault(&c.Server.WriteTimeout, 60)
	setIntDefault(&c.Server.IdleTimeout, 60)
	setIntDefault(&c.Server.ShutdownTimeout, 30)

	setIntDefault(&c.Database.Port, 5432)
	setStringDefault(&c.Database.SSLMode, "disable")
	setIntDefault(&c.Database.MaxOpenConns, 25)
	setIntDefault(&c.Database.MaxIdleConns, 5)
	setIntDefault(&c.Database.ConnMaxLifetime, 300)

	setStringDefault(&c.Logs.Level, "info")

	setStringDefault(&c.Metrics.Path, "/metrics")
	setStringDefault(&c.Metrics.ServiceName, "smc_vehicle_health")

	setIntDefault(&c.Health.OptimalProtectionDays, domain.DefaultOptimalProtectionDays)
	if c.Health.ExponentialBase == 0 {
		c.Health.ExponentialBase = domain.DefaultExponentialBase
	}
	setIntDefault(&c.Health.NotifyWindowStart, domain.DefaultNotifyWindowStart)
	setIntDefault(&c.Health.NotifyWindowEnd, domain.DefaultNotifyWindowEnd)
	setIntDefault(&c.Health.ExcellentThreshold, domain.DefaultExcellentThreshold)
	setIntDefault(&c.Health.GoodThreshold, domain.DefaultGoodThreshold)
	setIntDefault(&c.Health.FairThreshold, domain.DefaultFairThreshold)
	setIntDefault(&c.Health.NeedsServiceBelow, domain.DefaultNeedsServiceBelow)
	if c.Health.AverageBookingValue == 0 {
		c.Health.AverageBookingValue = domain.DefaultAverageBookingValue
	}

	setIntDefault(&c.Scheduler.IntervalHours, 24)
	setIntDefault(&c.Scheduler.Workers, 4)
	setIntDefault(&c.Scheduler.LookupTimeoutSeconds, 10)

	setStringDefault(&c.SMS.BaseURL, "https://api.twilio.com/2010-04-01")
	setStringDefault(&c.SMS.CountryCode, "+27")
	setIntDefault(&c.SMS.RequestsPerMinute, 60)
	setIntDefault(&c.SMS.Timeout, 10)
}

// applyEnv секреты можно не хранить в файле
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SMS_AUTH_TOKEN"); v != "" {
		c.SMS.AuthToken = v
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	h := c.Health

	if h.OptimalProtectionDays <= 0 {
		return fmt.Errorf("%w: health.optimal_protection_days must be positive", ErrInvalidConfig)
	}
	if h.ExponentialBase <= 0 || h.ExponentialBase >= 1 {
		return fmt.Errorf("%w: health.exponential_base must be in (0, 1)", ErrInvalidConfig)
	}
	if h.NotifyWindowStart > h.NotifyWindowEnd {
		return fmt.Errorf("%w: health.notify_window_start is after notify_window_end", ErrInvalidConfig)
	}
	if !(h.ExcellentThreshold > h.GoodThreshold && h.GoodThreshold > h.FairThreshold && h.FairThreshold > 0) {
		return fmt.Errorf("%w: health thresholds must be strictly descending and positive", ErrInvalidConfig)
	}
	if h.ExcellentThreshold > 100 {
		return fmt.Errorf("%w: health.excellent_threshold must not exceed 100", ErrInvalidConfig)
	}
	if c.Scheduler.Workers < 1 {
		return fmt.Errorf("%w: scheduler.workers must be at least 1", ErrInvalidConfig)
	}
	if c.SMS.RequestsPerMinute < 1 {
		return fmt.Errorf("%w: sms.requests_per_minute must be at least 1", ErrInvalidConfig)
	}

	return nil
}

func setIntDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setStringDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
