package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-VehicleHealthService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VehicleHealthService/internal/infra/storage/booking"
	vehicleRepo "github.com/m04kA/SMC-VehicleHealthService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-VehicleHealthService/internal/integrations/smsgateway"
	bookingsService "github.com/m04kA/SMC-VehicleHealthService/internal/service/bookings"
	healthService "github.com/m04kA/SMC-VehicleHealthService/internal/service/health"
	notificationsService "github.com/m04kA/SMC-VehicleHealthService/internal/service/notifications"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/logger"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/metrics"
)

// app собранные зависимости сервиса
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *sql.DB
	metrics *metrics.Metrics

	stopMetricsCh chan struct{}

	bookings      *bookingsService.Service
	health        *healthService.Service
	notifications *notificationsService.Service
}

// newApp загружает конфигурацию, подключается к базе и собирает сервисы
// withMetrics=false отключает Prometheus даже при metrics.enabled (для разовых запусков)
func newApp(configPath string, withMetrics bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewWithRotation(cfg.Logs.File, cfg.Logs.Level, logger.Rotation{
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
		MaxAgeDays: cfg.Logs.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Configuration loaded from %s", configPath)

	a := &app{
		cfg:           cfg,
		log:           log,
		stopMetricsCh: make(chan struct{}),
	}

	if withMetrics && cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		_ = log.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	a.db = db
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if a.metrics != nil {
		executor = dbmetrics.WrapWithDefault(db, a.metrics, cfg.Metrics.ServiceName, a.stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	vehicleRepository := vehicleRepo.NewRepository(executor)

	// Инициализируем SMS-шлюз
	smsClient := smsgateway.NewClient(smsgateway.Config{
		BaseURL:           cfg.SMS.BaseURL,
		AccountSID:        cfg.SMS.AccountSID,
		AuthToken:         cfg.SMS.AuthToken,
		FromNumber:        cfg.SMS.FromNumber,
		CountryCode:       cfg.SMS.CountryCode,
		RequestsPerMinute: cfg.SMS.RequestsPerMinute,
		Timeout:           time.Duration(cfg.SMS.Timeout) * time.Second,
	}, log)
	if !smsClient.IsConfigured() {
		log.Warn("SMS gateway not configured, reminders will be skipped")
	}

	// Инициализируем сервисы
	model := cfg.Health.DecayModel()
	clock := &healthService.RealTimeProvider{}

	a.bookings = bookingsService.NewService(bookingRepository, clock, log)

	a.health = healthService.NewService(
		bookingRepository,
		vehicleRepository,
		model,
		healthService.Options{
			NeedsServiceBelow:   cfg.Health.NeedsServiceBelow,
			AverageBookingValue: cfg.Health.AverageBookingValue,
		},
		clock,
		a.metrics,
		log,
	)

	a.notifications = notificationsService.NewService(
		a.health,
		vehicleRepository,
		smsClient,
		model,
		notificationsService.Options{
			Workers:       cfg.Scheduler.Workers,
			LookupTimeout: cfg.Scheduler.LookupTimeout(),
			SiteURL:       cfg.Site.URL,
		},
		a.metrics,
		log,
	)

	return a, nil
}

// Close останавливает сбор метрик и освобождает ресурсы
func (a *app) Close() {
	close(a.stopMetricsCh)
	if a.db != nil {
		_ = a.db.Close()
	}
	_ = a.log.Close()
}
