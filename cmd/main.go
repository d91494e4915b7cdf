package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	completeBookingHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/complete_booking"
	getRebookingOpportunityHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/get_rebooking_opportunity"
	getUserVehiclesHealthHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/get_user_vehicles_health"
	getVehicleHealthHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/get_vehicle_health"
	getVehicleHistoryHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/get_vehicle_history"
	getVehiclesNeedingServiceHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/get_vehicles_needing_service"
	runHealthChecksHandler "github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers/run_health_checks"
	"github.com/m04kA/SMC-VehicleHealthService/internal/api/middleware"
	notificationsService "github.com/m04kA/SMC-VehicleHealthService/internal/service/notifications"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "vehicle-health",
		Short:        "SMC vehicle protection health service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to TOML config")

	root.AddCommand(
		newServeCmd(&configPath),
		newCheckCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the in-process daily scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath)
		},
	}
}

func newCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the daily health checks once and print the tallies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary := a.notifications.ProcessDailyHealthChecks(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "checked=%d notified=%d errors=%d\n",
				summary.Checked, summary.Notified, summary.Errors)

			if summary.Checked == 0 && summary.Errors > 0 {
				return errors.New("daily health checks could not enumerate vehicles")
			}
			return nil
		},
	}
}

func serve(configPath string) error {
	a, err := newApp(configPath, true)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, log := a.cfg, a.log
	log.Info("Starting SMC-VehicleHealthService...")

	// Инициализируем handlers
	getVehicleHealth := getVehicleHealthHandler.NewHandler(a.health, log)
	getUserVehiclesHealth := getUserVehiclesHealthHandler.NewHandler(a.health, log)
	getVehiclesNeedingService := getVehiclesNeedingServiceHandler.NewHandler(a.health, log)
	getRebookingOpportunity := getRebookingOpportunityHandler.NewHandler(a.health, log)
	runHealthChecks := runHealthChecksHandler.NewHandler(a.notifications, log)
	getVehicleHistory := getVehicleHistoryHandler.NewHandler(a.bookings, log)
	completeBooking := completeBookingHandler.NewHandler(a.bookings, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Состояние покрытия ---
	protected.HandleFunc("/vehicles/{vehicleId}/health", getVehicleHealth.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/vehicles/health", getUserVehiclesHealth.Handle).Methods(http.MethodGet)

	// --- История обслуживания ---
	protected.HandleFunc("/vehicles/{vehicleId}/bookings", getVehicleHistory.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/vehicles/needing-service", getVehiclesNeedingService.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/rebooking-opportunity", getRebookingOpportunity.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/health-checks/run", runHealthChecks.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ежедневная проверка внутри процесса
	schedulerDone := make(chan struct{})
	if cfg.Scheduler.Enabled {
		scheduler := notificationsService.NewScheduler(a.notifications, cfg.Scheduler.Interval(), log)
		go func() {
			defer close(schedulerDone)
			scheduler.Run(ctx)
		}()
	} else {
		close(schedulerDone)
		log.Info("In-process scheduler disabled, use the check command from cron")
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		stop()
		<-schedulerDone
		return err
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Текущая проверка доводит начатые автомобили и останавливается
	<-schedulerDone

	log.Info("Server stopped gracefully")
	return nil
}
