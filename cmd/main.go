package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bulkUpdateHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/bulk_update_reservations"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	exportReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/export_reservations"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_reservations"
	transitionReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/transition_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache/tagcache"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	subScenarioRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/subscenario"
	exportServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/exportservice"
	"github.com/m04kA/SMC-ReservationService/internal/jobpoller"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	bulkUpdateUC "github.com/m04kA/SMC-ReservationService/internal/usecase/bulk_update_reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	exportReservationsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/export_reservations"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	transitionReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики. При выключенных метриках collector остается nil, его методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Подключаемся к Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	cache := tagcache.New(redisClient, cfg.Redis.Prefix)
	invalidator := cacheinvalidation.NewCoordinator(cache, metricsCollector, log)
	cacheTTL := time.Duration(cfg.Availability.CacheTTLSeconds) * time.Second

	// Клиент внешнего сервиса выгрузок
	exportClient := exportServiceClient.NewClient(
		cfg.ExportService.URL,
		time.Duration(cfg.ExportService.Timeout)*time.Second,
		log,
	)
	log.Info("Export service client initialized (url=%s, timeout=%ds)", cfg.ExportService.URL, cfg.ExportService.Timeout)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	subScenarioRepository := subScenarioRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, cache, cacheTTL, log)

	// Use cases
	rounding, _ := domain.ParseRoundingMode(cfg.Availability.PercentageRounding)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		subScenarioRepository,
		cache,
		getAvailabilityUC.Options{
			MaxRangeDays: cfg.Availability.MaxRangeDays,
			Rounding:     rounding,
			CacheTTL:     cacheTTL,
		},
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		subScenarioRepository,
		txMgr,
		invalidator,
		createReservationUC.Options{MaxRangeDays: cfg.Availability.MaxRangeDays},
		log,
	)

	transitionUseCase := transitionReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		invalidator,
		metricsCollector,
		log,
	)

	bulkUpdateUseCase := bulkUpdateUC.NewUseCase(transitionUseCase, invalidator, log)

	exportUseCase := exportReservationsUC.NewUseCase(
		exportClient,
		jobpoller.Config{
			Interval:    time.Duration(cfg.ExportService.PollIntervalMs) * time.Millisecond,
			MaxAttempts: cfg.ExportService.MaxPollAttempts,
		},
		metricsCollector,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	transitionReservation := transitionReservationHandler.NewHandler(transitionUseCase, log)
	bulkUpdate := bulkUpdateHandler.NewHandler(bulkUpdateUseCase, log)
	exportReservations := exportReservationsHandler.NewHandler(exportUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	api.HandleFunc("/sub-scenarios/{subScenarioId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/exports", exportReservations.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/state", transitionReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/state/bulk", bulkUpdate.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя, userId = 0 для общей панели
	api.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
