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
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	checkAvailabilityHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/check_availability"
	createReservationHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/create_reservation"
	getDaySlotsHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_day_slots"
	getDayStatsHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_day_stats"
	getReservationHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_reservation"
	getSlotOccupancyHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_slot_occupancy"
	getVenueReservationsHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_venue_reservations"
	getVenueSettingsHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_venue_settings"
	getVenueTablesHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/get_venue_tables"
	updateReservationStatusHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/update_reservation_status"
	updateVenueSettingsHandler "github.com/1122padelclub/padel-app-sub002/internal/api/handlers/update_venue_settings"
	"github.com/1122padelclub/padel-app-sub002/internal/api/middleware"
	"github.com/1122padelclub/padel-app-sub002/internal/config"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/internal/infra/lock"
	mongoStore "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/mongo"
	reservationRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/reservation"
	tableRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/table"
	venueRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/venue"
	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
	occupancyService "github.com/1122padelclub/padel-app-sub002/internal/service/occupancy"
	reservationsService "github.com/1122padelclub/padel-app-sub002/internal/service/reservations"
	venuesService "github.com/1122padelclub/padel-app-sub002/internal/service/venues"
	createReservationUC "github.com/1122padelclub/padel-app-sub002/internal/usecase/create_reservation"
	getDaySlotsUC "github.com/1122padelclub/padel-app-sub002/internal/usecase/get_day_slots"
	"github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/logger"
	"github.com/1122padelclub/padel-app-sub002/pkg/metrics"
	"github.com/1122padelclub/padel-app-sub002/pkg/txmanager"
)

// Хранилища, общие для Postgres и MongoDB
type (
	tableStore interface {
		ListByVenue(ctx context.Context, venueID string) ([]*domain.Table, error)
	}

	reservationStore interface {
		Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
		GetByID(ctx context.Context, id string) (*domain.Reservation, error)
		ListByWindow(ctx context.Context, window domain.ReservationWindow) ([]*domain.Reservation, error)
		UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	}

	venueStore interface {
		GetByVenueID(ctx context.Context, venueID string) (*domain.VenueSettings, error)
		Upsert(ctx context.Context, settings *domain.VenueSettings) (*domain.VenueSettings, error)
	}

	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	eventBus interface {
		Publish(ctx context.Context, event events.ReservationChanged) error
		Subscribe(ctx context.Context, handler events.Handler) (func(), error)
		Close() error
	}

	reservationLocker interface {
		Acquire(ctx context.Context, venueID, date string) (func(), error)
	}
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting padel-app availability service...")
	log.Info("Configuration loaded from config.toml (storage=%s, timezone=%s)", cfg.Storage.Driver, cfg.Engine.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		tables       tableStore
		reservations reservationStore
		venues       venueStore
		txMgr        txManager
		closeStorage func()
	)

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
		store, err := mongoStore.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database, time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to MongoDB: %v", err)
		}
		log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

		tables = store.Tables()
		reservations = store.Reservations()
		venues = store.Venues()
		// Документное хранилище без транзакций, согласованность держит блокировка дня
		txMgr = txmanager.Passthrough{}
		closeStorage = func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(ctx); err != nil {
				log.Error("Failed to disconnect MongoDB: %v", err)
			}
		}

	default:
		// Подключаемся к базе данных
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
		}

		tables = tableRepo.NewRepository(wrappedDB)
		reservations = reservationRepo.NewRepository(wrappedDB)
		venues = venueRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		closeStorage = func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		}
	}
	defer closeStorage()

	// Блокировка дня заведения
	var locker reservationLocker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping Redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisClient.Close()

		locker = lock.NewRedisLocker(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second, log)
		log.Info("Redis reservation lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	} else {
		locker = lock.NewLocalLocker()
		log.Warn("Redis disabled, reservation lock is local to this instance")
	}

	// Шина событий
	var bus eventBus
	if cfg.NATS.Enabled {
		natsBus, err := events.Connect(cfg.NATS.URL, cfg.NATS.Name, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS at %s: %v", cfg.NATS.URL, err)
		}
		bus = natsBus
		log.Info("NATS event bus connected (url=%s)", cfg.NATS.URL)
	} else {
		bus = events.NewLocalBus()
		log.Info("NATS disabled, using in-process event bus")
	}

	// Кеш снапшотов заведений
	var snapshots *cache.Cache
	if cfg.Cache.Enabled {
		snapshots = cache.New(
			time.Duration(cfg.Cache.TTL)*time.Second,
			time.Duration(cfg.Cache.CleanupInterval)*time.Second,
		)
		log.Info("Snapshot cache enabled (ttl=%ds)", cfg.Cache.TTL)
	}

	// Инициализируем сервисы
	defaults := cfg.Engine.Settings()

	occupancySvc := occupancyService.NewService(
		tables,
		reservations,
		venues,
		defaults,
		snapshots,
		metricsCollector,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservations,
		occupancySvc,
		bus,
		txMgr,
		metricsCollector,
		log,
	)
	venueSvc := venuesService.NewService(
		venues,
		defaults,
		occupancySvc,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		tables,
		reservations,
		occupancySvc,
		locker,
		bus,
		txMgr,
		metricsCollector,
		log,
	)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(occupancySvc, log)

	// Подписка на изменения бронирований сбрасывает кеш снапшотов
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := occupancySvc.Watch(watchCtx, bus); err != nil {
			log.Error("Reservation watcher stopped: %v", err)
		}
	}()

	// Инициализируем handlers
	getVenueTables := getVenueTablesHandler.NewHandler(occupancySvc, log)
	getSlotOccupancy := getSlotOccupancyHandler.NewHandler(occupancySvc, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(occupancySvc, log)
	getDayStats := getDayStatsHandler.NewHandler(occupancySvc, log)
	getVenueSettings := getVenueSettingsHandler.NewHandler(venueSvc, log)
	updateVenueSettings := updateVenueSettingsHandler.NewHandler(venueSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет бронирования, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		public.Use(middleware.RateLimit(limiter, metricsCollector))

		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					limiter.Cleanup()
				case <-watchCtx.Done():
					return
				}
			}
		}()
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Занятость и доступность ---
	public.HandleFunc("/venues/{venueId}/tables", getVenueTables.Handle).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId}/occupancy", getSlotOccupancy.Handle).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId}/slots", getDaySlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	public.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (панель заведения)
	// ============================================================

	// --- Заведение ---
	api.HandleFunc("/venues/{venueId}/stats", getDayStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/settings", getVenueSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/settings", updateVenueSettings.Handle).Methods(http.MethodPut)
	api.HandleFunc("/venues/{venueId}/reservations", getVenueReservations.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем подписку и шину событий
	stopWatch()
	if err := bus.Close(); err != nil {
		log.Error("Failed to close event bus: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
