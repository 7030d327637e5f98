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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addCartItemHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/add_cart_item"
	cancelBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/delete_service"
	getAvailabilityHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_booking"
	getCartHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_cart"
	getMonthAvailabilityHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_month_availability"
	getSettingsHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/list_services"
	removeCartItemHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/remove_cart_item"
	updateBookingStatusHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/update_booking_status"
	updateCartItemHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/update_cart_item"
	updateServiceHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/update_service"
	updateSettingsHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
	"github.com/m04kA/SMC-CleaningService/internal/config"
	availabilityCache "github.com/m04kA/SMC-CleaningService/internal/infra/cache/availability"
	bookingRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/analytics"
	bookingsService "github.com/m04kA/SMC-CleaningService/internal/service/bookings"
	cartService "github.com/m04kA/SMC-CleaningService/internal/service/cart"
	catalogService "github.com/m04kA/SMC-CleaningService/internal/service/catalog"
	settingsService "github.com/m04kA/SMC-CleaningService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-CleaningService/internal/usecase/get_availability"
	getMonthAvailabilityUC "github.com/m04kA/SMC-CleaningService/internal/usecase/get_month_availability"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
	"github.com/m04kA/SMC-CleaningService/pkg/txmanager"
)

// availCacheIface объединяет методы кеша, которые нужны разным потребителям
// Реализуется и настоящим Redis-кешем, и заглушкой
type availCacheIface interface {
	GetDaySlots(ctx context.Context, date time.Time, durationMinutes int) ([]engine.Slot, bool)
	SetDaySlots(ctx context.Context, date time.Time, durationMinutes int, slots []engine.Slot)
	GetMonth(ctx context.Context, year, month, durationMinutes int) (map[string]bool, bool)
	SetMonth(ctx context.Context, year, month, durationMinutes int, days map[string]bool)
	InvalidateDate(ctx context.Context, date time.Time)
	InvalidateAll(ctx context.Context)
	Close() error
}

// producerIface методы продюсера аналитики
type producerIface interface {
	Start(ctx context.Context)
	Emit(eventType, sessionID string, payload interface{})
	WaitClosed()
}

func main() {
	// .env для локального запуска; в проде переменные приходят из окружения
	_ = godotenv.Load()

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

	log.Info("Starting SMC-CleaningService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		settingsRepository *settingsRepo.Repository
		txMgr              *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(db)
	}

	// Инициализируем кеш доступности
	var availCache availCacheIface = availabilityCache.NewNopCache()
	if cfg.Redis.Enabled {
		availCache = availabilityCache.New(
			cfg.Redis.Addr,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}
	defer availCache.Close()

	// Инициализируем продюсер аналитики
	producerCtx, stopProducer := context.WithCancel(context.Background())
	defer stopProducer()

	var producer producerIface = analytics.NewNopProducer()
	if cfg.Analytics.Enabled {
		producer = analytics.NewProducer(cfg.Analytics.Brokers, cfg.Analytics.Topic, cfg.Analytics.BufferSize, log)
		log.Info("Analytics producer enabled (topic=%s)", cfg.Analytics.Topic)
	}
	producer.Start(producerCtx)

	// Инициализируем сервисы
	cartSvc := cartService.NewService(catalogRepository, producer, log)
	bookingSvc := bookingsService.NewService(bookingRepository, availCache, producer, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, availCache, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(bookingRepository, settingsRepository, availCache, log)
	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(bookingRepository, settingsRepository, availCache, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		settingsRepository,
		txMgr,
		availCache,
		producer,
		cartSvc,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getCart := getCartHandler.NewHandler(cartSvc, log)
	addCartItem := addCartItemHandler.NewHandler(cartSvc, log)
	updateCartItem := updateCartItemHandler.NewHandler(cartSvc, log)
	removeCartItem := removeCartItemHandler.NewHandler(cartSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/month", getMonthAvailability.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Корзина и оформление (сессия через X-Session-ID)
	session := api.PathPrefix("").Subrouter()
	session.Use(middleware.Session)
	session.HandleFunc("/cart", getCart.Handle).Methods(http.MethodGet)
	session.HandleFunc("/cart/items", addCartItem.Handle).Methods(http.MethodPost)
	session.HandleFunc("/cart/items/{serviceId}", updateCartItem.Handle).Methods(http.MethodPatch)
	session.HandleFunc("/cart/items/{serviceId}", removeCartItem.Handle).Methods(http.MethodDelete)
	session.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Настройки компании ---
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	// Сначала дожидаемся in-flight запросов: они могут отправлять события
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Затем дожидаемся отправки накопленных аналитических событий
	stopProducer()
	producer.WaitClosed()

	log.Info("Server stopped gracefully")
}
