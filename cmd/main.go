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

	calculatePriceHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/calculate_price"
	cancelBookingHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/create_booking"
	createSlotHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_booking"
	getPlaygroundBookingsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_playground_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/get_user_bookings"
	listSlotsHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/list_slots"
	rescheduleBookingHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/config"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/coupon"
	slotRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/slot"
	playgroundServiceClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	bookingsService "github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/conflicts"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	slotsService "github.com/m04kA/SMC-PlaygroundBooking/internal/service/slots"
	calculatePriceUC "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/calculate_price"
	createBookingUC "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/logger"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/metrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/txmanager"
)

const (
	configPath          = "config.toml"
	eventPublishTimeout = 3 * time.Second
)

// eventSender транспорт событий, закрываемый при остановке
type eventSender interface {
	events.Sender
	Close() error
}

func main() {
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

	log.Info("Starting SMC-PlaygroundBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Часовой пояс проверен в config.Validate
	location, _ := cfg.Booking.Location()
	log.Info("Booking dates are interpreted in %s", location)

	// Инициализируем метрики (если включены)
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

	// Клиент каталога площадок
	playgroundClient := playgroundServiceClient.NewClient(
		cfg.PlaygroundService.URL,
		time.Duration(cfg.PlaygroundService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PlaygroundService=%s timeout=%ds)",
		cfg.PlaygroundService.URL, cfg.PlaygroundService.Timeout)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		slotRepository    *slotRepo.Repository
		couponRepository  *couponRepo.Repository
		txMgr             *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(txmanager.SQLDB{DB: db})
	}

	// Публикация событий бронирований
	var sender eventSender = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		sender = publisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	} else {
		log.Info("Booking events publishing disabled")
	}
	defer sender.Close()
	notifier := events.NewNotifier(sender, log, eventPublishTimeout)

	// Инициализируем сервисы
	conflictDetector := conflicts.NewDetector(bookingRepository, log)
	pricingEngine := pricing.NewEngine(log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		playgroundClient,
		notifier,
		metricsCollector,
		location,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		playgroundClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		slotRepository,
		playgroundClient,
		pricingEngine,
		location,
		log,
	)
	calculatePriceUseCase := calculatePriceUC.NewUseCase(
		slotRepository,
		couponRepository,
		playgroundClient,
		pricingEngine,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		couponRepository,
		conflictDetector,
		playgroundClient,
		pricingEngine,
		txMgr,
		notifier,
		metricsCollector,
		location,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		conflictDetector,
		playgroundClient,
		pricingEngine,
		txMgr,
		notifier,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getPlaygroundBookings := getPlaygroundBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты площадки на дату
	api.HandleFunc("/playgrounds/{playgroundId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расчет стоимости
	api.HandleFunc("/playgrounds/{playgroundId}/price", calculatePrice.Handle).Methods(http.MethodPost)

	// Определения слотов площадки
	api.HandleFunc("/playgrounds/{playgroundId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (владелец и администратор) ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/playgrounds/{playgroundId}/bookings", getPlaygroundBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/playgrounds/{playgroundId}/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/playgrounds/{playgroundId}/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

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
