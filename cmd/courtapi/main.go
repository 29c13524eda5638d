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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	createBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_facility"
	listBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_bookings"
	listPendingBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_pending_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/auth"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	getAvailableSlotsUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

// eventPublisher публикатор событий, который надо закрыть при остановке
type eventPublisher interface {
	bookingsService.EventPublisher
	Close() error
}

func main() {
	flags := pflag.NewFlagSet("courtapi", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "config.toml", "path to config file")
	issueFor := flags.String("issue-token", "", "print a signed token for the given user id and exit")
	issueRole := flags.String("role", string(domain.RoleUser), "role for --issue-token (user|admin)")
	issueTTL := flags.Duration("ttl", 24*time.Hour, "lifetime for --issue-token, 0 for no expiry")
	_ = flags.Parse(os.Args[1:])

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	validator := auth.NewJWTValidator(cfg.Auth.JWTSecret)

	// Выдача токена для локальной разработки
	if *issueFor != "" {
		token, err := validator.Issue(*issueFor, domain.Role(*issueRole), *issueTTL)
		if err != nil {
			fmt.Printf("Failed to issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting courtapi...")
	log.Info("Configuration loaded from %s", *configPath)

	facilityLoc, err := cfg.Facility.Location()
	if err != nil {
		log.Fatal("Invalid facility timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозиторий (с метриками или без)
	var bookingRepository *bookingRepo.Repository
	if cfg.Metrics.Enabled {
		bookingRepository = bookingRepo.NewRepository(
			dbmetrics.Wrap(db, cfg.Database.DBName, cfg.Metrics.ServiceName, prometheus.DefaultRegisterer),
		)
		log.Info("Database metrics collection started")
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
	}

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		publisher,
		metricsCollector,
		facilityLoc,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, facilityLoc, log)

	// Инициализируем handlers
	getFacility := getFacilityHandler.NewHandler(facilityLoc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listPendingBookings := listPendingBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	r.HandleFunc("/api/facility", getFacility.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(validator, log))

	// Сетка слотов площадки на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Список бронирований (по нему клиенты строят сетку занятых слотов)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Заявки, ожидающие решения (только администратор)
	api.Handle("/bookings/pending", middleware.RequireAdmin(http.HandlerFunc(listPendingBookings.Handle))).
		Methods(http.MethodGet)

	// Создание бронирования одного слота
	var create http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		create = limiter.Middleware(log)(create)
		log.Info("Rate limit on POST /api/bookings: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", create).Methods(http.MethodPost)

	// Бронирование по ID (владелец или администратор)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// Одобрение/отклонение (только администратор)
	api.Handle("/bookings/{bookingId:[0-9]+}/status", middleware.RequireAdmin(http.HandlerFunc(updateBookingStatus.Handle))).
		Methods(http.MethodPatch)

	// Удаление (владелец или администратор)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

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

	log.Info("Server stopped gracefully")
}
