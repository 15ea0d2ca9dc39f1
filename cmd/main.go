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

	cancelAppointmentHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/cancel_appointment"
	catalogHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/catalog"
	completeSettlementHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/complete_settlement"
	createAppointmentHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/get_appointment"
	getGridHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/get_grid"
	getSaleHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/get_sale"
	listAppointmentsHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/list_appointments"
	openCartHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/open_cart"
	resolveAvailabilityHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/resolve_availability"
	updateAppointmentHandler "github.com/m04kA/SMC-BoxScheduler/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-BoxScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-BoxScheduler/internal/config"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/catalog"
	offeringRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/offering"
	professionalRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/professional"
	saleRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/sale"
	"github.com/m04kA/SMC-BoxScheduler/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-BoxScheduler/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BoxScheduler/internal/service/catalog"
	completeSettlementUC "github.com/m04kA/SMC-BoxScheduler/internal/usecase/complete_settlement"
	createAppointmentUC "github.com/m04kA/SMC-BoxScheduler/internal/usecase/create_appointment"
	openCartUC "github.com/m04kA/SMC-BoxScheduler/internal/usecase/open_cart"
	resolveAvailabilityUC "github.com/m04kA/SMC-BoxScheduler/internal/usecase/resolve_availability"
	updateAppointmentUC "github.com/m04kA/SMC-BoxScheduler/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-BoxScheduler/migrations"
	"github.com/m04kA/SMC-BoxScheduler/pkg/civilclock"
	"github.com/m04kA/SMC-BoxScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BoxScheduler/pkg/logger"
	"github.com/m04kA/SMC-BoxScheduler/pkg/metrics"
	"github.com/m04kA/SMC-BoxScheduler/pkg/txmanager"
)

// maxBodyBytes ограничение на размер тела запроса
const maxBodyBytes = 1 << 20

// publisher общий интерфейс RabbitMQ публикатора и заглушки
type publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
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

	log.Info("Starting SMC-BoxScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(context.Background(), db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, prometheus.DefaultRegisterer)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Гражданское время: одно фиксированное смещение от UTC
	clock := civilclock.New(civilclock.SystemClock{}, cfg.Civil.OffsetMinutes)
	today, now := clock.Now()
	log.Info("Civil clock initialized: offset=%d min, now=%s %s", clock.OffsetMinutes(), today, now)

	// Публикация событий
	var eventPublisher publisher = events.Noop{}
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		eventPublisher = p
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	}
	defer eventPublisher.Close()

	gridTimes, err := cfg.Grid.Times()
	if err != nil {
		log.Fatal("Invalid grid configuration: %v", err)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	offeringRepository := offeringRepo.NewRepository(wrappedDB)
	professionalRepository := professionalRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	saleRepository := saleRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		saleRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(
		offeringRepository,
		professionalRepository,
		catalogRepository,
		txMgr,
		cfg.Boxes.Names,
		log,
	)

	// Инициализируем use cases
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		professionalRepository,
		offeringRepository,
		appointmentRepository,
		cfg.Boxes.Names,
		gridTimes,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		offeringRepository,
		professionalRepository,
		catalogRepository,
		txMgr,
		clock,
		eventPublisher,
		metricsCollector,
		createAppointmentUC.Options{
			Boxes:                  cfg.Boxes.Names,
			DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
			StrictOverlap:          cfg.Booking.StrictOverlap,
		},
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		offeringRepository,
		professionalRepository,
		catalogRepository,
		txMgr,
		clock,
		metricsCollector,
		updateAppointmentUC.Options{
			Boxes:              cfg.Boxes.Names,
			StrictOverlap:      cfg.Booking.StrictOverlap,
			EnforceTransitions: cfg.Booking.EnforceTransitions,
		},
		log,
	)

	openCartUseCase := openCartUC.NewUseCase(
		appointmentRepository,
		offeringRepository,
		catalogRepository,
		log,
	)

	completeSettlementUseCase := completeSettlementUC.NewUseCase(
		openCartUseCase,
		saleRepository,
		appointmentRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	resolveAvailability := resolveAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, log)
	getGrid := getGridHandler.NewHandler(resolveAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	openCart := openCartHandler.NewHandler(openCartUseCase, log)
	getSale := getSaleHandler.NewHandler(appointmentSvc, log)
	completeSettlement := completeSettlementHandler.NewHandler(completeSettlementUseCase, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Observe(log, metricsCollector))

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := wrappedDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.BodyLimit(maxBodyBytes))

	// --- Доступность ---
	api.HandleFunc("/availability", resolveAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/grid", getGrid.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Расчет ---
	api.HandleFunc("/appointments/{appointmentId}/cart", openCart.Handle).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/settlement", completeSettlement.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/sale", getSale.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	api.HandleFunc("/offerings", catalog.ListOfferings).Methods(http.MethodGet)
	api.HandleFunc("/offerings", catalog.CreateOffering).Methods(http.MethodPost)
	api.HandleFunc("/offerings/{offeringId}", catalog.GetOffering).Methods(http.MethodGet)
	api.HandleFunc("/professionals", catalog.ListProfessionals).Methods(http.MethodGet)
	api.HandleFunc("/professionals", catalog.CreateProfessional).Methods(http.MethodPost)
	api.HandleFunc("/professionals/{professionalId}", catalog.DeleteProfessional).Methods(http.MethodDelete)
	api.HandleFunc("/clients", catalog.ListClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", catalog.CreateClient).Methods(http.MethodPost)
	api.HandleFunc("/products", catalog.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", catalog.CreateProduct).Methods(http.MethodPost)
	api.HandleFunc("/payment-methods", catalog.ListPaymentMethods).Methods(http.MethodGet)

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
		log.Info("Starting server on %s (boxes=%v, grid=%d slots)", addr, cfg.Boxes.Names, len(gridTimes))
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
