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
	"github.com/redis/go-redis/v9"

	adminAvailabilityHandler "github.com/m04kA/atelier-booking/internal/api/handlers/admin_availability"
	adminContactHandler "github.com/m04kA/atelier-booking/internal/api/handlers/admin_contact"
	adminReservationsHandler "github.com/m04kA/atelier-booking/internal/api/handlers/admin_reservations"
	adminSessionsHandler "github.com/m04kA/atelier-booking/internal/api/handlers/admin_sessions"
	contactHandler "github.com/m04kA/atelier-booking/internal/api/handlers/contact"
	createCheckoutHandler "github.com/m04kA/atelier-booking/internal/api/handlers/create_checkout"
	createReservationHandler "github.com/m04kA/atelier-booking/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/atelier-booking/internal/api/handlers/get_availability"
	healthHandler "github.com/m04kA/atelier-booking/internal/api/handlers/health"
	listFormationsHandler "github.com/m04kA/atelier-booking/internal/api/handlers/list_formations"
	manageReservationHandler "github.com/m04kA/atelier-booking/internal/api/handlers/manage_reservation"
	newsHandler "github.com/m04kA/atelier-booking/internal/api/handlers/news"
	paymentWebhookHandler "github.com/m04kA/atelier-booking/internal/api/handlers/payment_webhook"
	"github.com/m04kA/atelier-booking/internal/api/middleware"
	"github.com/m04kA/atelier-booking/internal/config"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/integrations/payment"
	adminService "github.com/m04kA/atelier-booking/internal/service/admin"
	admissionService "github.com/m04kA/atelier-booking/internal/service/admission"
	availabilityService "github.com/m04kA/atelier-booking/internal/service/availability"
	catalogService "github.com/m04kA/atelier-booking/internal/service/catalog"
	contactService "github.com/m04kA/atelier-booking/internal/service/contact"
	newsService "github.com/m04kA/atelier-booking/internal/service/news"
	reservationsService "github.com/m04kA/atelier-booking/internal/service/reservations"
	createReservationUC "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
	manageReservationUC "github.com/m04kA/atelier-booking/internal/usecase/manage_reservation"
	paymentEventsUC "github.com/m04kA/atelier-booking/internal/usecase/payment_events"
	"github.com/m04kA/atelier-booking/pkg/logger"
	"github.com/m04kA/atelier-booking/pkg/metrics"
)

const configPath = "config.toml"

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

	log.Info("Starting atelier-booking...")
	log.Info("Configuration loaded (storage=%s, default_capacity=%d, pending_timeout=%s)",
		cfg.Storage.Backend, cfg.Booking.DefaultCapacity, cfg.Booking.PendingTimeout())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx := context.Background()

	// Хранилище документов
	var store records.Store
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		pg := records.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare database schema: %v", err)
		}
		store = pg
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	case config.StorageMemory:
		store = records.NewMemoryStore()
		log.Warn("Using in-memory storage: data is lost on restart")

	default:
		fs, err := records.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			log.Fatal("Failed to open data directory %s: %v", cfg.Storage.DataDir, err)
		}
		store = fs
		log.Info("Using file storage in %s", fs.Dir())
	}

	// Каталог формаций
	base, err := catalogService.LoadBase(cfg.Storage.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load catalog: %v", err)
	}
	log.Info("Catalog loaded: %d formations", len(base))

	// Уведомления: всегда в лог, плюс в RabbitMQ если задан адрес
	template := notifier.Template{
		BusinessName:    cfg.Notifications.BusinessName,
		DefaultLocation: cfg.Notifications.DefaultLocation,
		IBAN:            cfg.Payment.BankIBAN,
		ContactEmail:    cfg.Notifications.ContactEmail,
		AdminCopy:       cfg.Notifications.AdminCopy,
	}
	sinks := notifier.MultiSink{notifier.NewLogSink(template, log)}
	var amqpSink *notifier.AMQPSink
	if cfg.Notifications.RabbitMQURL != "" {
		amqpSink = notifier.NewAMQPSink(cfg.Notifications.RabbitMQURL, cfg.Notifications.Queue, template, log)
		sinks = append(sinks, amqpSink)
		log.Info("Notifications published to RabbitMQ queue %s", cfg.Notifications.Queue)
	}
	dispatcher := notifier.NewDispatcher(sinks, notifier.DispatcherConfig{
		Workers:     cfg.Notifications.Workers,
		QueueSize:   cfg.Notifications.QueueSize,
		SendTimeout: time.Duration(cfg.Notifications.SendTimeout) * time.Second,
	}, metricsCollector, log)

	// Платежный шлюз
	gateway := payment.NewGateway(payment.Config{
		SecretKey:      cfg.Payment.SecretKey,
		WebhookSecret:  cfg.Payment.WebhookSecret,
		Currency:       cfg.Payment.Currency,
		SuccessURL:     cfg.Server.ClientURL + cfg.Payment.SuccessPath,
		CancelURL:      cfg.Server.ClientURL + cfg.Payment.CancelPath,
		PriceOverrides: cfg.Payment.PriceOverrides,
		CheckoutTTL:    time.Duration(cfg.Payment.CheckoutTTLMinutes) * time.Minute,
	}, log)
	if !gateway.Enabled() {
		log.Warn("Payment gateway is not configured: card checkout is disabled")
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(store, base, log)
	availabilitySvc := availabilityService.NewService(store, cfg.Booking.DefaultCapacity, log)
	reservationsSvc := reservationsService.NewService(store, cfg.Booking.PendingTimeout(), nil, metricsCollector, log)
	admissionSvc := admissionService.NewService(availabilitySvc, reservationsSvc, metricsCollector, log)
	contactSvc := contactService.NewService(store, log)
	newsSvc := newsService.NewService(store, log)
	adminSvc := adminService.NewService(
		cfg.Admin.APIKey,
		catalogSvc,
		availabilitySvc,
		reservationsSvc,
		admissionSvc,
		contactSvc,
		newsSvc,
		dispatcher,
		log,
	)
	if cfg.Admin.APIKey == "" {
		log.Warn("Admin API key is not configured: admin routes will answer 500")
	}

	// Сверяем записи мест с каталогом
	formations, err := catalogSvc.ListFormations(ctx)
	if err != nil {
		log.Fatal("Failed to read catalog: %v", err)
	}
	if err := availabilitySvc.Reconcile(ctx, formations); err != nil {
		log.Fatal("Failed to reconcile availability: %v", err)
	}

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		catalogSvc,
		admissionSvc,
		reservationsSvc,
		gateway,
		dispatcher,
		metricsCollector,
		cfg.Payment.BankIBAN,
		log,
	)
	manageReservationUseCase := manageReservationUC.NewUseCase(
		catalogSvc,
		availabilitySvc,
		admissionSvc,
		reservationsSvc,
		dispatcher,
		log,
	)
	paymentEventsUseCase := paymentEventsUC.NewUseCase(gateway, reservationsSvc, dispatcher, log)

	// Ограничение частоты публичных запросов
	var limiterClient redis.Scripter
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s: %v (rate limiting fails open)", cfg.RateLimit.RedisAddr, err)
		} else {
			log.Info("Rate limiting enabled (redis=%s, capacity=%d)", cfg.RateLimit.RedisAddr, cfg.RateLimit.Capacity)
		}
		cancel()
		limiterClient = redisClient
	}
	limit := middleware.RateLimit(cfg.RateLimit, limiterClient, log)
	adminOnly := middleware.AdminKey(adminSvc, log)

	// Инициализируем handlers
	health := healthHandler.NewHandler()
	listFormations := listFormationsHandler.NewHandler(catalogSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(catalogSvc, reservationsSvc, availabilitySvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	createCheckout := createCheckoutHandler.NewHandler(createReservationUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentEventsUseCase, log)
	manageReservation := manageReservationHandler.NewHandler(manageReservationUseCase, log)
	contact := contactHandler.NewHandler(contactSvc, log)
	news := newsHandler.NewHandler(newsSvc, adminSvc, log)
	adminAvailability := adminAvailabilityHandler.NewHandler(adminSvc, log)
	adminSessions := adminSessionsHandler.NewHandler(adminSvc, log)
	adminReservations := adminReservationsHandler.NewHandler(adminSvc, log)
	adminContact := adminContactHandler.NewHandler(adminSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/formations", listFormations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/nknews", news.List).Methods(http.MethodGet)

	// --- Бронирование ---
	api.Handle("/reservations", limit(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)
	api.Handle("/stripe/create-checkout-session", limit(http.HandlerFunc(createCheckout.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/stripe/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// --- Самостоятельное управление бронированием ---
	api.Handle("/reservations/manage", limit(http.HandlerFunc(manageReservation.Lookup))).Methods(http.MethodPost)
	api.Handle("/reservations/{id}", limit(http.HandlerFunc(manageReservation.ChangeSession))).Methods(http.MethodPatch)
	api.Handle("/reservations/{id}/cancel", limit(http.HandlerFunc(manageReservation.Cancel))).Methods(http.MethodPost)

	api.Handle("/contact", limit(http.HandlerFunc(contact.Handle))).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	api.Handle("/nknews", adminOnly(http.HandlerFunc(news.Create))).Methods(http.MethodPost)
	api.Handle("/nknews/{id}", adminOnly(http.HandlerFunc(news.Update))).Methods(http.MethodPatch)
	api.Handle("/nknews/{id}", adminOnly(http.HandlerFunc(news.Delete))).Methods(http.MethodDelete)

	protected := api.PathPrefix("/admin").Subrouter()
	protected.Use(adminOnly)

	// --- Места ---
	protected.HandleFunc("/availability", adminAvailability.List).Methods(http.MethodGet)
	protected.HandleFunc("/availability/{sessionId}", adminAvailability.Update).Methods(http.MethodPut)

	// --- Сессии ---
	protected.HandleFunc("/sessions", adminSessions.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", adminSessions.Delete).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", adminReservations.List).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", adminReservations.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{id}", adminReservations.Delete).Methods(http.MethodDelete)

	// --- Сообщения ---
	protected.HandleFunc("/contact", adminContact.List).Methods(http.MethodGet)
	protected.HandleFunc("/contact/{id}", adminContact.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/contact/{id}", adminContact.Delete).Methods(http.MethodDelete)

	// CORS и recover оборачивают весь роутер: preflight OPTIONS не совпадает ни с одним маршрутом
	handler := middleware.Recover(log)(middleware.CORS(cfg.Server.ClientURL)(r))

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Дожидаемся доставки уведомлений из очереди
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("Notification queue not drained: %v", err)
	}
	if amqpSink != nil {
		if err := amqpSink.Close(); err != nil {
			log.Warn("Failed to close RabbitMQ connection: %v", err)
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server stopped gracefully")
}
