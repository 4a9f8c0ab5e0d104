package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/heavyrent/rental-service/internal/api/handlers/create_booking"
	createEquipmentHandler "github.com/heavyrent/rental-service/internal/api/handlers/create_equipment"
	createPaymentOrderHandler "github.com/heavyrent/rental-service/internal/api/handlers/create_payment_order"
	createProfileHandler "github.com/heavyrent/rental-service/internal/api/handlers/create_profile"
	createQuoteHandler "github.com/heavyrent/rental-service/internal/api/handlers/create_quote"
	getBookingHandler "github.com/heavyrent/rental-service/internal/api/handlers/get_booking"
	getEquipmentHandler "github.com/heavyrent/rental-service/internal/api/handlers/get_equipment"
	getAvailabilityHandler "github.com/heavyrent/rental-service/internal/api/handlers/get_equipment_availability"
	getMyProfileHandler "github.com/heavyrent/rental-service/internal/api/handlers/get_my_profile"
	listBookingsHandler "github.com/heavyrent/rental-service/internal/api/handlers/list_bookings"
	listEquipmentHandler "github.com/heavyrent/rental-service/internal/api/handlers/list_equipment"
	listNotificationsHandler "github.com/heavyrent/rental-service/internal/api/handlers/list_notifications"
	markNotificationReadHandler "github.com/heavyrent/rental-service/internal/api/handlers/mark_notification_read"
	updateBookingStatusHandler "github.com/heavyrent/rental-service/internal/api/handlers/update_booking_status"
	updateEquipmentStatusHandler "github.com/heavyrent/rental-service/internal/api/handlers/update_equipment_status"
	verifyPaymentHandler "github.com/heavyrent/rental-service/internal/api/handlers/verify_payment"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/auth"
	"github.com/heavyrent/rental-service/internal/config"
	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	equipmentRepo "github.com/heavyrent/rental-service/internal/infra/storage/equipment"
	notificationRepo "github.com/heavyrent/rental-service/internal/infra/storage/notification"
	paymentRepo "github.com/heavyrent/rental-service/internal/infra/storage/payment"
	profileRepo "github.com/heavyrent/rental-service/internal/infra/storage/profile"
	quoteRepo "github.com/heavyrent/rental-service/internal/infra/storage/quote"
	"github.com/heavyrent/rental-service/internal/integrations/mailer"
	"github.com/heavyrent/rental-service/internal/integrations/razorpay"
	"github.com/heavyrent/rental-service/internal/jobs"
	bookingsService "github.com/heavyrent/rental-service/internal/service/bookings"
	equipmentService "github.com/heavyrent/rental-service/internal/service/equipment"
	notificationsService "github.com/heavyrent/rental-service/internal/service/notifications"
	profilesService "github.com/heavyrent/rental-service/internal/service/profiles"
	createBookingUC "github.com/heavyrent/rental-service/internal/usecase/create_booking"
	createPaymentOrderUC "github.com/heavyrent/rental-service/internal/usecase/create_payment_order"
	createQuoteUC "github.com/heavyrent/rental-service/internal/usecase/create_quote"
	getAvailabilityUC "github.com/heavyrent/rental-service/internal/usecase/get_equipment_availability"
	listEquipmentUC "github.com/heavyrent/rental-service/internal/usecase/list_equipment"
	updateBookingStatusUC "github.com/heavyrent/rental-service/internal/usecase/update_booking_status"
	verifyPaymentUC "github.com/heavyrent/rental-service/internal/usecase/verify_payment"
	"github.com/heavyrent/rental-service/migrations"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/logger"
	"github.com/heavyrent/rental-service/pkg/metrics"
	"github.com/heavyrent/rental-service/pkg/mq"
	"github.com/heavyrent/rental-service/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	// .env is optional; RENTAL_* variables override config.toml
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Failed to read .env: %v\n", err)
		os.Exit(1)
	}

	configPath := os.Getenv("RENTAL_CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting rental-service...")
	log.Info("Configuration loaded from %s", configPath)

	// Metrics. A nil collector disables recording everywhere it is passed.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
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

	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := migrations.Migrate(migrateCtx, db, log)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Domain settings
	phoneFormat, err := domain.PhoneFormatFor(cfg.Pricing.PhoneLocale)
	if err != nil {
		log.Fatal("Unsupported phone locale %q: %v", cfg.Pricing.PhoneLocale, err)
	}
	pricing := domain.Pricing{
		TaxRate:     cfg.Pricing.TaxRate,
		AdvanceRate: cfg.Pricing.AdvanceRate,
	}

	// Repositories
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)
	quoteRepository := quoteRepo.NewRepository(wrappedDB)

	var equipmentRepository equipmentRepo.Store = equipmentRepo.NewRepository(wrappedDB)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// the cached repository falls back to postgres on every redis error
			log.Warn("Redis unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		equipmentRepository = equipmentRepo.NewCachedRepository(
			equipmentRepository,
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			log,
		)
		log.Info("Equipment cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Integrations
	gateway := razorpay.NewClient(
		cfg.Razorpay.BaseURL,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		time.Duration(cfg.Razorpay.Timeout)*time.Second,
		log,
	)
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		log.Warn("Razorpay credentials are not set, payment endpoints will answer configuration_error")
	}

	var notifyOpts []notificationsService.Option
	if cfg.SendGrid.Enabled {
		sender := mailer.NewSendGrid(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		notifyOpts = append(notifyOpts, notificationsService.WithEmail(sender, cfg.SendGrid.AdminEmail))
		log.Info("Email notifications enabled (from=%s)", cfg.SendGrid.FromEmail)
	}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.Metrics.ServiceName)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		notifyOpts = append(notifyOpts, notificationsService.WithEvents(publisher))
		log.Info("Notification events enabled (exchange=%s)", cfg.MQ.Exchange)
	}

	// Services
	profileSvc := profilesService.NewService(profileRepository, phoneFormat, log)
	equipmentSvc := equipmentService.NewService(equipmentRepository, profileSvc, log)
	bookingSvc := bookingsService.NewService(bookingRepository, paymentRepository, profileSvc, log)
	notificationSvc := notificationsService.NewService(notificationRepository, profileRepository, metricsCollector, log, notifyOpts...)

	// Use cases
	listEquipmentUseCase := listEquipmentUC.NewUseCase(equipmentRepository, log)
	availabilityUseCase := getAvailabilityUC.NewUseCase(bookingRepository, equipmentRepository, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		profileSvc,
		notificationSvc,
		txMgr,
		pricing,
		phoneFormat,
		metricsCollector,
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		profileSvc,
		notificationSvc,
		txMgr,
		log,
	)

	createPaymentOrderUseCase := createPaymentOrderUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		paymentRepository,
		profileSvc,
		gateway,
		cfg.Pricing.Currency,
		cfg.Pricing.MaxPaymentAmount,
		metricsCollector,
		log,
	)

	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		equipmentRepository,
		profileSvc,
		gateway,
		notificationSvc,
		txMgr,
		metricsCollector,
		log,
	)

	createQuoteUseCase := createQuoteUC.NewUseCase(quoteRepository, profileSvc, notificationSvc, phoneFormat, log)

	// Handlers
	listEquipment := listEquipmentHandler.NewHandler(listEquipmentUseCase, log)
	getEquipment := getEquipmentHandler.NewHandler(equipmentSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilityUseCase, log)
	createEquipment := createEquipmentHandler.NewHandler(equipmentSvc, log)
	updateEquipmentStatus := updateEquipmentStatusHandler.NewHandler(equipmentSvc, log)
	createProfile := createProfileHandler.NewHandler(profileSvc, log)
	getMyProfile := getMyProfileHandler.NewHandler(profileSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	createPaymentOrder := createPaymentOrderHandler.NewHandler(createPaymentOrderUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	createQuote := createQuoteHandler.NewHandler(createQuoteUseCase, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationSvc, profileSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, profileSvc, log)

	// Router
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/equipment", listEquipment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentId}", getEquipment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// signed in or anonymous
	optional := api.PathPrefix("").Subrouter()
	optional.Use(middleware.OptionalAuth(verifier, log))
	optional.HandleFunc("/quotes", createQuote.Handle).Methods(http.MethodPost)

	// bearer token required
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, log))

	protected.HandleFunc("/equipment", createEquipment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/equipment/{equipmentId}/status", updateEquipmentStatus.Handle).Methods(http.MethodPatch)

	protected.HandleFunc("/profiles", createProfile.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/profiles/me", getMyProfile.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	payments := protected.PathPrefix("/payments").Subrouter()
	if cfg.RateLimit.Enabled {
		payments.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log).Middleware)
		log.Info("Payment rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	payments.HandleFunc("/orders", createPaymentOrder.Handle).Methods(http.MethodPost)
	payments.HandleFunc("/verify", verifyPayment.Handle).Methods(http.MethodPost)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Scheduler.Enabled {
		runner := jobs.NewRunner(
			bookingRepository,
			paymentRepository,
			equipmentRepository,
			notificationSvc,
			time.Duration(cfg.Scheduler.ReminderWindowHours)*time.Hour,
			metricsCollector,
			log,
		)
		specs := jobs.Specs{
			PaymentReminder:     cfg.Scheduler.PaymentReminderSpec,
			RentalStartReminder: cfg.Scheduler.RentalStartReminderSpec,
		}
		scheduler, err = jobs.NewScheduler(runner, specs, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		scheduler.Start()
		log.Info("Scheduler started with %d jobs", scheduler.Entries())
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins)(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if scheduler != nil {
		scheduler.Stop()
		log.Info("Scheduler stopped")
	}

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
