package main

import (
	"context"
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/delivery/http/controllers"
	"docbook-service/internal/app/delivery/http/middlewares"
	"docbook-service/internal/app/delivery/http/routers"
	"docbook-service/internal/app/drivers/database"
	"docbook-service/internal/app/drivers/logger"
	"docbook-service/internal/app/drivers/messaging"
	"docbook-service/internal/app/drivers/storage"
	"docbook-service/internal/app/services/core/appointments"
	"docbook-service/internal/app/services/core/booking"
	"docbook-service/internal/app/services/core/doctors"
	"docbook-service/internal/app/services/core/payments"
	"docbook-service/internal/app/services/core/slots"
	"docbook-service/internal/app/services/core/users"
	"docbook-service/internal/app/services/shared/eventqueue"
	"docbook-service/internal/app/services/shared/jwtmanager"
	"docbook-service/internal/app/services/shared/locker"
	"docbook-service/internal/app/services/shared/metrics"
	"docbook-service/internal/app/services/shared/redis"
	receiptStorage "docbook-service/internal/app/services/shared/storage"
	"docbook-service/internal/app/services/shared/transaction"
	"docbook-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, the environment wins either way.
	_ = godotenv.Load()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		MongoDB:        mongoClient.Database(driverConfig.MongoDB.DbName),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.Lock.Backend == constvars.LockBackendRedis {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if internalConfig.App.EventsEnabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	err := bootstrapingTheApp(&bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release drivers", zap.Error(err))
	}
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Repositories
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB)
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)

	// Per-doctor critical section
	var doctorLocker contracts.DoctorLocker
	switch internalConfig.Lock.Backend {
	case constvars.LockBackendRedis:
		lockService := locker.NewLockService(redis.NewRedisRepository(bootstrap.Redis), log)
		doctorLocker = locker.NewRedisDoctorLocker(
			lockService,
			time.Duration(internalConfig.Lock.TTLInSeconds)*time.Second,
			time.Duration(internalConfig.Lock.RetryIntervalInMilliseconds)*time.Millisecond,
			log,
		)
	case constvars.LockBackendMemory, "":
		doctorLocker = locker.NewMemoryDoctorLocker(internalConfig.Lock.Shards)
	default:
		return fmt.Errorf("unknown lock backend %q", internalConfig.Lock.Backend)
	}

	transactionManager := transaction.NewMongoTransactionManager(
		bootstrap.MongoClient,
		bootstrap.DriverConfig.MongoDB.UseTransactions,
		log,
	)

	// Side effects
	events := eventqueue.NewNoopPublisher()
	if bootstrap.RabbitMQ != nil {
		publisher, err := eventqueue.NewPublisher(bootstrap.RabbitMQ, internalConfig.Queue.AppointmentEventsQueue, log)
		if err != nil {
			return err
		}
		events = publisher
	}

	receipts := receiptStorage.NewNoopReceiptStorage()
	if internalConfig.App.ReceiptsEnabled {
		minioClient := storage.NewMinio(bootstrap.DriverConfig, internalConfig.Minio.ReceiptBucketName)
		receipts = receiptStorage.NewMinioReceiptStorage(minioClient, internalConfig.Minio.ReceiptBucketName)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(registry)
	var metricsHandler http.Handler
	if internalConfig.App.MetricsEnabled {
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	// Auth
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig.JWT.Secret, time.Duration(internalConfig.JWT.ExpTimeInHour)*time.Hour)
	if err != nil {
		return err
	}
	middlewares := middlewares.NewMiddlewares(log, jwtManager, internalConfig)

	// Booking core
	slotIndexService := slots.NewSlotIndexService(doctorRepository, doctorLocker, log)
	paymentAttestationService := payments.NewPaymentAttestationService(internalConfig.Payment.FingerprintKey)
	bookingUsecase := booking.NewBookingUsecase(
		appointmentRepository,
		doctorRepository,
		userRepository,
		slotIndexService,
		doctorLocker,
		transactionManager,
		paymentAttestationService,
		events,
		receipts,
		bookingMetrics,
		internalConfig,
		log,
	)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, appointmentRepository, slotIndexService, log)

	// Controllers
	appointmentController := controllers.NewAppointmentController(log, bookingUsecase, internalConfig)
	doctorController := controllers.NewDoctorController(log, doctorUsecase, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		appointmentController,
		doctorController,
		metricsHandler,
	)
	return nil
}
