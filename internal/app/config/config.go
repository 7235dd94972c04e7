package config

import (
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:            utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:            utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:          utils.GetEnvString("MONGODB_DB_NAME", "docbook"),
			Username:        utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:        utils.GetEnvString("MONGODB_PASSWORD", ""),
			ReplicaSet:      utils.GetEnvString("MONGODB_REPLICA_SET", ""),
			UseTransactions: utils.GetEnvBool("MONGODB_USE_TRANSACTIONS", false),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			CorsAllowedOrigins:         utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			BookingRequestsPerMinute:   utils.GetEnvInt("APP_BOOKING_REQUESTS_PER_MINUTE", 30),
			BookingBlockInMinutes:      utils.GetEnvInt("APP_BOOKING_BLOCK_IN_MINUTES", 5),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			PersistTimeoutInSeconds:    utils.GetEnvInt("APP_PERSIST_TIMEOUT_IN_SECONDS", 5),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			EventsEnabled:              utils.GetEnvBool("APP_EVENTS_ENABLED", false),
			ReceiptsEnabled:            utils.GetEnvBool("APP_RECEIPTS_ENABLED", false),
			MetricsEnabled:             utils.GetEnvBool("APP_METRICS_ENABLED", true),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Lock: AppLock{
			Backend:                     utils.GetEnvString("LOCK_BACKEND", constvars.LockBackendMemory),
			Shards:                      utils.GetEnvInt("LOCK_SHARDS", 64),
			TTLInSeconds:                utils.GetEnvInt("LOCK_TTL_IN_SECONDS", 15),
			RetryIntervalInMilliseconds: utils.GetEnvInt("LOCK_RETRY_INTERVAL_IN_MILLISECONDS", 25),
		},
		Payment: AppPayment{
			ServiceAPIKey:  utils.GetEnvString("PAYMENT_SERVICE_API_KEY", ""),
			FingerprintKey: utils.GetEnvString("PAYMENT_FINGERPRINT_KEY", ""),
		},
		Minio: AppMinio{
			ReceiptBucketName: utils.GetEnvString("MINIO_RECEIPT_BUCKET_NAME", "payment-receipts"),
		},
		Queue: AppQueue{
			AppointmentEventsQueue: utils.GetEnvString("RABBITMQ_APPOINTMENT_EVENTS_QUEUE", "appointment-events"),
		},
	}
}
