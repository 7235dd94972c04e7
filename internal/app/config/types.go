package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port            string
		Host            string
		DbName          string
		Username        string
		Password        string
		ReplicaSet      string
		UseTransactions bool
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)

type InternalConfig struct {
	App     App
	JWT     AppJWT
	Lock    AppLock
	Payment AppPayment
	Minio   AppMinio
	Queue   AppQueue
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	EndpointPrefix             string
	CorsAllowedOrigins         string
	MaxRequests                int
	MaxTimeRequestsPerSeconds  int
	BookingRequestsPerMinute   int
	BookingBlockInMinutes      int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	PersistTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
	EventsEnabled              bool
	ReceiptsEnabled            bool
	MetricsEnabled             bool
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppLock struct {
	Backend      string
	Shards       int
	TTLInSeconds int
	// RetryIntervalInMilliseconds is the polling interval of the redis lock.
	RetryIntervalInMilliseconds int
}

type AppPayment struct {
	ServiceAPIKey  string
	FingerprintKey string
}

type AppMinio struct {
	ReceiptBucketName string
}

type AppQueue struct {
	AppointmentEventsQueue string
}
