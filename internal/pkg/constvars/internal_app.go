package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ACTOR_KEY                ContextKey = "actor"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"
)

const (
	// DoctorLockKeyFormat is the redis key holding a doctor's critical section.
	DoctorLockKeyFormat = "docbook:lock:doctor:%s"
	ReceiptObjectFormat = "receipts/%s.json"
)

const (
	DashboardLatestAppointmentsLimit = 5
)

const (
	PaymentServiceActorID = "payment-service"
)
