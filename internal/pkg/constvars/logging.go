package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingRequestKey           = "request"
	LoggingResponseKey          = "response"
	LoggingResponseLengthKey    = "response_length"
	LoggingErrorTypeKey         = "error_type"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingStatusCodeKey        = "status_code"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingActorIDKey           = "actor_id"
	LoggingActorRoleKey         = "actor_role"
	LoggingDoctorIDKey          = "doctor_id"
	LoggingUserIDKey            = "user_id"
	LoggingAppointmentIDKey     = "appointment_id"
	LoggingAppointmentCountKey  = "appointment_count"
	LoggingSlotDateKey          = "slot_date"
	LoggingSlotTimeKey          = "slot_time"
	LoggingStateKey             = "state"
	LoggingEventKey             = "event"
	LoggingPaymentMethodKey     = "payment_method"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockWaitKey          = "lock_wait"
	LoggingQueueNameKey         = "queue_name"
	LoggingBucketNameKey        = "bucket_name"
	LoggingObjectNameKey        = "object_name"
	LoggingCompensationKey      = "compensation"
	LoggingSlotVersionKey       = "slot_version"
	LoggingTransactionsEnabled  = "transactions_enabled"
)
