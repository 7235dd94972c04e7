package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"numeric":     "must be a number",
	"len":         "must be %s characters long",
	"oneof":       "must be one of [%s]",
	"card_expiry": "must be in MM/YY format",
	"day_key":     "must be a valid D_M_YYYY date",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientStorageUnavailable            = "booking storage is temporarily unavailable, please retry"
	ErrClientNotAuthorized                 = "Unauthorized action"
	ErrClientTokenMissing                  = "Access Denied. No token provided."
	ErrClientTokenInvalid                  = "Invalid Token"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientUserNotFound                  = "User not found"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientDoctorUnavailable             = "Doctor not available"
	ErrClientSlotTaken                     = "Slot already booked"
	ErrClientIllegalTransition             = "Appointment cannot be %s from state %s"
	ErrClientInvalidPayment                = "Invalid payment details"
	ErrClientTooManyRequests               = "Too many requests, you are blocked temporarily."
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded      = "deadline exceeded"
	ErrDevServerProcess               = "server failed to process request"
	ErrDevServerPanic                 = "recovered from panic"
	ErrDevURLParamValidationFailed    = "url param %s is invalid"
	ErrDevAuthTokenMissing            = "token missing"
	ErrDevAuthTokenInvalidOrExpired   = "token invalid or expired"
	ErrDevAuthSigningMethod           = "unexpected signing method"
	ErrDevAuthInvalidRole             = "role %s is not allowed to %s"
	ErrDevAuthNotOwner                = "actor %s does not own appointment %s"
	ErrDevAPIKeyInvalid               = "invalid api key"
	ErrDevMissingActor                = "actor not found in context"
	ErrDevDoctorNotFound              = "doctor %s not found"
	ErrDevUserNotFound                = "user %s not found"
	ErrDevAppointmentNotFound         = "appointment %s not found"
	ErrDevDoctorUnavailable           = "doctor %s availability flag is false"
	ErrDevSlotTaken                   = "slot %s %s already reserved for doctor %s"
	ErrDevIllegalTransition           = "event %s rejected from state %s"
	ErrDevInvalidPaymentMethod        = "unsupported payment method %s"
	ErrDevInvalidPaymentShape         = "payment details rejected for method %s"
	ErrDevDBFailedToFindDocument      = "failed when do find document on database"
	ErrDevDBFailedToInsertDocument    = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument    = "failed to update document into database"
	ErrDevDBFailedToIterateDocuments  = "failed to iterate documents"
	ErrDevDBTransactionFailed         = "multi-document transaction failed"
	ErrDevDBSlotVersionConflict       = "slot index of doctor %s changed concurrently (expected version %d)"
	ErrDevDBAppointmentStateConflict  = "appointment %s is no longer in state %s"
	ErrDevDBDuplicateBooking          = "duplicate booked appointment for the same slot"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisSetData                = "failed to set data into redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevRedisUnlock                 = "failed to release redis lock"
	ErrDevLockAcquire                 = "failed to acquire lock for doctor %s"
	ErrDevRabbitMQPublishMessage      = "failed to publish message to queue %s"
	ErrDevMinioFailedToCreateObject   = "failed to create object in bucket %s"
)
