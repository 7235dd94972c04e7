package exceptions

import (
	"context"
	"docbook-service/internal/pkg/constvars"
	"errors"
	"fmt"
)

// Business outcomes. The API answers them with HTTP 200.
var (
	ErrDoctorNotFound = func(err error, docID string) *CustomError {
		return build(err, KindNotFound, constvars.StatusOK, constvars.ErrClientDoctorNotFound, fmt.Sprintf(constvars.ErrDevDoctorNotFound, docID), 2)
	}
	ErrUserNotFound = func(err error, userID string) *CustomError {
		return build(err, KindNotFound, constvars.StatusOK, constvars.ErrClientUserNotFound, fmt.Sprintf(constvars.ErrDevUserNotFound, userID), 2)
	}
	ErrAppointmentNotFound = func(err error, appointmentID string) *CustomError {
		return build(err, KindNotFound, constvars.StatusOK, constvars.ErrClientAppointmentNotFound, fmt.Sprintf(constvars.ErrDevAppointmentNotFound, appointmentID), 2)
	}
	ErrDoctorUnavailable = func(err error, docID string) *CustomError {
		return build(err, KindDoctorUnavailable, constvars.StatusOK, constvars.ErrClientDoctorUnavailable, fmt.Sprintf(constvars.ErrDevDoctorUnavailable, docID), 2)
	}
	ErrSlotTaken = func(err error, docID, day, time string) *CustomError {
		return build(err, KindSlotTaken, constvars.StatusOK, constvars.ErrClientSlotTaken, fmt.Sprintf(constvars.ErrDevSlotTaken, day, time, docID), 2)
	}
	ErrIllegalTransition = func(err error, verb, event, from string) *CustomError {
		return build(err, KindIllegalTransition, constvars.StatusOK, fmt.Sprintf(constvars.ErrClientIllegalTransition, verb, from), fmt.Sprintf(constvars.ErrDevIllegalTransition, event, from), 2)
	}
	ErrInvalidPaymentMethod = func(err error, method string) *CustomError {
		return build(err, KindInvalidPayment, constvars.StatusOK, constvars.ErrClientInvalidPayment, fmt.Sprintf(constvars.ErrDevInvalidPaymentMethod, method), 2)
	}
	ErrInvalidPaymentDetails = func(err error, method string) *CustomError {
		return build(err, KindInvalidPayment, constvars.StatusOK, FormatPaymentValidationError(err), fmt.Sprintf(constvars.ErrDevInvalidPaymentShape, method), 2)
	}
)

// Authorization failures.
var (
	ErrTokenMissing = func(err error) *CustomError {
		return build(err, KindUnauthorized, constvars.StatusUnauthorized, constvars.ErrClientTokenMissing, constvars.ErrDevAuthTokenMissing, 2)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return build(err, KindUnauthorized, constvars.StatusUnauthorized, constvars.ErrClientTokenInvalid, constvars.ErrDevAuthTokenInvalidOrExpired, 2)
	}
	ErrActorRoleNotAllowed = func(err error, role, action string) *CustomError {
		return build(err, KindUnauthorized, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevAuthInvalidRole, role, action), 2)
	}
	ErrActorNotOwner = func(err error, actorID, appointmentID string) *CustomError {
		return build(err, KindUnauthorized, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevAuthNotOwner, actorID, appointmentID), 2)
	}
	ErrMissingActor = func(err error) *CustomError {
		return build(err, KindUnauthorized, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevMissingActor, 2)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return build(err, KindUnauthorized, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAPIKeyInvalid, 2)
	}
)

// Protocol faults.
var (
	ErrCannotParseJSON = func(err error) *CustomError {
		return build(err, KindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON, 2)
	}
	ErrInputValidation = func(err error) *CustomError {
		return build(err, KindBadRequest, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed, 2)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return build(err, KindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName), 2)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return build(err, KindBadRequest, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrClientTooManyRequests, 2)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return build(err, KindDeadlineExceeded, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded, 2)
	}
	// ErrContextDone classifies a context error raised while waiting on a
	// lock or before a persist. Errors that are already classified pass through.
	ErrContextDone = func(err error) error {
		var customErr *CustomError
		if errors.As(err, &customErr) {
			return err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return build(err, KindDeadlineExceeded, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded, 2)
		}
		return build(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess, 2)
	}
)

// Storage faults. The atomic persist (or a read it depends on) failed.
var (
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevDBFailedToFindDocument, 2)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevDBFailedToInsertDocument, 2)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevDBFailedToUpdateDocument, 2)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevDBFailedToIterateDocuments, 2)
	}
	ErrMongoDBTransaction = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevDBTransactionFailed, 2)
	}
	ErrSlotVersionConflict = func(err error, docID string, expectedVersion int64) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, fmt.Sprintf(constvars.ErrDevDBSlotVersionConflict, docID, expectedVersion), 2)
	}
	ErrAppointmentStateConflict = func(err error, appointmentID, state string) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, fmt.Sprintf(constvars.ErrDevDBAppointmentStateConflict, appointmentID, state), 2)
	}
	ErrDuplicateBooking = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevDBDuplicateBooking, 2)
	}
	ErrLockAcquire = func(err error, docID string) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, fmt.Sprintf(constvars.ErrDevLockAcquire, docID), 2)
	}
	ErrRedisGetData = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevRedisGetData, 2)
	}
	ErrRedisSetData = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevRedisSetData, 2)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return build(err, KindStorageFault, constvars.StatusServiceUnavailable, constvars.ErrClientStorageUnavailable, constvars.ErrDevRedisDeleteData, 2)
	}
)

// Internal faults.
var (
	ErrServerProcess = func(err error) *CustomError {
		return build(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess, 2)
	}
	ErrServerPanic = func(err error) *CustomError {
		return build(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerPanic, 2)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return build(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON, 2)
	}
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return build(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName), 2)
	}
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return build(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName), 2)
	}
)
