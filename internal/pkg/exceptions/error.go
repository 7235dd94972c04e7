package exceptions

import (
	"docbook-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

// Kind classifies a failure the way the booking API reports it.
type Kind string

const (
	KindUnauthorized      Kind = "Unauthorized"
	KindNotFound          Kind = "NotFound"
	KindDoctorUnavailable Kind = "DoctorUnavailable"
	KindSlotTaken         Kind = "SlotTaken"
	KindIllegalTransition Kind = "IllegalTransition"
	KindInvalidPayment    Kind = "InvalidPayment"
	KindStorageFault      Kind = "StorageFault"
	KindBadRequest        Kind = "BadRequest"
	KindDeadlineExceeded  Kind = "DeadlineExceeded"
	KindInternal          Kind = "Internal"
)

// IsBusiness reports whether the kind is a business outcome, rendered
// with HTTP 200 and success=false.
func (k Kind) IsBusiness() bool {
	switch k {
	case KindNotFound, KindDoctorUnavailable, KindSlotTaken, KindIllegalTransition, KindInvalidPayment:
		return true
	}
	return false
}

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Kind          Kind     `json:"-"`
	Location      Location `json:"-"`
	cause         error
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err (which may be nil) into a CustomError whose
// location is the caller of the exported builder.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return build(err, kindForStatus(statusCode), statusCode, clientMessage, devMessage, 3)
}

func build(err error, kind Kind, statusCode int, clientMessage, devMessage string, skip int) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Success:       false,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          kind,
		Location:      getLocation(skip),
		cause:         err,
	}
}

func kindForStatus(statusCode int) Kind {
	switch statusCode {
	case constvars.StatusUnauthorized, constvars.StatusForbidden:
		return KindUnauthorized
	case constvars.StatusBadRequest, constvars.StatusTooManyRequests:
		return KindBadRequest
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusServiceUnavailable:
		return KindStorageFault
	case constvars.StatusGatewayTimeout:
		return KindDeadlineExceeded
	}
	return KindInternal
}

// KindOf extracts the Kind of err, treating anything unclassified as Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
