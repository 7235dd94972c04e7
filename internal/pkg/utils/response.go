package utils

import (
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/dto/responses"
	"docbook-service/internal/pkg/exceptions"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildErrorResponse renders err as {success:false, message}. Business
// outcomes keep HTTP 200; errors that are not a CustomError become Internal.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication
	kind := exceptions.KindInternal

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		kind = customErr.Kind
		fields := []zap.Field{
			zap.String(constvars.LoggingErrorTypeKey, string(kind)),
			zap.Any("location", map[string]interface{}{
				"file":          customErr.Location.File,
				"line":          customErr.Location.Line,
				"function_name": customErr.Location.FunctionName,
			}),
		}
		if kind.IsBusiness() {
			log.Info(customErr.DevMessage, fields...)
		} else {
			log.Error(customErr.DevMessage, fields...)
		}
	} else if err != nil {
		log.Error(err.Error(), zap.String(constvars.LoggingErrorTypeKey, string(kind)))
	}

	response := responses.ErrorResponseDTO{
		Success: false,
		Message: clientMessage,
	}
	appEnvironment := GetEnvString("APP_ENV", constvars.AppEnvDevelopment)
	if customErr != nil && appEnvironment != constvars.AppEnvProduction {
		response.Kind = string(customErr.Kind)
		response.DevMessage = customErr.DevMessage
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
