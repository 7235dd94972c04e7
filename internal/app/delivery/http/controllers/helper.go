package controllers

import (
	"context"
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout  = 10 * time.Second
	defaultBodyLimitInByte = 1 << 20
)

func requestContext(r *http.Request, internalConfig *config.InternalConfig) (context.Context, context.CancelFunc) {
	timeout := defaultRequestTimeout
	if internalConfig != nil && internalConfig.App.RequestTimeoutInSeconds > 0 {
		timeout = time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func requestActor(log *zap.Logger, w http.ResponseWriter, r *http.Request, caller string) (models.Actor, bool) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		log.Error(caller+" actor not found in context",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingActor(nil))
		return models.Actor{}, false
	}
	return actor, true
}

// decodeAndValidate reads a JSON body of bounded size into request and runs
// struct validation on it.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, internalConfig *config.InternalConfig, caller string, request interface{}) bool {
	requestID := utils.GetRequestID(r.Context())

	limit := int64(defaultBodyLimitInByte)
	if internalConfig != nil && internalConfig.App.RequestBodyLimitInMegabyte > 0 {
		limit = int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		log.Error(caller+" failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		log.Error(caller+" validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

func renderUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) && errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
