package middlewares

import (
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	TokenVerifier  contracts.TokenVerifier
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, tokenVerifier contracts.TokenVerifier, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		TokenVerifier:  tokenVerifier,
		InternalConfig: internalConfig,
	}
}
