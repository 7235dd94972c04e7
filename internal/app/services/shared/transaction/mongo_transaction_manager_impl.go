package transaction

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type mongoTransactionManager struct {
	client  *mongo.Client
	enabled bool
	Log     *zap.Logger
}

// NewMongoTransactionManager runs units of work in a multi-document
// transaction when enabled. Otherwise fn runs directly and callers are
// responsible for compensating partial writes.
func NewMongoTransactionManager(client *mongo.Client, enabled bool, logger *zap.Logger) contracts.TransactionManager {
	return &mongoTransactionManager{
		client:  client,
		enabled: enabled && client != nil,
		Log:     logger,
	}
}

func (m *mongoTransactionManager) SupportsTransactions() bool {
	return m.enabled
}

// WithTransaction may invoke fn more than once when the server reports a
// transient transaction error, so fn must not depend on state it mutated in
// an earlier attempt.
func (m *mongoTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.enabled {
		return fn(ctx)
	}

	requestID := utils.GetRequestID(ctx)
	session, err := m.client.StartSession()
	if err != nil {
		m.Log.Error("mongoTransactionManager.WithTransaction error starting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(context.WithoutCancel(ctx))

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessionCtx)
	})
	if err != nil {
		m.Log.Warn("mongoTransactionManager.WithTransaction aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return err
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}

type passthroughTransactionManager struct{}

// NewPassthroughTransactionManager never opens a transaction.
func NewPassthroughTransactionManager() contracts.TransactionManager {
	return passthroughTransactionManager{}
}

func (passthroughTransactionManager) SupportsTransactions() bool {
	return false
}

func (passthroughTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
