package locker

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const unlockTimeout = 3 * time.Second

// RedisDoctorLocker spans the per-doctor critical section across service
// instances. The lease is bounded by ttl; slot index writes are version
// checked, so a holder whose lease expired cannot overwrite a newer index.
type RedisDoctorLocker struct {
	locker        contracts.LockerService
	ttl           time.Duration
	retryInterval time.Duration
	Log           *zap.Logger
}

func NewRedisDoctorLocker(locker contracts.LockerService, ttl, retryInterval time.Duration, logger *zap.Logger) *RedisDoctorLocker {
	if retryInterval <= 0 {
		retryInterval = 25 * time.Millisecond
	}
	return &RedisDoctorLocker{
		locker:        locker,
		ttl:           ttl,
		retryInterval: retryInterval,
		Log:           logger,
	}
}

func (l *RedisDoctorLocker) Lock(ctx context.Context, docID string) (func(), error) {
	key := fmt.Sprintf(constvars.DoctorLockKeyFormat, docID)

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		acquired, lockValue, err := l.locker.TryLock(ctx, key, l.ttl)
		if err != nil {
			return nil, exceptions.ErrLockAcquire(err, docID)
		}
		if acquired {
			return l.unlockFunc(ctx, key, lockValue), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisDoctorLocker) unlockFunc(ctx context.Context, key, lockValue string) func() {
	return func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
		defer cancel()

		err := l.locker.Unlock(unlockCtx, key, lockValue)
		if err != nil {
			l.Log.Error("RedisDoctorLocker.Unlock failed, lock will expire on its own",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Duration(constvars.LoggingLockExpirationKey, l.ttl),
				zap.Error(err),
			)
		}
	}
}
