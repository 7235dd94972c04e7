package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}

// DoctorLocker provides the per-doctor critical section. Lock blocks until
// the section is entered or ctx is done; the returned func leaves it.
type DoctorLocker interface {
	Lock(ctx context.Context, docID string) (func(), error)
}
