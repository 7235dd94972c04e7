package contracts

import (
	"context"
	"docbook-service/internal/app/models"
)

// SlotIndexService owns the per-doctor slot index.
//
// The plain operations take the doctor's critical section themselves. The
// *Locked variants expect the caller to hold it already and work on the
// doctor document the caller loaded inside that section, updating it in
// place once the write is stored.
type SlotIndexService interface {
	IsTaken(ctx context.Context, docID, day, time string) (bool, error)
	Reserve(ctx context.Context, docID, day, time string) (models.ReserveResult, error)
	Release(ctx context.Context, docID, day, time string) (models.ReleaseResult, error)
	ForDoctor(ctx context.Context, docID string) (models.SlotIndex, error)

	ReserveLocked(ctx context.Context, doctor *models.Doctor, day, time string) (models.ReserveResult, error)
	ReleaseLocked(ctx context.Context, doctor *models.Doctor, day, time string) (models.ReleaseResult, error)
}
