package contracts

import (
	"context"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/dto/responses"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, docID string) (*models.Doctor, error)
	// UpdateSlotIndex replaces the slot index only when the stored version
	// still equals expectedVersion, and returns the new version.
	UpdateSlotIndex(ctx context.Context, docID string, expectedVersion int64, index models.SlotIndex) (int64, error)
}

type DoctorUsecase interface {
	ListAppointments(ctx context.Context, actor models.Actor) ([]responses.Appointment, error)
	Dashboard(ctx context.Context, actor models.Actor) (*responses.DoctorDashboard, error)
	Slots(ctx context.Context, docID string) (*responses.DoctorSlots, error)
}
