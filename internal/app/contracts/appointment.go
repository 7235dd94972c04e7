package contracts

import (
	"context"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/dto/requests"
	"docbook-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	FindByDoctorID(ctx context.Context, docID string) ([]models.Appointment, error)
	// UpdateState stores the appointment's state and payment fields only when
	// the stored state still equals from.
	UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) error
}

// BookingUsecase serialises lifecycle events per doctor so the slot index
// and the appointment records stay consistent.
type BookingUsecase interface {
	Book(ctx context.Context, actor models.Actor, request *requests.BookAppointment) (*responses.Appointment, error)
	Cancel(ctx context.Context, actor models.Actor, appointmentID string) (*responses.Appointment, error)
	Complete(ctx context.Context, actor models.Actor, appointmentID string) (*responses.Appointment, error)
	MarkPaid(ctx context.Context, actor models.Actor, request *requests.MarkPaid) (*responses.Appointment, error)
	ListForPatient(ctx context.Context, actor models.Actor) ([]responses.Appointment, error)
	PaymentStatus(ctx context.Context, actor models.Actor, appointmentID string) (*responses.PaymentStatus, error)
}

type AppointmentEventPublisher interface {
	Publish(ctx context.Context, message *models.AppointmentEventMessage) error
}
