package responses

import (
	"docbook-service/internal/app/models"
	"time"
)

type Appointment struct {
	ID                 string                     `json:"_id"`
	UserID             string                     `json:"userId"`
	DocID              string                     `json:"docId"`
	UserData           models.UserSnapshot        `json:"userData"`
	DocData            models.DoctorSnapshot      `json:"docData"`
	Amount             float64                    `json:"amount"`
	SlotDate           string                     `json:"slotDate"`
	SlotTime           string                     `json:"slotTime"`
	BookedAt           time.Time                  `json:"bookedAt"`
	State              models.AppointmentState    `json:"state"`
	Cancelled          bool                       `json:"cancelled"`
	Payment            bool                       `json:"payment"`
	IsCompleted        bool                       `json:"isCompleted"`
	PaymentMethod      models.PaymentMethod       `json:"paymentMethod,omitempty"`
	PaymentAttestation *models.PaymentAttestation `json:"paymentAttestation,omitempty"`
	PaidAt             *time.Time                 `json:"paidAt,omitempty"`
}

type PaymentStatus struct {
	Paid bool `json:"paid"`
}

// NewAppointment renders an appointment with the boolean flags older
// clients read in place of the state.
func NewAppointment(appointment *models.Appointment) Appointment {
	return Appointment{
		ID:                 appointment.ID,
		UserID:             appointment.UserID,
		DocID:              appointment.DocID,
		UserData:           appointment.UserSnapshot,
		DocData:            appointment.DocSnapshot,
		Amount:             appointment.Amount,
		SlotDate:           appointment.Day,
		SlotTime:           appointment.Time,
		BookedAt:           appointment.BookedAt,
		State:              appointment.State,
		Cancelled:          appointment.State == models.StateCancelled,
		Payment:            appointment.State == models.StatePaid,
		IsCompleted:        appointment.State == models.StateCompleted || appointment.State == models.StatePaid,
		PaymentMethod:      appointment.PaymentMethod,
		PaymentAttestation: appointment.PaymentAttestation,
		PaidAt:             appointment.PaidAt,
	}
}

func NewAppointments(appointments []models.Appointment) []Appointment {
	result := make([]Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, NewAppointment(&appointments[i]))
	}
	return result
}
