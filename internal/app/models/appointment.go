package models

import "time"

type AppointmentState string

const (
	StateBooked    AppointmentState = "Booked"
	StateCancelled AppointmentState = "Cancelled"
	StateCompleted AppointmentState = "Completed"
	StatePaid      AppointmentState = "Paid"
)

func (s AppointmentState) Valid() bool {
	switch s {
	case StateBooked, StateCancelled, StateCompleted, StatePaid:
		return true
	}
	return false
}

// HoldsSlot reports whether an appointment in this state occupies its slot
// in the doctor's slot index.
func (s AppointmentState) HoldsSlot() bool {
	return s == StateBooked
}

// LifecycleEvent is an input to the appointment state machine.
type LifecycleEvent string

const (
	EventBook     LifecycleEvent = "book"
	EventCancel   LifecycleEvent = "cancel"
	EventComplete LifecycleEvent = "complete"
	EventMarkPaid LifecycleEvent = "markPaid"
)

type Appointment struct {
	ID                 string              `json:"_id" bson:"_id"`
	UserID             string              `json:"userId" bson:"userId"`
	DocID              string              `json:"docId" bson:"docId"`
	UserSnapshot       UserSnapshot        `json:"userData" bson:"userData"`
	DocSnapshot        DoctorSnapshot      `json:"docData" bson:"docData"`
	Amount             float64             `json:"amount" bson:"amount"`
	Day                string              `json:"slotDate" bson:"slotDate"`
	Time               string              `json:"slotTime" bson:"slotTime"`
	BookedAt           time.Time           `json:"bookedAt" bson:"bookedAt"`
	State              AppointmentState    `json:"state" bson:"state"`
	PaymentMethod      PaymentMethod       `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentAttestation *PaymentAttestation `json:"paymentAttestation,omitempty" bson:"paymentAttestation,omitempty"`
	PaidAt             *time.Time          `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	TimeModel          `bson:",inline"`
}

func (a *Appointment) IsPaid() bool {
	return a.State == StatePaid
}

// Clone copies the appointment; snapshots are values so only the
// payment pointers need care.
func (a *Appointment) Clone() *Appointment {
	clone := *a
	if a.PaymentAttestation != nil {
		attestation := *a.PaymentAttestation
		clone.PaymentAttestation = &attestation
	}
	if a.PaidAt != nil {
		paidAt := *a.PaidAt
		clone.PaidAt = &paidAt
	}
	return &clone
}
