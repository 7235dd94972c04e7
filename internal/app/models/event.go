package models

import "time"

const (
	EventTypeAppointmentBooked    = "appointment.booked"
	EventTypeAppointmentCancelled = "appointment.cancelled"
	EventTypeAppointmentCompleted = "appointment.completed"
	EventTypeAppointmentPaid      = "appointment.paid"
)

// AppointmentEventMessage is published after a lifecycle transition commits.
type AppointmentEventMessage struct {
	Type          string           `json:"type"`
	AppointmentID string           `json:"appointmentId"`
	UserID        string           `json:"userId"`
	DocID         string           `json:"docId"`
	SlotDate      string           `json:"slotDate"`
	SlotTime      string           `json:"slotTime"`
	State         AppointmentState `json:"state"`
	Amount        float64          `json:"amount"`
	ActorID       string           `json:"actorId"`
	ActorRole     Role             `json:"actorRole"`
	RequestID     string           `json:"requestId,omitempty"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

func EventTypeFor(event LifecycleEvent) string {
	switch event {
	case EventBook:
		return EventTypeAppointmentBooked
	case EventCancel:
		return EventTypeAppointmentCancelled
	case EventComplete:
		return EventTypeAppointmentCompleted
	case EventMarkPaid:
		return EventTypeAppointmentPaid
	}
	return string(event)
}

func NewAppointmentEventMessage(event LifecycleEvent, appointment *Appointment, actor Actor, requestID string) *AppointmentEventMessage {
	return &AppointmentEventMessage{
		Type:          EventTypeFor(event),
		AppointmentID: appointment.ID,
		UserID:        appointment.UserID,
		DocID:         appointment.DocID,
		SlotDate:      appointment.Day,
		SlotTime:      appointment.Time,
		State:         appointment.State,
		Amount:        appointment.Amount,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		RequestID:     requestID,
		OccurredAt:    time.Now(),
	}
}
