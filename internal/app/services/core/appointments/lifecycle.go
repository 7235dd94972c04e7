package appointments

import (
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/exceptions"
)

// SlotEffect is what a transition does to the doctor's slot index.
type SlotEffect int

const (
	SlotUnchanged SlotEffect = iota
	SlotReserve
	SlotRelease
)

// Transition is one edge of the appointment state machine.
type Transition struct {
	From   models.AppointmentState
	Event  models.LifecycleEvent
	To     models.AppointmentState
	Effect SlotEffect
}

// StateNew stands for an appointment that does not exist yet.
const StateNew models.AppointmentState = ""

type transitionKey struct {
	from  models.AppointmentState
	event models.LifecycleEvent
}

var transitions = map[transitionKey]Transition{
	{StateNew, models.EventBook}:                  {StateNew, models.EventBook, models.StateBooked, SlotReserve},
	{models.StateBooked, models.EventCancel}:      {models.StateBooked, models.EventCancel, models.StateCancelled, SlotRelease},
	{models.StateBooked, models.EventComplete}:    {models.StateBooked, models.EventComplete, models.StateCompleted, SlotRelease},
	{models.StateBooked, models.EventMarkPaid}:    {models.StateBooked, models.EventMarkPaid, models.StatePaid, SlotRelease},
	{models.StateCompleted, models.EventMarkPaid}: {models.StateCompleted, models.EventMarkPaid, models.StatePaid, SlotUnchanged},
}

var eventVerbs = map[models.LifecycleEvent]string{
	models.EventBook:     "booked",
	models.EventCancel:   "cancelled",
	models.EventComplete: "completed",
	models.EventMarkPaid: "paid",
}

// Next looks up the edge leaving from on event. Every pair not in the table
// is an IllegalTransition.
func Next(from models.AppointmentState, event models.LifecycleEvent) (Transition, error) {
	transition, ok := transitions[transitionKey{from, event}]
	if !ok {
		fromLabel := string(from)
		if from == StateNew {
			fromLabel = "new"
		}
		return Transition{}, exceptions.ErrIllegalTransition(nil, eventVerbs[event], string(event), fromLabel)
	}
	return transition, nil
}

// Authorize checks role and ownership for event on appointment. For
// EventBook the appointment is the one about to be created.
func Authorize(actor models.Actor, event models.LifecycleEvent, appointment *models.Appointment) error {
	if actor.ID == "" {
		return exceptions.ErrMissingActor(nil)
	}

	patientOwner := actor.Is(models.RolePatient) && appointment.UserID == actor.ID
	doctorOwner := actor.Is(models.RoleDoctor) && appointment.DocID == actor.ID

	switch event {
	case models.EventBook:
		if !actor.Is(models.RolePatient) {
			return exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), string(event))
		}
		if appointment.UserID != actor.ID {
			return exceptions.ErrActorNotOwner(nil, actor.ID, appointment.ID)
		}
		return nil
	case models.EventCancel:
		if !actor.Is(models.RolePatient) && !actor.Is(models.RoleDoctor) {
			return exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), string(event))
		}
		if !patientOwner && !doctorOwner {
			return exceptions.ErrActorNotOwner(nil, actor.ID, appointment.ID)
		}
		return nil
	case models.EventComplete:
		if !actor.Is(models.RoleDoctor) {
			return exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), string(event))
		}
		if !doctorOwner {
			return exceptions.ErrActorNotOwner(nil, actor.ID, appointment.ID)
		}
		return nil
	case models.EventMarkPaid:
		if actor.Is(models.RolePayment) {
			return nil
		}
		if !actor.Is(models.RoleDoctor) {
			return exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), string(event))
		}
		if !doctorOwner {
			return exceptions.ErrActorNotOwner(nil, actor.ID, appointment.ID)
		}
		return nil
	}
	return exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), string(event))
}

// AuthorizeView lets either party of an appointment, or the payment
// subsystem, read it.
func AuthorizeView(actor models.Actor, appointment *models.Appointment) error {
	switch {
	case actor.Is(models.RolePayment):
		return nil
	case actor.Is(models.RolePatient) && appointment.UserID == actor.ID:
		return nil
	case actor.Is(models.RoleDoctor) && appointment.DocID == actor.ID:
		return nil
	}
	return exceptions.ErrActorNotOwner(nil, actor.ID, appointment.ID)
}

// Apply moves appointment along transition. The caller has already
// authorised the actor and checked that appointment.State == transition.From.
func Apply(appointment *models.Appointment, transition Transition) {
	appointment.State = transition.To
	appointment.SetUpdatedAt()
}
