package requests

type BookAppointment struct {
	DocID    string `json:"docId" validate:"required"`
	SlotDate string `json:"slotDate" validate:"required,day_key"`
	SlotTime string `json:"slotTime" validate:"required"`
}

type AppointmentAction struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
}
