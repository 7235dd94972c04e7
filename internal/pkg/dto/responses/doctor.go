package responses

import "docbook-service/internal/app/models"

type DoctorDashboard struct {
	Earnings           float64       `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

type DoctorSlots struct {
	DocID     string           `json:"docId"`
	Available bool             `json:"available"`
	SlotIndex models.SlotIndex `json:"slotIndex"`
}
