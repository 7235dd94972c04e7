package constvars

const (
	URLParamAppointmentID = "appointmentId"
	URLParamDoctorID      = "docId"
)
