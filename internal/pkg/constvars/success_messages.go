package constvars

const (
	ResponseUnknown = "unknown"

	AppointmentBookedSuccessMessage    = "Appointment Booked"
	AppointmentCancelledSuccessMessage = "Appointment Cancelled"
	AppointmentCompletedSuccessMessage = "Appointment Completed"
	AppointmentPaidSuccessMessage      = "Payment recorded"
	GetAppointmentsSuccessMessage      = "get appointments successfully"
	GetPaymentStatusSuccessMessage     = "get payment status successfully"
	GetDashboardSuccessMessage         = "get dashboard successfully"
	GetDoctorSlotsSuccessMessage       = "get doctor slots successfully"
	HealthySuccessMessage              = "ok"
)
