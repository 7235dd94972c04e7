package routers

import (
	"docbook-service/internal/app/delivery/http/controllers"
	"docbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingLimiter *middlewares.RateLimiter, appointmentController *controllers.AppointmentController) {
	router.With(bookingLimiter.Limit, middlewares.Authenticate).Post("/book-appointment", appointmentController.BookAppointment)
	router.With(middlewares.Authenticate).Get("/appointments", appointmentController.ListAppointments)
	router.With(middlewares.Authenticate).Post("/cancel-appointment", appointmentController.CancelAppointment)
	router.With(middlewares.Authenticate).Post("/complete-appointment", appointmentController.CompleteAppointment)
	router.With(middlewares.PaymentAPIKey, middlewares.Authenticate).Post("/mark-paid", appointmentController.MarkPaid)
	router.With(middlewares.PaymentAPIKey, middlewares.Authenticate).Get("/payment-status/{appointmentId}", appointmentController.PaymentStatus)
}
