package routers

import (
	"docbook-service/internal/app/delivery/http/controllers"
	"docbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Route("/doctor", func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Get("/appointments", doctorController.ListAppointments)
		r.Get("/dashboard", doctorController.Dashboard)
	})
	router.Get("/doctors/{docId}/slots", doctorController.Slots)
}
