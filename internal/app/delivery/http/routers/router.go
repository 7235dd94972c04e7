package routers

import (
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/delivery/http/controllers"
	"docbook-service/internal/app/delivery/http/middlewares"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
	doctorController *controllers.DoctorController,
	metricsHandler http.Handler,
) {
	corsOptions := cors.Options{
		AllowedOrigins: strings.Split(internalConfig.App.CorsAllowedOrigins, ","),
		AllowedMethods: []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderContentType,
			constvars.HeaderCSRFToken,
			constvars.HeaderToken,
			constvars.HeaderAPIKey,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging)
	router.Use(mw.ErrorHandler)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthySuccessMessage, nil)
	})
	if metricsHandler != nil {
		router.Method(constvars.MethodGet, "/metrics", metricsHandler)
	}

	bookingLimiter := middlewares.NewRateLimiter(
		internalConfig.App.BookingRequestsPerMinute,
		time.Minute,
		time.Duration(internalConfig.App.BookingBlockInMinutes)*time.Minute,
		mw.Log,
	)

	router.Route(endpointPrefix(internalConfig.App.EndpointPrefix), func(r chi.Router) {
		attachAppointmentRoutes(r, mw, bookingLimiter, appointmentController)
		attachDoctorRoutes(r, mw, doctorController)
	})
}

func endpointPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix
}
