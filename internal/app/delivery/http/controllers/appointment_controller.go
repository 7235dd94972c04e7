package controllers

import (
	"context"
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/dto/requests"
	"docbook-service/internal/pkg/dto/responses"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	InternalConfig *config.InternalConfig
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	onceAppointmentController.Do(func() {
		appointmentControllerInstance = &AppointmentController{
			Log:            logger,
			BookingUsecase: bookingUsecase,
			InternalConfig: internalConfig,
		}
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, "AppointmentController.BookAppointment")
	if !ok {
		return
	}

	request := new(requests.BookAppointment)
	if !decodeAndValidate(ctrl.Log, w, r, ctrl.InternalConfig, "AppointmentController.BookAppointment", request) {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.BookingUsecase.Book(ctx, actor, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment BookingUsecase.Book error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentBookedSuccessMessage, response)
}

func (ctrl *AppointmentController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, "AppointmentController.ListAppointments")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.BookingUsecase.ListForPatient(ctx, actor)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListAppointments BookingUsecase.ListForPatient error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.ListAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, response)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.handleAction(w, r, "AppointmentController.CancelAppointment", constvars.AppointmentCancelledSuccessMessage, ctrl.BookingUsecase.Cancel)
}

func (ctrl *AppointmentController) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.handleAction(w, r, "AppointmentController.CompleteAppointment", constvars.AppointmentCompletedSuccessMessage, ctrl.BookingUsecase.Complete)
}

func (ctrl *AppointmentController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.MarkPaid called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, "AppointmentController.MarkPaid")
	if !ok {
		return
	}

	request := new(requests.MarkPaid)
	if !decodeAndValidate(ctrl.Log, w, r, ctrl.InternalConfig, "AppointmentController.MarkPaid", request) {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.BookingUsecase.MarkPaid(ctx, actor, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.MarkPaid BookingUsecase.MarkPaid error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.MarkPaid succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID),
		zap.String(constvars.LoggingPaymentMethodKey, string(response.PaymentMethod)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentPaidSuccessMessage, response)
}

func (ctrl *AppointmentController) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.PaymentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, "AppointmentController.PaymentStatus")
	if !ok {
		return
	}

	appointmentID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamAppointmentID))
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamAppointmentID))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.BookingUsecase.PaymentStatus(ctx, actor, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.PaymentStatus BookingUsecase.PaymentStatus error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentStatusSuccessMessage, response)
}

type appointmentAction func(ctx context.Context, actor models.Actor, appointmentID string) (*responses.Appointment, error)

// handleAction serves the endpoints whose body is just {appointmentId}.
func (ctrl *AppointmentController) handleAction(w http.ResponseWriter, r *http.Request, caller, successMessage string, action appointmentAction) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info(caller+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, caller)
	if !ok {
		return
	}

	request := new(requests.AppointmentAction)
	if !decodeAndValidate(ctrl.Log, w, r, ctrl.InternalConfig, caller, request) {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := action(ctx, actor, request.AppointmentID)
	if err != nil {
		ctrl.Log.Error(caller+" error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info(caller+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID),
		zap.String(constvars.LoggingStateKey, string(response.State)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}
