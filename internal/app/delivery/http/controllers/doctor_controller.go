package controllers

import (
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log            *zap.Logger
	DoctorUsecase  contracts.DoctorUsecase
	InternalConfig *config.InternalConfig
}

var (
	doctorControllerInstance *DoctorController
	onceDoctorController     sync.Once
)

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, internalConfig *config.InternalConfig) *DoctorController {
	onceDoctorController.Do(func() {
		doctorControllerInstance = &DoctorController{
			Log:            logger,
			DoctorUsecase:  doctorUsecase,
			InternalConfig: internalConfig,
		}
	})
	return doctorControllerInstance
}

func (ctrl *DoctorController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("DoctorController.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, "DoctorController.ListAppointments")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.DoctorUsecase.ListAppointments(ctx, actor)
	if err != nil {
		ctrl.Log.Error("DoctorController.ListAppointments DoctorUsecase.ListAppointments error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.ListAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, response)
}

func (ctrl *DoctorController) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("DoctorController.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actor, ok := requestActor(ctrl.Log, w, r, "DoctorController.Dashboard")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.DoctorUsecase.Dashboard(ctx, actor)
	if err != nil {
		ctrl.Log.Error("DoctorController.Dashboard DoctorUsecase.Dashboard error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSuccessMessage, response)
}

func (ctrl *DoctorController) Slots(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	docID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamDoctorID))
	ctrl.Log.Info("DoctorController.Slots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, docID),
	)

	if docID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamDoctorID))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.DoctorUsecase.Slots(ctx, docID)
	if err != nil {
		ctrl.Log.Error("DoctorController.Slots DoctorUsecase.Slots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		renderUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorSlotsSuccessMessage, response)
}
