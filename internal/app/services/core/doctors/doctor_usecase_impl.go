package doctors

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/dto/responses"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	SlotIndex             contracts.SlotIndexService
	Log                   *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	slotIndex contracts.SlotIndexService,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = newDoctorUsecase(doctorRepository, appointmentRepository, slotIndex, logger)
	})
	return doctorUsecaseInstance
}

func newDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	slotIndex contracts.SlotIndexService,
	logger *zap.Logger,
) *doctorUsecase {
	return &doctorUsecase{
		DoctorRepository:      doctorRepository,
		AppointmentRepository: appointmentRepository,
		SlotIndex:             slotIndex,
		Log:                   logger,
	}
}

func (uc *doctorUsecase) ListAppointments(ctx context.Context, actor models.Actor) ([]responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	err := requireDoctor(actor, "listDoctorAppointments")
	if err != nil {
		return nil, err
	}

	appointments, err := uc.AppointmentRepository.FindByDoctorID(ctx, actor.ID)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.ListAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(appointments)),
	)
	return responses.NewAppointments(appointments), nil
}

func (uc *doctorUsecase) Dashboard(ctx context.Context, actor models.Actor) (*responses.DoctorDashboard, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	err := requireDoctor(actor, "doctorDashboard")
	if err != nil {
		return nil, err
	}

	appointments, err := uc.AppointmentRepository.FindByDoctorID(ctx, actor.ID)
	if err != nil {
		uc.Log.Error("doctorUsecase.Dashboard error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	dashboard := &responses.DoctorDashboard{
		Appointments:       len(appointments),
		LatestAppointments: make([]responses.Appointment, 0, constvars.DashboardLatestAppointmentsLimit),
	}
	patients := make(map[string]struct{})
	for i := range appointments {
		appointment := &appointments[i]
		if appointment.State == models.StateCompleted || appointment.State == models.StatePaid {
			dashboard.Earnings += appointment.Amount
		}
		patients[appointment.UserID] = struct{}{}
		// repository order is newest first
		if len(dashboard.LatestAppointments) < constvars.DashboardLatestAppointmentsLimit {
			dashboard.LatestAppointments = append(dashboard.LatestAppointments, responses.NewAppointment(appointment))
		}
	}
	dashboard.Patients = len(patients)

	uc.Log.Info("doctorUsecase.Dashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, dashboard.Appointments),
	)
	return dashboard, nil
}

func (uc *doctorUsecase) Slots(ctx context.Context, docID string) (*responses.DoctorSlots, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.Slots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, docID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, docID)
	if err != nil {
		uc.Log.Error("doctorUsecase.Slots error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, docID)
	}

	index, err := uc.SlotIndex.ForDoctor(ctx, docID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("doctorUsecase.Slots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, docID),
		zap.Int(constvars.LoggingAppointmentCountKey, index.Count()),
	)
	return &responses.DoctorSlots{
		DocID:     doctor.ID,
		Available: doctor.Available,
		SlotIndex: index,
	}, nil
}

func requireDoctor(actor models.Actor, action string) error {
	if actor.ID == "" {
		return exceptions.ErrMissingActor(nil)
	}
	if !actor.Is(models.RoleDoctor) {
		return exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), action)
	}
	return nil
}
