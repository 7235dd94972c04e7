package booking

import (
	"context"
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/app/services/core/appointments"
	"docbook-service/internal/app/services/core/slots"
	"docbook-service/internal/app/services/shared/metrics"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/dto/requests"
	"docbook-service/internal/pkg/dto/responses"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPersistTimeout = 10 * time.Second
	sideEffectTimeout     = 5 * time.Second

	outcomeSuccess = "success"
)

type bookingUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	UserRepository        contracts.UserRepository
	SlotIndex             contracts.SlotIndexService
	Locker                contracts.DoctorLocker
	Transactions          contracts.TransactionManager
	Payments              contracts.PaymentAttestationService
	Events                contracts.AppointmentEventPublisher
	Receipts              contracts.ReceiptStorage
	Metrics               *metrics.BookingMetrics
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	slotIndex contracts.SlotIndexService,
	locker contracts.DoctorLocker,
	transactions contracts.TransactionManager,
	payments contracts.PaymentAttestationService,
	events contracts.AppointmentEventPublisher,
	receipts contracts.ReceiptStorage,
	bookingMetrics *metrics.BookingMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = newBookingUsecase(
			appointmentRepository,
			doctorRepository,
			userRepository,
			slotIndex,
			locker,
			transactions,
			payments,
			events,
			receipts,
			bookingMetrics,
			internalConfig,
			logger,
		)
	})
	return bookingUsecaseInstance
}

func newBookingUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	slotIndex contracts.SlotIndexService,
	locker contracts.DoctorLocker,
	transactions contracts.TransactionManager,
	payments contracts.PaymentAttestationService,
	events contracts.AppointmentEventPublisher,
	receipts contracts.ReceiptStorage,
	bookingMetrics *metrics.BookingMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *bookingUsecase {
	return &bookingUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		UserRepository:        userRepository,
		SlotIndex:             slotIndex,
		Locker:                locker,
		Transactions:          transactions,
		Payments:              payments,
		Events:                events,
		Receipts:              receipts,
		Metrics:               bookingMetrics,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *bookingUsecase) Book(ctx context.Context, actor models.Actor, request *requests.BookAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingDoctorIDKey, request.DocID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	appointment, err := uc.book(ctx, actor, request)
	uc.observe(models.EventBook, err)
	if err != nil {
		uc.logFailure(ctx, "bookingUsecase.Book", err)
		return nil, err
	}

	uc.afterCommit(ctx, models.EventBook, appointment, actor)

	uc.Log.Info("bookingUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingDoctorIDKey, appointment.DocID),
		zap.String(constvars.LoggingSlotDateKey, appointment.Day),
		zap.String(constvars.LoggingSlotTimeKey, appointment.Time),
	)
	response := responses.NewAppointment(appointment)
	return &response, nil
}

func (uc *bookingUsecase) book(ctx context.Context, actor models.Actor, request *requests.BookAppointment) (*models.Appointment, error) {
	err := appointments.Authorize(actor, models.EventBook, &models.Appointment{UserID: actor.ID, DocID: request.DocID})
	if err != nil {
		return nil, err
	}

	day, slotTime, err := slots.CanonicalSlot(request.SlotDate, request.SlotTime)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DocID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, request.DocID)
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorUnavailable(nil, doctor.ID)
	}

	user, err := uc.UserRepository.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotFound(nil, actor.ID)
	}

	unlock, err := uc.lock(ctx, models.EventBook, doctor.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-read inside the critical section; the copy loaded above may be stale.
	doctor, err = uc.DoctorRepository.FindByID(ctx, request.DocID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, request.DocID)
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorUnavailable(nil, doctor.ID)
	}
	if doctor.SlotIndex.Has(day, slotTime) {
		return nil, exceptions.ErrSlotTaken(nil, doctor.ID, day, slotTime)
	}

	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrContextDone(err)
	}
	persistCtx, cancel := uc.persistContext(ctx)
	defer cancel()

	bookedAt := uc.now()
	appointment := &models.Appointment{
		ID:           utils.GenerateAppointmentID(),
		UserID:       user.ID,
		DocID:        doctor.ID,
		UserSnapshot: user.Snapshot(),
		DocSnapshot:  doctor.Snapshot(),
		Amount:       doctor.Fees,
		Day:          day,
		Time:         slotTime,
		BookedAt:     bookedAt,
		State:        models.StateBooked,
	}
	appointment.CreatedAt = bookedAt
	appointment.UpdatedAt = bookedAt

	err = uc.Transactions.WithTransaction(persistCtx, func(txCtx context.Context) error {
		working := doctor.Clone()

		result, err := uc.SlotIndex.ReserveLocked(txCtx, working, day, slotTime)
		if err != nil {
			return err
		}
		switch result {
		case models.AlreadyTaken:
			return exceptions.ErrSlotTaken(nil, doctor.ID, day, slotTime)
		case models.DoctorUnavailable:
			return exceptions.ErrDoctorUnavailable(nil, doctor.ID)
		case models.UnknownDoctor:
			return exceptions.ErrDoctorNotFound(nil, doctor.ID)
		}

		err = uc.AppointmentRepository.Insert(txCtx, appointment)
		if err != nil {
			if !uc.Transactions.SupportsTransactions() {
				uc.restoreSlotIndex(persistCtx, models.EventBook, doctor, working)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (uc *bookingUsecase) Cancel(ctx context.Context, actor models.Actor, appointmentID string) (*responses.Appointment, error) {
	return uc.transition(ctx, actor, appointmentID, models.EventCancel, nil)
}

func (uc *bookingUsecase) Complete(ctx context.Context, actor models.Actor, appointmentID string) (*responses.Appointment, error) {
	return uc.transition(ctx, actor, appointmentID, models.EventComplete, nil)
}

func (uc *bookingUsecase) MarkPaid(ctx context.Context, actor models.Actor, request *requests.MarkPaid) (*responses.Appointment, error) {
	return uc.transition(ctx, actor, request.AppointmentID, models.EventMarkPaid, func(appointment *models.Appointment) error {
		attestation, err := uc.Payments.Attest(request.PaymentMethod, request.PaymentDetails)
		if err != nil {
			return err
		}
		paidAt := uc.now()
		appointment.PaymentMethod = attestation.Method
		appointment.PaymentAttestation = attestation
		appointment.PaidAt = &paidAt
		return nil
	})
}

// transition drives cancel, complete and markPaid. prepare runs before the
// critical section and fills in event specific fields on the updated copy.
func (uc *bookingUsecase) transition(
	ctx context.Context,
	actor models.Actor,
	appointmentID string,
	event models.LifecycleEvent,
	prepare func(appointment *models.Appointment) error,
) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, string(event)),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingActorRoleKey, string(actor.Role)),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	updated, err := uc.applyTransition(ctx, actor, appointmentID, event, prepare)
	uc.observe(event, err)
	if err != nil {
		uc.logFailure(ctx, "bookingUsecase.transition", err, zap.String(constvars.LoggingEventKey, string(event)))
		return nil, err
	}

	uc.afterCommit(ctx, event, updated, actor)

	uc.Log.Info("bookingUsecase.transition succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, string(event)),
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
		zap.String(constvars.LoggingStateKey, string(updated.State)),
	)
	response := responses.NewAppointment(updated)
	return &response, nil
}

func (uc *bookingUsecase) applyTransition(
	ctx context.Context,
	actor models.Actor,
	appointmentID string,
	event models.LifecycleEvent,
	prepare func(appointment *models.Appointment) error,
) (*models.Appointment, error) {
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	err = appointments.Authorize(actor, event, appointment)
	if err != nil {
		return nil, err
	}
	_, err = appointments.Next(appointment.State, event)
	if err != nil {
		return nil, err
	}

	updated := appointment.Clone()
	if prepare != nil {
		err = prepare(updated)
		if err != nil {
			return nil, err
		}
	}

	unlock, err := uc.lock(ctx, event, appointment.DocID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// The state may have moved while we waited for the lock.
	current, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	transition, err := appointments.Next(current.State, event)
	if err != nil {
		return nil, err
	}

	var doctor *models.Doctor
	if transition.Effect == appointments.SlotRelease {
		doctor, err = uc.DoctorRepository.FindByID(ctx, current.DocID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, exceptions.ErrDoctorNotFound(nil, current.DocID)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrContextDone(err)
	}
	persistCtx, cancel := uc.persistContext(ctx)
	defer cancel()

	updated.State = current.State
	appointments.Apply(updated, transition)

	err = uc.Transactions.WithTransaction(persistCtx, func(txCtx context.Context) error {
		var working *models.Doctor
		released := false
		if doctor != nil {
			working = doctor.Clone()
			result, err := uc.SlotIndex.ReleaseLocked(txCtx, working, current.Day, current.Time)
			if err != nil {
				return err
			}
			if result == models.NotPresent {
				uc.Log.Warn("bookingUsecase.applyTransition slot was not held by the booked appointment",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
					zap.String(constvars.LoggingAppointmentIDKey, current.ID),
					zap.String(constvars.LoggingDoctorIDKey, current.DocID),
					zap.String(constvars.LoggingSlotDateKey, current.Day),
					zap.String(constvars.LoggingSlotTimeKey, current.Time),
				)
			}
			released = result == models.Released
		}

		err := uc.AppointmentRepository.UpdateState(txCtx, updated, transition.From)
		if err != nil {
			if released && !uc.Transactions.SupportsTransactions() {
				uc.restoreSlotIndex(persistCtx, event, doctor, working)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *bookingUsecase) ListForPatient(ctx context.Context, actor models.Actor) ([]responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.ListForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	if actor.ID == "" {
		return nil, exceptions.ErrMissingActor(nil)
	}
	if !actor.Is(models.RolePatient) {
		return nil, exceptions.ErrActorRoleNotAllowed(nil, string(actor.Role), "listAppointments")
	}

	result, err := uc.AppointmentRepository.FindByUserID(ctx, actor.ID)
	if err != nil {
		uc.logFailure(ctx, "bookingUsecase.ListForPatient", err)
		return nil, err
	}

	uc.Log.Info("bookingUsecase.ListForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(result)),
	)
	return responses.NewAppointments(result), nil
}

func (uc *bookingUsecase) PaymentStatus(ctx context.Context, actor models.Actor, appointmentID string) (*responses.PaymentStatus, error) {
	uc.Log.Info("bookingUsecase.PaymentStatus called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if actor.ID == "" {
		return nil, exceptions.ErrMissingActor(nil)
	}
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	err = appointments.AuthorizeView(actor, appointment)
	if err != nil {
		return nil, err
	}
	return &responses.PaymentStatus{Paid: appointment.IsPaid()}, nil
}

func (uc *bookingUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	return appointment, nil
}

func (uc *bookingUsecase) lock(ctx context.Context, event models.LifecycleEvent, docID string) (func(), error) {
	startTime := time.Now()
	unlock, err := uc.Locker.Lock(ctx, docID)
	wait := time.Since(startTime)
	uc.Metrics.ObserveLockWait(string(event), wait)
	if err != nil {
		uc.Log.Warn("bookingUsecase.lock failed to enter critical section",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDoctorIDKey, docID),
			zap.Duration(constvars.LoggingLockWaitKey, wait),
			zap.Error(err),
		)
		return nil, exceptions.ErrContextDone(err)
	}
	return unlock, nil
}

// persistContext detaches the persist from request cancellation: once the
// write has started it runs to completion or to its own timeout.
func (uc *bookingUsecase) persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := defaultPersistTimeout
	if uc.InternalConfig != nil && uc.InternalConfig.App.PersistTimeoutInSeconds > 0 {
		timeout = time.Duration(uc.InternalConfig.App.PersistTimeoutInSeconds) * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// restoreSlotIndex writes the slot index the doctor had before the failed
// persist. Used only when the store cannot roll back on its own.
func (uc *bookingUsecase) restoreSlotIndex(ctx context.Context, event models.LifecycleEvent, original, working *models.Doctor) {
	_, err := uc.DoctorRepository.UpdateSlotIndex(ctx, original.ID, working.SlotVersion, original.SlotIndex)
	uc.Metrics.ObserveCompensation(string(event), err == nil)
	if err != nil {
		uc.Log.Error("bookingUsecase.restoreSlotIndex compensation failed, slot index and appointments disagree",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, string(event)),
			zap.String(constvars.LoggingDoctorIDKey, original.ID),
			zap.Int64(constvars.LoggingSlotVersionKey, working.SlotVersion),
			zap.Error(err),
		)
		return
	}
	uc.Log.Warn("bookingUsecase.restoreSlotIndex compensation applied",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventKey, string(event)),
		zap.String(constvars.LoggingDoctorIDKey, original.ID),
		zap.Bool(constvars.LoggingCompensationKey, true),
	)
}

// afterCommit runs the side effects of a committed transition. They happen
// outside the critical section and never change the result.
func (uc *bookingUsecase) afterCommit(ctx context.Context, event models.LifecycleEvent, appointment *models.Appointment, actor models.Actor) {
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	requestID := utils.GetRequestID(ctx)

	if uc.Events != nil {
		message := models.NewAppointmentEventMessage(event, appointment, actor, requestID)
		err := uc.Events.Publish(sideCtx, message)
		if err != nil {
			uc.Metrics.ObserveSideEffectFailure("event")
			uc.Log.Error("bookingUsecase.afterCommit error publishing appointment event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventKey, message.Type),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
	}

	if appointment.State == models.StatePaid && uc.Receipts != nil {
		objectName, err := uc.Receipts.StoreReceipt(sideCtx, models.NewPaymentReceipt(appointment))
		if err != nil {
			uc.Metrics.ObserveSideEffectFailure("receipt")
			uc.Log.Error("bookingUsecase.afterCommit error storing payment receipt",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
			return
		}
		uc.Log.Debug("bookingUsecase.afterCommit payment receipt stored",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
		)
	}
}

func (uc *bookingUsecase) observe(event models.LifecycleEvent, err error) {
	if err != nil {
		uc.Metrics.ObserveOperation(string(event), string(exceptions.KindOf(err)))
		return
	}
	uc.Metrics.ObserveOperation(string(event), outcomeSuccess)
}

func (uc *bookingUsecase) logFailure(ctx context.Context, operation string, err error, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingErrorTypeKey, string(exceptions.KindOf(err))),
		zap.Error(err),
	}, fields...)

	if exceptions.KindOf(err).IsBusiness() || exceptions.Is(err, exceptions.KindUnauthorized) {
		uc.Log.Info(operation+" rejected", fields...)
		return
	}
	uc.Log.Error(operation+" error", fields...)
}
