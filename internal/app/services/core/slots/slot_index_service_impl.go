package slots

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type slotIndexService struct {
	DoctorRepository contracts.DoctorRepository
	Locker           contracts.DoctorLocker
	Log              *zap.Logger
}

func NewSlotIndexService(
	doctorRepository contracts.DoctorRepository,
	locker contracts.DoctorLocker,
	logger *zap.Logger,
) contracts.SlotIndexService {
	return newSlotIndexService(doctorRepository, locker, logger)
}

func newSlotIndexService(doctorRepository contracts.DoctorRepository, locker contracts.DoctorLocker, logger *zap.Logger) *slotIndexService {
	return &slotIndexService{
		DoctorRepository: doctorRepository,
		Locker:           locker,
		Log:              logger,
	}
}

// CanonicalSlot normalises a day key and a time key into the form stored in
// slot indexes.
func CanonicalSlot(day, time string) (string, string, error) {
	canonicalDay, err := models.CanonicalDayKey(day)
	if err != nil {
		return "", "", exceptions.ErrInputValidation(err)
	}
	canonicalTime, err := models.NormalizeTimeKey(time)
	if err != nil {
		return "", "", exceptions.ErrInputValidation(err)
	}
	return canonicalDay, canonicalTime, nil
}

func (s *slotIndexService) IsTaken(ctx context.Context, docID, day, time string) (bool, error) {
	day, time, err := CanonicalSlot(day, time)
	if err != nil {
		return false, err
	}

	doctor, err := s.DoctorRepository.FindByID(ctx, docID)
	if err != nil {
		return false, err
	}
	if doctor == nil {
		return false, exceptions.ErrDoctorNotFound(nil, docID)
	}
	return doctor.SlotIndex.Has(day, time), nil
}

func (s *slotIndexService) ForDoctor(ctx context.Context, docID string) (models.SlotIndex, error) {
	doctor, err := s.DoctorRepository.FindByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, docID)
	}
	return doctor.SlotIndex.Clone(), nil
}

func (s *slotIndexService) Reserve(ctx context.Context, docID, day, time string) (models.ReserveResult, error) {
	day, time, err := CanonicalSlot(day, time)
	if err != nil {
		return models.UnknownDoctor, err
	}

	unlock, err := s.lock(ctx, docID)
	if err != nil {
		return models.UnknownDoctor, err
	}
	defer unlock()

	doctor, err := s.DoctorRepository.FindByID(ctx, docID)
	if err != nil {
		return models.UnknownDoctor, err
	}
	if doctor == nil {
		return models.UnknownDoctor, nil
	}
	return s.ReserveLocked(ctx, doctor, day, time)
}

func (s *slotIndexService) Release(ctx context.Context, docID, day, time string) (models.ReleaseResult, error) {
	day, time, err := CanonicalSlot(day, time)
	if err != nil {
		return models.ReleaseUnknownDoctor, err
	}

	unlock, err := s.lock(ctx, docID)
	if err != nil {
		return models.ReleaseUnknownDoctor, err
	}
	defer unlock()

	doctor, err := s.DoctorRepository.FindByID(ctx, docID)
	if err != nil {
		return models.ReleaseUnknownDoctor, err
	}
	if doctor == nil {
		return models.ReleaseUnknownDoctor, nil
	}
	return s.ReleaseLocked(ctx, doctor, day, time)
}

func (s *slotIndexService) ReserveLocked(ctx context.Context, doctor *models.Doctor, day, time string) (models.ReserveResult, error) {
	if doctor == nil {
		return models.UnknownDoctor, nil
	}
	if !doctor.Available {
		return models.DoctorUnavailable, nil
	}
	if doctor.SlotIndex.Has(day, time) {
		return models.AlreadyTaken, nil
	}

	index := doctor.SlotIndex.Clone()
	index.Reserve(day, time)

	version, err := s.DoctorRepository.UpdateSlotIndex(ctx, doctor.ID, doctor.SlotVersion, index)
	if err != nil {
		s.Log.Error("slotIndexService.ReserveLocked error updating slot index",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.String(constvars.LoggingSlotDateKey, day),
			zap.String(constvars.LoggingSlotTimeKey, time),
			zap.Int64(constvars.LoggingSlotVersionKey, doctor.SlotVersion),
			zap.Error(err),
		)
		return models.UnknownDoctor, err
	}

	doctor.SlotIndex = index
	doctor.SlotVersion = version

	s.Log.Debug("slotIndexService.ReserveLocked succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
		zap.String(constvars.LoggingSlotDateKey, day),
		zap.String(constvars.LoggingSlotTimeKey, time),
		zap.Int64(constvars.LoggingSlotVersionKey, version),
	)
	return models.Reserved, nil
}

func (s *slotIndexService) ReleaseLocked(ctx context.Context, doctor *models.Doctor, day, time string) (models.ReleaseResult, error) {
	if doctor == nil {
		return models.ReleaseUnknownDoctor, nil
	}
	if !doctor.SlotIndex.Has(day, time) {
		return models.NotPresent, nil
	}

	index := doctor.SlotIndex.Clone()
	index.Release(day, time)

	version, err := s.DoctorRepository.UpdateSlotIndex(ctx, doctor.ID, doctor.SlotVersion, index)
	if err != nil {
		s.Log.Error("slotIndexService.ReleaseLocked error updating slot index",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.String(constvars.LoggingSlotDateKey, day),
			zap.String(constvars.LoggingSlotTimeKey, time),
			zap.Int64(constvars.LoggingSlotVersionKey, doctor.SlotVersion),
			zap.Error(err),
		)
		return models.ReleaseUnknownDoctor, err
	}

	doctor.SlotIndex = index
	doctor.SlotVersion = version

	s.Log.Debug("slotIndexService.ReleaseLocked succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
		zap.String(constvars.LoggingSlotDateKey, day),
		zap.String(constvars.LoggingSlotTimeKey, time),
		zap.Int64(constvars.LoggingSlotVersionKey, version),
	)
	return models.Released, nil
}

func (s *slotIndexService) lock(ctx context.Context, docID string) (func(), error) {
	unlock, err := s.Locker.Lock(ctx, docID)
	if err != nil {
		return nil, exceptions.ErrContextDone(err)
	}
	return unlock, nil
}
