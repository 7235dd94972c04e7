package slots

import (
	"context"
	"docbook-service/internal/app/models"
	"docbook-service/internal/app/services/shared/locker"
	"docbook-service/internal/pkg/exceptions"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDoctorRepository struct {
	mu        sync.Mutex
	doctors   map[string]*models.Doctor
	updateErr error
	updates   int
}

func newFakeDoctorRepository(doctors ...*models.Doctor) *fakeDoctorRepository {
	repo := &fakeDoctorRepository{doctors: make(map[string]*models.Doctor)}
	for _, doctor := range doctors {
		repo.doctors[doctor.ID] = doctor.Clone()
	}
	return repo
}

func (r *fakeDoctorRepository) FindByID(ctx context.Context, docID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[docID]
	if !ok {
		return nil, nil
	}
	return doctor.Clone(), nil
}

func (r *fakeDoctorRepository) UpdateSlotIndex(ctx context.Context, docID string, expectedVersion int64, index models.SlotIndex) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	doctor, ok := r.doctors[docID]
	if !ok || doctor.SlotVersion != expectedVersion {
		return 0, exceptions.ErrSlotVersionConflict(nil, docID, expectedVersion)
	}
	doctor.SlotIndex = index.Clone()
	doctor.SlotVersion++
	r.updates++
	return doctor.SlotVersion, nil
}

func (r *fakeDoctorRepository) stored(docID string) *models.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doctors[docID].Clone()
}

func newTestService(repo *fakeDoctorRepository) *slotIndexService {
	return newSlotIndexService(repo, locker.NewMemoryDoctorLocker(4), zap.NewNop())
}

func TestSlotIndexService_ReserveRelease(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDoctorRepository(&models.Doctor{ID: "d1", Available: true, SlotIndex: models.SlotIndex{}})
	service := newTestService(repo)

	result, err := service.Reserve(ctx, "d1", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.Reserved, result)

	result, err = service.Reserve(ctx, "d1", "05_07_2025", " 10:00 AM ")
	require.NoError(t, err)
	assert.Equal(t, models.AlreadyTaken, result)

	taken, err := service.IsTaken(ctx, "d1", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.True(t, taken)

	index, err := service.ForDoctor(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotIndex{"5_7_2025": {"10:00 AM"}}, index)

	released, err := service.Release(ctx, "d1", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.Released, released)

	released, err = service.Release(ctx, "d1", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.NotPresent, released)

	index, err = service.ForDoctor(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, index)
	assert.Equal(t, int64(2), repo.stored("d1").SlotVersion)
}

func TestSlotIndexService_InsertionOrderAndPruning(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDoctorRepository(&models.Doctor{ID: "d1", Available: true})
	service := newTestService(repo)

	for _, slot := range []string{"11:00 AM", "09:00 AM", "10:30 AM"} {
		result, err := service.Reserve(ctx, "d1", "1_1_2026", slot)
		require.NoError(t, err)
		require.Equal(t, models.Reserved, result)
	}
	_, err := service.Reserve(ctx, "d1", "2_1_2026", "09:00 AM")
	require.NoError(t, err)

	index, err := service.ForDoctor(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00 AM", "09:00 AM", "10:30 AM"}, index["1_1_2026"])

	_, err = service.Release(ctx, "d1", "2_1_2026", "09:00 AM")
	require.NoError(t, err)
	index, err = service.ForDoctor(ctx, "d1")
	require.NoError(t, err)
	_, present := index["2_1_2026"]
	assert.False(t, present)
}

func TestSlotIndexService_UnknownAndUnavailableDoctor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDoctorRepository(&models.Doctor{ID: "d2", Available: false})
	service := newTestService(repo)

	result, err := service.Reserve(ctx, "missing", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.UnknownDoctor, result)

	released, err := service.Release(ctx, "missing", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.ReleaseUnknownDoctor, released)

	result, err = service.Reserve(ctx, "d2", "5_7_2025", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.DoctorUnavailable, result)
	assert.Equal(t, 0, repo.updates)

	_, err = service.ForDoctor(ctx, "missing")
	assert.True(t, exceptions.Is(err, exceptions.KindNotFound))
}

func TestSlotIndexService_InvalidKeys(t *testing.T) {
	service := newTestService(newFakeDoctorRepository(&models.Doctor{ID: "d1", Available: true}))

	_, err := service.Reserve(context.Background(), "d1", "31_2_2025", "10:00 AM")
	assert.True(t, exceptions.Is(err, exceptions.KindBadRequest))

	_, err = service.Reserve(context.Background(), "d1", "5_7_2025", "   ")
	assert.True(t, exceptions.Is(err, exceptions.KindBadRequest))
}

func TestSlotIndexService_ReserveLockedStorageFailureLeavesDoctorUntouched(t *testing.T) {
	repo := newFakeDoctorRepository(&models.Doctor{ID: "d1", Available: true})
	repo.updateErr = exceptions.ErrMongoDBUpdateDocument(errors.New("connection reset"))
	service := newTestService(repo)

	doctor, err := repo.FindByID(context.Background(), "d1")
	require.NoError(t, err)

	_, err = service.ReserveLocked(context.Background(), doctor, "5_7_2025", "10:00 AM")
	require.Error(t, err)
	assert.True(t, exceptions.Is(err, exceptions.KindStorageFault))
	assert.Empty(t, doctor.SlotIndex)
	assert.Equal(t, int64(0), doctor.SlotVersion)
}

func TestSlotIndexService_ConcurrentReserveOneWinner(t *testing.T) {
	repo := newFakeDoctorRepository(&models.Doctor{ID: "d1", Available: true})
	service := newTestService(repo)

	const callers = 50
	results := make(chan models.ReserveResult, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := service.Reserve(context.Background(), "d1", "5_7_2025", "10:00 AM")
			if !assert.NoError(t, err) {
				return
			}
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	reserved := 0
	for result := range results {
		if result == models.Reserved {
			reserved++
		}
	}
	assert.Equal(t, 1, reserved)
	assert.Equal(t, models.SlotIndex{"5_7_2025": {"10:00 AM"}}, repo.stored("d1").SlotIndex)
}

func TestSlotIndexService_LockTimeout(t *testing.T) {
	repo := newFakeDoctorRepository(&models.Doctor{ID: "d1", Available: true})
	memoryLocker := locker.NewMemoryDoctorLocker(1)
	service := newSlotIndexService(repo, memoryLocker, zap.NewNop())

	unlock, err := memoryLocker.Lock(context.Background(), "d1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	_, err = service.Reserve(ctx, "d1", "5_7_2025", "10:00 AM")
	require.Error(t, err)
	assert.True(t, exceptions.Is(err, exceptions.KindDeadlineExceeded))
}
