package booking

import (
	"context"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/exceptions"
	"sort"
	"sync"
)

type fakeDoctorRepository struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
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
	doctor, ok := r.doctors[docID]
	if !ok || doctor.SlotVersion != expectedVersion {
		return 0, exceptions.ErrSlotVersionConflict(nil, docID, expectedVersion)
	}
	doctor.SlotIndex = index.Clone()
	doctor.SlotVersion++
	return doctor.SlotVersion, nil
}

func (r *fakeDoctorRepository) stored(docID string) *models.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doctors[docID].Clone()
}

func (r *fakeDoctorRepository) snapshot() map[string]*models.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]*models.Doctor, len(r.doctors))
	for id, doctor := range r.doctors {
		copied[id] = doctor.Clone()
	}
	return copied
}

func (r *fakeDoctorRepository) restore(doctors map[string]*models.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors = doctors
}

type fakeUserRepository struct {
	users map[string]*models.User
}

func newFakeUserRepository(users ...*models.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[string]*models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type fakeAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	insertErr    error
	updateErr    error
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: make(map[string]*models.Appointment)}
}

func (r *fakeAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.appointments[appointment.ID]; ok {
		return exceptions.ErrDuplicateBooking(nil)
	}
	r.appointments[appointment.ID] = appointment.Clone()
	return nil
}

func (r *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return appointment.Clone(), nil
}

func (r *fakeAppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.filter(func(appointment *models.Appointment) bool { return appointment.UserID == userID }), nil
}

func (r *fakeAppointmentRepository) FindByDoctorID(ctx context.Context, docID string) ([]models.Appointment, error) {
	return r.filter(func(appointment *models.Appointment) bool { return appointment.DocID == docID }), nil
}

func (r *fakeAppointmentRepository) filter(match func(*models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if match(appointment) {
			result = append(result, *appointment.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BookedAt.Equal(result[j].BookedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].BookedAt.After(result[j].BookedAt)
	})
	return result
}

func (r *fakeAppointmentRepository) UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.appointments[appointment.ID]
	if !ok || stored.State != from {
		return exceptions.ErrAppointmentStateConflict(nil, appointment.ID, string(from))
	}
	r.appointments[appointment.ID] = appointment.Clone()
	return nil
}

func (r *fakeAppointmentRepository) stored(appointmentID string) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appointment, ok := r.appointments[appointmentID]; ok {
		return appointment.Clone()
	}
	return nil
}

func (r *fakeAppointmentRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

func (r *fakeAppointmentRepository) snapshot() map[string]*models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]*models.Appointment, len(r.appointments))
	for id, appointment := range r.appointments {
		copied[id] = appointment.Clone()
	}
	return copied
}

func (r *fakeAppointmentRepository) restore(appointments map[string]*models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = appointments
}

// fakeTransactionManager rolls both fake repositories back when fn fails.
type fakeTransactionManager struct {
	doctors      *fakeDoctorRepository
	appointments *fakeAppointmentRepository
}

func (m *fakeTransactionManager) SupportsTransactions() bool {
	return true
}

func (m *fakeTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	doctors := m.doctors.snapshot()
	appointments := m.appointments.snapshot()
	err := fn(ctx)
	if err != nil {
		m.doctors.restore(doctors)
		m.appointments.restore(appointments)
	}
	return err
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []*models.AppointmentEventMessage
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, message *models.AppointmentEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, message)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]string, 0, len(p.messages))
	for _, message := range p.messages {
		result = append(result, message.Type)
	}
	return result
}

type fakeReceiptStorage struct {
	mu       sync.Mutex
	receipts []*models.PaymentReceipt
}

func (s *fakeReceiptStorage) StoreReceipt(ctx context.Context, receipt *models.PaymentReceipt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, receipt)
	return "receipts/" + receipt.AppointmentID + ".json", nil
}
