package appointments

import (
	"context"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func appointmentDoc(id, state string, bookedAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: "user-1"},
		{Key: "docId", Value: "doc-1"},
		{Key: "amount", Value: 50.0},
		{Key: "slotDate", Value: "5_7_2025"},
		{Key: "slotTime", Value: "10:00 AM"},
		{Key: "bookedAt", Value: bookedAt},
		{Key: "state", Value: state},
		{Key: "docData", Value: bson.D{{Key: "_id", Value: "doc-1"}, {Key: "name", Value: "Dr. Emily Larson"}}},
	}
}

func TestAppointmentMongoRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Insert(context.Background(), &models.Appointment{ID: "appt-1", State: models.StateBooked})
		assert.NoError(t, err)
	})

	mt.Run("duplicate booked slot", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Insert(context.Background(), &models.Appointment{ID: "appt-2", State: models.StateBooked})
		require.Error(t, err)
		assert.True(t, exceptions.Is(err, exceptions.KindStorageFault))
		assert.Contains(t, err.Error(), "duplicate")
	})
}

func TestAppointmentMongoRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		bookedAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "docbook.appointments", mtest.FirstBatch,
			appointmentDoc("appt-1", "Booked", bookedAt)))

		appointment, err := repo.FindByID(context.Background(), "appt-1")
		require.NoError(t, err)
		require.NotNil(t, appointment)
		assert.Equal(t, models.StateBooked, appointment.State)
		assert.Equal(t, "Dr. Emily Larson", appointment.DocSnapshot.Name)
		assert.True(t, bookedAt.Equal(appointment.BookedAt))
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "docbook.appointments", mtest.FirstBatch))

		appointment, err := repo.FindByID(context.Background(), "appt-x")
		require.NoError(t, err)
		assert.Nil(t, appointment)
	})
}

func TestAppointmentMongoRepository_FindByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns documents in server order", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		newer := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
		older := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
		first := mtest.CreateCursorResponse(1, "docbook.appointments", mtest.FirstBatch,
			appointmentDoc("appt-2", "Cancelled", newer),
			appointmentDoc("appt-1", "Booked", older))
		end := mtest.CreateCursorResponse(0, "docbook.appointments", mtest.NextBatch)
		mt.AddMockResponses(first, end)

		appointments, err := repo.FindByUserID(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, appointments, 2)
		assert.Equal(t, "appt-2", appointments[0].ID)
		assert.Equal(t, models.StateCancelled, appointments[0].State)
	})

	mt.Run("empty", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "docbook.appointments", mtest.FirstBatch))

		appointments, err := repo.FindByDoctorID(context.Background(), "doc-1")
		require.NoError(t, err)
		assert.NotNil(t, appointments)
		assert.Empty(t, appointments)
	})
}

func TestAppointmentMongoRepository_UpdateState(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matched", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		err := repo.UpdateState(context.Background(), &models.Appointment{ID: "appt-1", State: models.StateCancelled}, models.StateBooked)
		assert.NoError(t, err)
	})

	mt.Run("state moved on", func(mt *mtest.T) {
		repo := &AppointmentMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.UpdateState(context.Background(), &models.Appointment{ID: "appt-1", State: models.StateCancelled}, models.StateBooked)
		require.Error(t, err)
		assert.True(t, exceptions.Is(err, exceptions.KindStorageFault))
	})
}
