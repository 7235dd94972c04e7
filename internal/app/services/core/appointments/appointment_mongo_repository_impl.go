package appointments

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	_, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrDuplicateBooking(err)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// FindByID returns nil, nil when the appointment does not exist.
func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment := new(models.Appointment)
	err := repo.Collection.FindOne(ctx, utils.DocumentIDFilter(appointmentID)).Decode(appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return appointment, nil
}

func (repo *AppointmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return repo.findNewestFirst(ctx, bson.M{constvars.MongoFieldUserID: userID})
}

func (repo *AppointmentMongoRepository) FindByDoctorID(ctx context.Context, docID string) ([]models.Appointment, error) {
	return repo.findNewestFirst(ctx, bson.M{constvars.MongoFieldDocID: docID})
}

func (repo *AppointmentMongoRepository) findNewestFirst(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: constvars.MongoFieldBookedAt, Value: -1},
		{Key: constvars.MongoFieldID, Value: -1},
	})
	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) error {
	filter := utils.DocumentIDFilter(appointment.ID)
	filter[constvars.MongoFieldState] = from

	set := bson.M{
		constvars.MongoFieldState:     appointment.State,
		constvars.MongoFieldUpdatedAt: appointment.UpdatedAt,
	}
	if appointment.State == models.StatePaid {
		set["paymentMethod"] = appointment.PaymentMethod
		set["paymentAttestation"] = appointment.PaymentAttestation
		set["paidAt"] = appointment.PaidAt
	}

	result, err := repo.Collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrAppointmentStateConflict(nil, appointment.ID, string(from))
	}
	return nil
}
