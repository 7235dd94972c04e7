package doctors

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Database) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionDoctors),
	}
}

// FindByID returns nil, nil when the doctor does not exist.
func (repo *DoctorMongoRepository) FindByID(ctx context.Context, docID string) (*models.Doctor, error) {
	doctor := new(models.Doctor)
	err := repo.Collection.FindOne(ctx, utils.DocumentIDFilter(docID)).Decode(doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	if doctor.SlotIndex == nil {
		doctor.SlotIndex = models.SlotIndex{}
	}
	return doctor, nil
}

func (repo *DoctorMongoRepository) UpdateSlotIndex(ctx context.Context, docID string, expectedVersion int64, index models.SlotIndex) (int64, error) {
	if index == nil {
		index = models.SlotIndex{}
	}

	filter := utils.DocumentIDFilter(docID)
	if expectedVersion == 0 {
		// Documents written before versioning carry no slotVersion field.
		filter[constvars.MongoFieldSlotVersion] = bson.M{"$in": bson.A{int64(0), nil}}
	} else {
		filter[constvars.MongoFieldSlotVersion] = expectedVersion
	}

	update := bson.M{
		"$set": bson.M{
			constvars.MongoFieldSlotIndex: index,
			constvars.MongoFieldUpdatedAt: time.Now(),
		},
		"$inc": bson.M{constvars.MongoFieldSlotVersion: int64(1)},
	}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return 0, exceptions.ErrSlotVersionConflict(nil, docID, expectedVersion)
	}
	return expectedVersion + 1, nil
}
