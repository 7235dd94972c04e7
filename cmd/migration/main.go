package main

import (
	"context"
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/drivers/database"
	"docbook-service/internal/app/drivers/logger"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const migrationTimeout = time.Minute

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func main() {
	_ = godotenv.Load()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	client := database.NewMongoDB(driverConfig)
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()
	defer func() {
		err := client.Disconnect(context.Background())
		if err != nil {
			log.WithError(err).Warn("Failed to disconnect from mongo database")
		}
	}()

	db := client.Database(driverConfig.MongoDB.DbName)
	for _, set := range bookingIndexes() {
		names, err := db.Collection(set.collection).Indexes().CreateMany(ctx, set.models)
		if err != nil {
			log.WithError(err).WithField("collection", set.collection).Fatal("Failed to create indexes")
		}
		log.WithFields(logrus.Fields{
			"collection": set.collection,
			"indexes":    names,
		}).Info("Indexes ensured")
	}

	log.Info("Migration finished")
}

// bookingIndexes backs the booking invariants at the storage level: at most
// one Booked appointment per (doctor, day, time) and indexed newest-first
// listings for patients and doctors.
func bookingIndexes() []collectionIndexes {
	return []collectionIndexes{
		{
			collection: constvars.MongoCollectionAppointments,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: constvars.MongoFieldDocID, Value: 1},
						{Key: constvars.MongoFieldSlotDate, Value: 1},
						{Key: constvars.MongoFieldSlotTime, Value: 1},
					},
					Options: options.Index().
						SetName("uniq_booked_slot").
						SetUnique(true).
						SetPartialFilterExpression(bson.M{constvars.MongoFieldState: models.StateBooked}),
				},
				{
					Keys: bson.D{
						{Key: constvars.MongoFieldUserID, Value: 1},
						{Key: constvars.MongoFieldBookedAt, Value: -1},
					},
					Options: options.Index().SetName("user_booked_at"),
				},
				{
					Keys: bson.D{
						{Key: constvars.MongoFieldDocID, Value: 1},
						{Key: constvars.MongoFieldBookedAt, Value: -1},
					},
					Options: options.Index().SetName("doctor_booked_at"),
				},
			},
		},
	}
}
