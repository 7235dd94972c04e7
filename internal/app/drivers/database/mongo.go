package database

import (
	"context"
	"docbook-service/internal/app/config"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoClientOptions(driverConfig))
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}

func mongoClientOptions(driverConfig *config.DriverConfig) *options.ClientOptions {
	connectionString := fmt.Sprintf("mongodb://%s:%s", driverConfig.MongoDB.Host, driverConfig.MongoDB.Port)
	clientOptions := options.Client().ApplyURI(connectionString)
	if driverConfig.MongoDB.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: driverConfig.MongoDB.Username,
			Password: driverConfig.MongoDB.Password,
		})
	}
	// Multi-document transactions need a replica set or a sharded cluster.
	if driverConfig.MongoDB.ReplicaSet != "" {
		clientOptions.SetReplicaSet(driverConfig.MongoDB.ReplicaSet)
	}
	return clientOptions
}
