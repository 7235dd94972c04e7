package utils

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateAppointmentID returns an opaque, roughly time ordered identifier.
func GenerateAppointmentID() string {
	return primitive.NewObjectID().Hex()
}
