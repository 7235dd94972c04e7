package utils

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentIDFilter matches _id whether the document was stored with an
// ObjectID or with its hex string.
func DocumentIDFilter(id string) bson.M {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{"_id": id}
	}
	return bson.M{"_id": bson.M{"$in": bson.A{objectID, id}}}
}
