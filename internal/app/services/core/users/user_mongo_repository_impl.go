package users

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) contracts.UserRepository {
	return &UserMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionUsers),
	}
}

// FindByID returns nil, nil when the user does not exist.
func (repo *UserMongoRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	user := new(models.User)
	err := repo.Collection.FindOne(ctx, utils.DocumentIDFilter(userID)).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return user, nil
}
