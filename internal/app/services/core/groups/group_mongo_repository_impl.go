package groups

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type GroupMongoRepository struct {
	Collection *mongo.Collection
}

func NewGroupMongoRepository(db *mongo.Client, dbName string) contracts.GroupRepository {
	return &GroupMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionGroups),
	}
}

func (r *GroupMongoRepository) FindByID(ctx context.Context, groupID string) (*models.Group, error) {
	var group models.Group
	err := r.Collection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &group, nil
}
