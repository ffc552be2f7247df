package friends

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FriendMongoRepository reads the friendship edges written by the social
// service. Roster order is the order friends were added.
type FriendMongoRepository struct {
	Collection *mongo.Collection
}

func NewFriendMongoRepository(db *mongo.Client, dbName string) contracts.FriendRepository {
	return &FriendMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionFriends),
	}
}

func (r *FriendMongoRepository) ListByOwner(ctx context.Context, ownerUID string) ([]models.Friend, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}, {Key: "uid", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"ownerUid": ownerUID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	friends := []models.Friend{}
	if err := cursor.All(ctx, &friends); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return friends, nil
}

func (r *FriendMongoRepository) IsFriend(ctx context.Context, ownerUID, uid string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx,
		bson.M{"ownerUid": ownerUID, "uid": uid},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}
