package database

import (
	"context"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// IndexPlan lists the indexes the repositories query through, per collection.
func IndexPlan() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		constvars.MongoCollectionFriends: {
			{
				Keys:    bson.D{{Key: "ownerUid", Value: 1}, {Key: "addedAt", Value: 1}, {Key: "uid", Value: 1}},
				Options: options.Index().SetName("owner_roster"),
			},
			{
				Keys:    bson.D{{Key: "ownerUid", Value: 1}, {Key: "uid", Value: 1}},
				Options: options.Index().SetName("owner_friend_unique").SetUnique(true),
			},
		},
		constvars.MongoCollectionGroups: {
			{
				Keys:    bson.D{{Key: "members", Value: 1}},
				Options: options.Index().SetName("members"),
			},
		},
		constvars.MongoCollectionUsers: {
			{
				Keys:    bson.D{{Key: "fcmToken", Value: 1}},
				Options: options.Index().SetName("fcm_token").SetSparse(true),
			},
		},
		constvars.MongoCollectionTimetables: {
			{
				Keys:    bson.D{{Key: "updatedAt", Value: -1}},
				Options: options.Index().SetName("updated_at"),
			},
		},
	}
}

// EnsureIndexes creates every index in IndexPlan. Existing indexes with the
// same definition are left alone by the server.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string, log *zap.Logger) error {
	db := client.Database(dbName)
	for collection, models := range IndexPlan() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return exceptions.ErrMongoDBCreateIndex(err, collection)
		}
		log.Info("Mongo indexes ensured",
			zap.String("collection", collection),
			zap.Strings("indexes", names),
		)
	}
	return nil
}
