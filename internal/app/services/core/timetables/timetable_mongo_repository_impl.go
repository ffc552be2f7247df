package timetables

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

type TimetableMongoRepository struct {
	Collection *mongo.Collection
}

func NewTimetableMongoRepository(db *mongo.Client, dbName string) contracts.TimetableRepository {
	return &TimetableMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTimetables),
	}
}

func (r *TimetableMongoRepository) FindByUID(ctx context.Context, uid string) (*models.Timetable, error) {
	var timetable models.Timetable
	err := r.Collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&timetable)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &timetable, nil
}

// Replace overwrites the whole document. Concurrent saves are last write wins.
func (r *TimetableMongoRepository) Replace(ctx context.Context, timetable *models.Timetable) error {
	timetable.ID = timetable.UID
	_, err := r.Collection.ReplaceOne(ctx,
		bson.M{"_id": timetable.UID},
		timetable,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBReplaceDocument(err)
	}
	return nil
}
