package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSequenceRepo struct {
	DB *mongo.Database
}

func NewMongoSequenceRepo(db *mongo.Database) *MongoSequenceRepo {
	return &MongoSequenceRepo{DB: db}
}

// Next does an atomic increment-and-read via findOneAndUpdate with upsert,
// so two concurrent creates can never draw the same number.
func (r *MongoSequenceRepo) Next(name string, year int) (int64, error) {
	ctx := context.Background()

	key := fmt.Sprintf("%s_%d", name, year)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := r.DB.Collection("sequences").FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}
