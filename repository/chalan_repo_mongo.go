package repository

import (
	"context"
	"errors"
	"time"

	"kvltransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoChalanRepo struct {
	DB *mongo.Database
}

func NewMongoChalanRepo(db *mongo.Database) *MongoChalanRepo {
	return &MongoChalanRepo{DB: db}
}

func (r *MongoChalanRepo) col() *mongo.Collection {
	return r.DB.Collection("load_chalans")
}

func (r *MongoChalanRepo) Create(ch *models.LoadChalan) error {
	ctx := context.Background()
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now().UTC()
	}
	ch.RecalculateTotals()
	_, err := r.col().InsertOne(ctx, ch)
	return err
}

func (r *MongoChalanRepo) GetByID(id string) (*models.LoadChalan, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoChalanRepo) GetByNumber(number string) (*models.LoadChalan, error) {
	return r.findOne(bson.M{"chalan_number": number})
}

func (r *MongoChalanRepo) findOne(filter bson.M) (*models.LoadChalan, error) {
	ctx := context.Background()
	var ch models.LoadChalan
	err := r.col().FindOne(ctx, filter).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &ch, nil
}

func (r *MongoChalanRepo) List(filters map[string]interface{}) ([]*models.LoadChalan, error) {
	ctx := context.Background()

	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}

	cur, err := r.col().Find(ctx, bsonFilter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.LoadChalan
	for cur.Next(ctx) {
		var ch models.LoadChalan
		if err := cur.Decode(&ch); err != nil {
			return nil, err
		}
		out = append(out, &ch)
	}
	return out, cur.Err()
}

func (r *MongoChalanRepo) Update(ch *models.LoadChalan) error {
	ctx := context.Background()
	now := time.Now().UTC()
	ch.UpdatedAt = &now
	ch.RecalculateTotals()
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": ch.ID}, ch)
	return err
}

func (r *MongoChalanRepo) Delete(id string) error {
	ctx := context.Background()
	_, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
