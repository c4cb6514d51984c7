package repository

import (
	"context"
	"errors"
	"time"

	"kvltransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoCustomerRepo struct {
	DB *mongo.Database
}

func NewMongoCustomerRepo(db *mongo.Database) *MongoCustomerRepo {
	return &MongoCustomerRepo{DB: db}
}

func (r *MongoCustomerRepo) col() *mongo.Collection {
	return r.DB.Collection("customers")
}

func (r *MongoCustomerRepo) Create(c *models.Customer) error {
	ctx := context.Background()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.col().InsertOne(ctx, c)
	return err
}

func (r *MongoCustomerRepo) GetByID(id string) (*models.Customer, error) {
	ctx := context.Background()
	var c models.Customer
	err := r.col().FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoCustomerRepo) List() ([]*models.Customer, error) {
	ctx := context.Background()
	cur, err := r.col().Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Customer
	for cur.Next(ctx) {
		var c models.Customer
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (r *MongoCustomerRepo) Update(c *models.Customer) error {
	ctx := context.Background()
	now := time.Now().UTC()
	c.UpdatedAt = &now
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (r *MongoCustomerRepo) SoftDelete(id string) error {
	ctx := context.Background()
	now := time.Now().UTC()
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}},
	)
	return err
}
