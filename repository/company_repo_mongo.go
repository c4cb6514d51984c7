package repository

import (
	"context"
	"errors"
	"time"

	"kvltransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCompanyRepo struct {
	DB *mongo.Database
}

func NewMongoCompanyRepo(db *mongo.Database) *MongoCompanyRepo {
	return &MongoCompanyRepo{DB: db}
}

func (r *MongoCompanyRepo) col() *mongo.Collection {
	return r.DB.Collection("company_profile")
}

func (r *MongoCompanyRepo) SaveProfile(profile *models.CompanyProfile) error {
	ctx := context.Background()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	_, err := r.col().InsertOne(ctx, profile)
	return err
}

// GetProfile returns the most recently saved profile.
func (r *MongoCompanyRepo) GetProfile() (*models.CompanyProfile, error) {
	ctx := context.Background()

	var profile models.CompanyProfile
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.col().FindOne(ctx, bson.M{}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
