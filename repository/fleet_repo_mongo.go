package repository

import (
	"context"
	"errors"
	"time"

	"kvltransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoVehicleRepo struct {
	DB *mongo.Database
}

func NewMongoVehicleRepo(db *mongo.Database) *MongoVehicleRepo {
	return &MongoVehicleRepo{DB: db}
}

func (r *MongoVehicleRepo) col() *mongo.Collection {
	return r.DB.Collection("vehicles")
}

func (r *MongoVehicleRepo) Create(v *models.Vehicle) error {
	ctx := context.Background()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.col().InsertOne(ctx, v)
	return err
}

func (r *MongoVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoVehicleRepo) GetByNumber(number string) (*models.Vehicle, error) {
	return r.findOne(bson.M{"vehicle_number": number})
}

func (r *MongoVehicleRepo) findOne(filter bson.M) (*models.Vehicle, error) {
	ctx := context.Background()
	var v models.Vehicle
	err := r.col().FindOne(ctx, filter).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoVehicleRepo) List() ([]*models.Vehicle, error) {
	ctx := context.Background()
	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Vehicle
	for cur.Next(ctx) {
		var v models.Vehicle
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (r *MongoVehicleRepo) Update(v *models.Vehicle) error {
	ctx := context.Background()
	now := time.Now().UTC()
	v.UpdatedAt = &now
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	return err
}

func (r *MongoVehicleRepo) SetStatus(id string, status models.VehicleStatus) error {
	ctx := context.Background()
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	return err
}

type MongoDriverRepo struct {
	DB *mongo.Database
}

func NewMongoDriverRepo(db *mongo.Database) *MongoDriverRepo {
	return &MongoDriverRepo{DB: db}
}

func (r *MongoDriverRepo) col() *mongo.Collection {
	return r.DB.Collection("drivers")
}

func (r *MongoDriverRepo) Create(d *models.Driver) error {
	ctx := context.Background()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.col().InsertOne(ctx, d)
	return err
}

func (r *MongoDriverRepo) GetByID(id string) (*models.Driver, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoDriverRepo) GetByMobile(mobile string) (*models.Driver, error) {
	return r.findOne(bson.M{"mobile": mobile})
}

func (r *MongoDriverRepo) findOne(filter bson.M) (*models.Driver, error) {
	ctx := context.Background()
	var d models.Driver
	err := r.col().FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoDriverRepo) List() ([]*models.Driver, error) {
	ctx := context.Background()
	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Driver
	for cur.Next(ctx) {
		var d models.Driver
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (r *MongoDriverRepo) Update(d *models.Driver) error {
	ctx := context.Background()
	now := time.Now().UTC()
	d.UpdatedAt = &now
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	return err
}

func (r *MongoDriverRepo) SetStatus(id string, status models.DriverStatus, currentVehicle *string) error {
	ctx := context.Background()
	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	update := bson.M{"$set": set}
	if currentVehicle != nil {
		set["current_vehicle"] = *currentVehicle
	} else {
		update["$unset"] = bson.M{"current_vehicle": ""}
	}
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
