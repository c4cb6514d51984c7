package repository

import (
	"context"
	"errors"
	"time"

	"kvltransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoConsignmentRepo struct {
	DB *mongo.Database
}

func NewMongoConsignmentRepo(db *mongo.Database) *MongoConsignmentRepo {
	return &MongoConsignmentRepo{DB: db}
}

func (r *MongoConsignmentRepo) col() *mongo.Collection {
	return r.DB.Collection("consignments")
}

func (r *MongoConsignmentRepo) Create(c *models.Consignment) error {
	ctx := context.Background()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.col().InsertOne(ctx, c)
	return err
}

func (r *MongoConsignmentRepo) GetByID(id string) (*models.Consignment, error) {
	return r.findOne(bson.M{"_id": id, "is_deleted": false})
}

func (r *MongoConsignmentRepo) GetByNumber(number string) (*models.Consignment, error) {
	return r.findOne(bson.M{"consignment_number": number, "is_deleted": false})
}

func (r *MongoConsignmentRepo) findOne(filter bson.M) (*models.Consignment, error) {
	ctx := context.Background()
	var c models.Consignment
	err := r.col().FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoConsignmentRepo) List(filters map[string]interface{}) ([]*models.Consignment, error) {
	ctx := context.Background()

	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}
	if _, ok := bsonFilter["is_deleted"]; !ok {
		bsonFilter["is_deleted"] = false
	}

	cur, err := r.col().Find(ctx, bsonFilter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Consignment
	for cur.Next(ctx) {
		var c models.Consignment
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (r *MongoConsignmentRepo) Update(c *models.Consignment) error {
	ctx := context.Background()
	now := time.Now().UTC()
	c.UpdatedAt = &now
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (r *MongoConsignmentRepo) SoftDelete(id, deletedBy string) error {
	ctx := context.Background()
	now := time.Now().UTC()
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{
			"is_deleted": true,
			"deleted_at": now,
			"deleted_by": deletedBy,
			"updated_at": now,
		}},
	)
	return err
}

func (r *MongoConsignmentRepo) CountActiveForVehicle(vehicleID, excludeConsignmentID string) (int64, error) {
	return r.countActive(bson.M{"vehicle.vehicle_id": vehicleID}, excludeConsignmentID)
}

func (r *MongoConsignmentRepo) CountActiveForDriver(driverID, excludeConsignmentID string) (int64, error) {
	return r.countActive(bson.M{"driver.driver_id": driverID}, excludeConsignmentID)
}

func (r *MongoConsignmentRepo) countActive(match bson.M, excludeID string) (int64, error) {
	ctx := context.Background()
	match["_id"] = bson.M{"$ne": excludeID}
	match["is_deleted"] = false
	match["status"] = bson.M{"$in": models.ActiveStatuses}
	return r.col().CountDocuments(ctx, match)
}

func (r *MongoConsignmentRepo) FindDeliveredForParty(ids []string, customerID, name, mobile string) ([]*models.Consignment, error) {
	ctx := context.Background()

	// Customer match by reference on either party, with a name+mobile
	// fallback for legacy records booked before the customer master
	// existed.
	partyMatch := bson.A{
		bson.M{"consignor.customer_id": customerID},
		bson.M{"consignee.customer_id": customerID},
	}
	if name != "" && mobile != "" {
		partyMatch = append(partyMatch,
			bson.M{"consignor.name": name, "consignor.mobile": mobile},
			bson.M{"consignee.name": name, "consignee.mobile": mobile},
		)
	}

	filter := bson.M{
		"_id":        bson.M{"$in": ids},
		"status":     models.StatusDelivered,
		"is_deleted": false,
		"$or":        partyMatch,
	}

	cur, err := r.col().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Consignment
	for cur.Next(ctx) {
		var c models.Consignment
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}
