package repository

import (
	"context"
	"errors"
	"time"

	"kvltransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoFreightBillRepo struct {
	DB *mongo.Database
}

func NewMongoFreightBillRepo(db *mongo.Database) *MongoFreightBillRepo {
	return &MongoFreightBillRepo{DB: db}
}

func (r *MongoFreightBillRepo) col() *mongo.Collection {
	return r.DB.Collection("freight_bills")
}

func (r *MongoFreightBillRepo) consignments() *mongo.Collection {
	return r.DB.Collection("consignments")
}

// CreateWithConsignments runs the bill insert and the line-item consignment
// updates in one session transaction. Any failure aborts the whole thing.
func (r *MongoFreightBillRepo) CreateWithConsignments(bill *models.FreightBill) error {
	session, err := r.DB.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		if bill.CreatedAt.IsZero() {
			bill.CreatedAt = time.Now().UTC()
		}
		if _, err := r.col().InsertOne(sessCtx, bill); err != nil {
			return nil, err
		}

		ids := lineItemIDs(bill)
		update := bson.M{"$set": bson.M{
			"billed_in":      bill.ID,
			"billed_date":    bill.BillDate,
			"payment_status": models.PaymentStatusBilled,
			"updated_at":     time.Now().UTC(),
		}}
		res, err := r.consignments().UpdateMany(sessCtx, bson.M{"_id": bson.M{"$in": ids}}, update)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount != int64(len(ids)) {
			return nil, errors.New("could not mark all consignments as billed")
		}
		return nil, nil
	}

	_, err = session.WithTransaction(context.Background(), callback)
	return err
}

func (r *MongoFreightBillRepo) GetByID(id string) (*models.FreightBill, error) {
	ctx := context.Background()
	var bill models.FreightBill
	err := r.col().FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *MongoFreightBillRepo) List(filters map[string]interface{}) ([]*models.FreightBill, error) {
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

	var out []*models.FreightBill
	for cur.Next(ctx) {
		var b models.FreightBill
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

func (r *MongoFreightBillRepo) Update(bill *models.FreightBill) error {
	ctx := context.Background()
	now := time.Now().UTC()
	bill.UpdatedAt = &now
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": bill.ID}, bill)
	return err
}

// BilledConsignmentIDs scans line items across all non-deleted bills, not
// per-customer; billing exclusivity is global.
func (r *MongoFreightBillRepo) BilledConsignmentIDs(ids []string) ([]string, error) {
	ctx := context.Background()

	cur, err := r.col().Find(ctx, bson.M{
		"is_deleted":                   false,
		"consignments.consignment_id": bson.M{"$in": ids},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	seen := make(map[string]bool)
	var out []string
	for cur.Next(ctx) {
		var b models.FreightBill
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		for _, line := range b.Consignments {
			if requested[line.ConsignmentID] && !seen[line.ConsignmentID] {
				seen[line.ConsignmentID] = true
				out = append(out, line.ConsignmentID)
			}
		}
	}
	return out, cur.Err()
}

func (r *MongoFreightBillRepo) SetConsignmentsPaymentStatus(ids []string, status string) error {
	ctx := context.Background()
	_, err := r.consignments().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"payment_status": status, "updated_at": time.Now().UTC()}},
	)
	return err
}

func (r *MongoFreightBillRepo) DeleteWithRollback(bill *models.FreightBill) error {
	session, err := r.DB.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		now := time.Now().UTC()
		_, err := r.col().UpdateOne(sessCtx,
			bson.M{"_id": bill.ID},
			bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}},
		)
		if err != nil {
			return nil, err
		}

		ids := lineItemIDs(bill)
		_, err = r.consignments().UpdateMany(sessCtx,
			bson.M{"_id": bson.M{"$in": ids}},
			bson.M{
				"$set":   bson.M{"payment_status": models.PaymentStatusUnbilled, "updated_at": now},
				"$unset": bson.M{"billed_in": "", "billed_date": ""},
			},
		)
		return nil, err
	}

	_, err = session.WithTransaction(context.Background(), callback)
	return err
}

func lineItemIDs(bill *models.FreightBill) []string {
	ids := make([]string, 0, len(bill.Consignments))
	for _, line := range bill.Consignments {
		ids = append(ids, line.ConsignmentID)
	}
	return ids
}
