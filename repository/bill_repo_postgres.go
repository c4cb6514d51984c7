package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kvltransport/models"

	"github.com/lib/pq"
)

// PostgresFreightBillRepo keeps the bill document in JSONB and maintains a
// freight_bill_items link table so the billing-exclusivity check is a plain
// index scan.
type PostgresFreightBillRepo struct {
	DB *sql.DB
}

func NewPostgresFreightBillRepo(db *sql.DB) *PostgresFreightBillRepo {
	return &PostgresFreightBillRepo{DB: db}
}

func (r *PostgresFreightBillRepo) CreateWithConsignments(bill *models.FreightBill) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(bill)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO freight_bills (id, bill_number, status, is_deleted, doc, created_at)
		VALUES ($1, $2, $3, FALSE, $4, $5)`,
		bill.ID, bill.BillNumber, string(bill.Status), doc, bill.CreatedAt,
	)
	if err != nil {
		return err
	}

	ids := lineItemIDs(bill)
	for _, consignmentID := range ids {
		if _, err := tx.Exec(`
			INSERT INTO freight_bill_items (bill_id, consignment_id) VALUES ($1, $2)`,
			bill.ID, consignmentID,
		); err != nil {
			return err
		}
	}

	res, err := tx.Exec(`
		UPDATE consignments
		SET billed_in = $1,
		    doc = doc || jsonb_build_object(
		        'billed_in', $1::text,
		        'billed_date', to_char($2::timestamptz, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
		        'payment_status', $3::text),
		    updated_at = $4
		WHERE id = ANY($5)`,
		bill.ID, bill.BillDate, models.PaymentStatusBilled, time.Now().UTC(), pq.Array(ids),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(ids)) {
		return errors.New("could not mark all consignments as billed")
	}

	return tx.Commit()
}

func (r *PostgresFreightBillRepo) GetByID(id string) (*models.FreightBill, error) {
	var doc []byte
	err := r.DB.QueryRow(
		`SELECT doc FROM freight_bills WHERE id = $1 AND is_deleted = FALSE`, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var bill models.FreightBill
	if err := json.Unmarshal(doc, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *PostgresFreightBillRepo) List(filters map[string]interface{}) ([]*models.FreightBill, error) {
	where := []string{}
	args := []interface{}{}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	deleted := false
	for k, v := range filters {
		switch k {
		case "status":
			add("status = $%d", fmt.Sprintf("%v", v))
		case "bill_number":
			add("bill_number = $%d", v)
		case "party.customer_id":
			add("doc->'party'->>'customer_id' = $%d", fmt.Sprintf("%v", v))
		case "is_deleted":
			if b, ok := v.(bool); ok {
				deleted = b
			}
		}
	}
	args = append(args, deleted)
	where = append(where, fmt.Sprintf("is_deleted = $%d", len(args)))

	rows, err := r.DB.Query(
		`SELECT doc FROM freight_bills WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.FreightBill
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var b models.FreightBill
		if err := json.Unmarshal(doc, &b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *PostgresFreightBillRepo) Update(bill *models.FreightBill) error {
	now := time.Now().UTC()
	bill.UpdatedAt = &now
	doc, err := json.Marshal(bill)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		UPDATE freight_bills SET status = $2, is_deleted = $3, doc = $4, updated_at = $5
		WHERE id = $1`,
		bill.ID, string(bill.Status), bill.IsDeleted, doc, now,
	)
	return err
}

func (r *PostgresFreightBillRepo) BilledConsignmentIDs(ids []string) ([]string, error) {
	rows, err := r.DB.Query(`
		SELECT DISTINCT i.consignment_id
		FROM freight_bill_items i
		JOIN freight_bills b ON b.id = i.bill_id
		WHERE b.is_deleted = FALSE AND i.consignment_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresFreightBillRepo) SetConsignmentsPaymentStatus(ids []string, status string) error {
	_, err := r.DB.Exec(`
		UPDATE consignments
		SET doc = doc || jsonb_build_object('payment_status', $1::text), updated_at = $2
		WHERE id = ANY($3)`,
		status, time.Now().UTC(), pq.Array(ids),
	)
	return err
}

func (r *PostgresFreightBillRepo) DeleteWithRollback(bill *models.FreightBill) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.Exec(`
		UPDATE freight_bills
		SET is_deleted = TRUE,
		    doc = doc || jsonb_build_object(
		        'is_deleted', TRUE,
		        'deleted_at', to_char($2::timestamptz, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')),
		    updated_at = $2
		WHERE id = $1`,
		bill.ID, now,
	)
	if err != nil {
		return err
	}

	ids := lineItemIDs(bill)
	_, err = tx.Exec(`
		UPDATE consignments
		SET billed_in = NULL,
		    doc = (doc - 'billed_in' - 'billed_date') ||
		          jsonb_build_object('payment_status', $1::text),
		    updated_at = $2
		WHERE id = ANY($3)`,
		models.PaymentStatusUnbilled, now, pq.Array(ids),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
