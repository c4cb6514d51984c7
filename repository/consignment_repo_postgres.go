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

// PostgresConsignmentRepo stores each consignment as a JSONB document with
// the filterable fields lifted into indexed columns, mirroring the document
// layout of the Mongo backend.
type PostgresConsignmentRepo struct {
	DB *sql.DB
}

func NewPostgresConsignmentRepo(db *sql.DB) *PostgresConsignmentRepo {
	return &PostgresConsignmentRepo{DB: db}
}

func consignmentColumns(c *models.Consignment) (vehicleID, driverID sql.NullString) {
	if c.Vehicle != nil {
		vehicleID = sql.NullString{String: c.Vehicle.VehicleID, Valid: true}
	}
	if c.Driver != nil {
		driverID = sql.NullString{String: c.Driver.DriverID, Valid: true}
	}
	return
}

func (r *PostgresConsignmentRepo) Create(c *models.Consignment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	vehicleID, driverID := consignmentColumns(c)
	_, err = r.DB.Exec(`
		INSERT INTO consignments (id, consignment_number, status, is_deleted, vehicle_id, driver_id, billed_in, doc, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.ConsignmentNumber, string(c.Status), c.IsDeleted,
		vehicleID, driverID, nullString(c.BilledIn), doc, c.CreatedAt,
	)
	return err
}

func (r *PostgresConsignmentRepo) GetByID(id string) (*models.Consignment, error) {
	return r.scanOne(`SELECT doc FROM consignments WHERE id = $1 AND is_deleted = FALSE`, id)
}

func (r *PostgresConsignmentRepo) GetByNumber(number string) (*models.Consignment, error) {
	return r.scanOne(`SELECT doc FROM consignments WHERE consignment_number = $1 AND is_deleted = FALSE`, number)
}

func (r *PostgresConsignmentRepo) scanOne(query string, args ...interface{}) (*models.Consignment, error) {
	var doc []byte
	err := r.DB.QueryRow(query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var c models.Consignment
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List supports the same filter keys as the Mongo backend for the columns
// that are lifted out of the document.
func (r *PostgresConsignmentRepo) List(filters map[string]interface{}) ([]*models.Consignment, error) {
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
		case "consignment_number":
			add("consignment_number = $%d", v)
		case "vehicle.vehicle_id":
			add("vehicle_id = $%d", v)
		case "driver.driver_id":
			add("driver_id = $%d", v)
		case "billed_in":
			add("billed_in = $%d", v)
		case "is_deleted":
			if b, ok := v.(bool); ok {
				deleted = b
			}
		}
	}
	args = append(args, deleted)
	where = append(where, fmt.Sprintf("is_deleted = $%d", len(args)))

	query := `SELECT doc FROM consignments WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Consignment
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var c models.Consignment
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *PostgresConsignmentRepo) Update(c *models.Consignment) error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	vehicleID, driverID := consignmentColumns(c)
	_, err = r.DB.Exec(`
		UPDATE consignments
		SET consignment_number = $2, status = $3, is_deleted = $4,
		    vehicle_id = $5, driver_id = $6, billed_in = $7, doc = $8, updated_at = $9
		WHERE id = $1`,
		c.ID, c.ConsignmentNumber, string(c.Status), c.IsDeleted,
		vehicleID, driverID, nullString(c.BilledIn), doc, now,
	)
	return err
}

func (r *PostgresConsignmentRepo) SoftDelete(id, deletedBy string) error {
	now := time.Now().UTC()
	_, err := r.DB.Exec(`
		UPDATE consignments
		SET is_deleted = TRUE, updated_at = $2,
		    doc = doc || jsonb_build_object(
		        'is_deleted', TRUE,
		        'deleted_at', to_char($2::timestamptz, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
		        'deleted_by', $3::text)
		WHERE id = $1 AND is_deleted = FALSE`,
		id, now, deletedBy,
	)
	return err
}

func (r *PostgresConsignmentRepo) CountActiveForVehicle(vehicleID, excludeConsignmentID string) (int64, error) {
	return r.countActive("vehicle_id", vehicleID, excludeConsignmentID)
}

func (r *PostgresConsignmentRepo) CountActiveForDriver(driverID, excludeConsignmentID string) (int64, error) {
	return r.countActive("driver_id", driverID, excludeConsignmentID)
}

func (r *PostgresConsignmentRepo) countActive(column, resourceID, excludeID string) (int64, error) {
	statuses := make([]string, len(models.ActiveStatuses))
	for i, s := range models.ActiveStatuses {
		statuses[i] = string(s)
	}
	var count int64
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM consignments
		 WHERE `+column+` = $1 AND id <> $2 AND is_deleted = FALSE AND status = ANY($3)`,
		resourceID, excludeID, pq.Array(statuses),
	).Scan(&count)
	return count, err
}

func (r *PostgresConsignmentRepo) FindDeliveredForParty(ids []string, customerID, name, mobile string) ([]*models.Consignment, error) {
	partyMatch := `(doc->'consignor'->>'customer_id' = $2 OR doc->'consignee'->>'customer_id' = $2`
	args := []interface{}{pq.Array(ids), customerID}
	if name != "" && mobile != "" {
		partyMatch += ` OR (doc->'consignor'->>'name' = $3 AND doc->'consignor'->>'mobile' = $4)
		                OR (doc->'consignee'->>'name' = $3 AND doc->'consignee'->>'mobile' = $4)`
		args = append(args, name, mobile)
	}
	partyMatch += `)`

	query := `SELECT doc FROM consignments
		WHERE id = ANY($1) AND status = '` + string(models.StatusDelivered) + `'
		  AND is_deleted = FALSE AND ` + partyMatch

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Consignment
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var c models.Consignment
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
