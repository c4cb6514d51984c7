package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"kvltransport/models"
)

type PostgresVehicleRepo struct {
	DB *sql.DB
}

func NewPostgresVehicleRepo(db *sql.DB) *PostgresVehicleRepo {
	return &PostgresVehicleRepo{DB: db}
}

func (r *PostgresVehicleRepo) Create(v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO vehicles (id, vehicle_number, status, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.VehicleNumber, string(v.Status), doc, v.CreatedAt,
	)
	return err
}

func (r *PostgresVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	return r.scanOne(`SELECT doc FROM vehicles WHERE id = $1`, id)
}

func (r *PostgresVehicleRepo) GetByNumber(number string) (*models.Vehicle, error) {
	return r.scanOne(`SELECT doc FROM vehicles WHERE vehicle_number = $1`, number)
}

func (r *PostgresVehicleRepo) scanOne(query string, args ...interface{}) (*models.Vehicle, error) {
	var doc []byte
	err := r.DB.QueryRow(query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var v models.Vehicle
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresVehicleRepo) List() ([]*models.Vehicle, error) {
	rows, err := r.DB.Query(`SELECT doc FROM vehicles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Vehicle
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var v models.Vehicle
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *PostgresVehicleRepo) Update(v *models.Vehicle) error {
	now := time.Now().UTC()
	v.UpdatedAt = &now
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		UPDATE vehicles SET vehicle_number = $2, status = $3, doc = $4, updated_at = $5
		WHERE id = $1`,
		v.ID, v.VehicleNumber, string(v.Status), doc, now,
	)
	return err
}

func (r *PostgresVehicleRepo) SetStatus(id string, status models.VehicleStatus) error {
	_, err := r.DB.Exec(`
		UPDATE vehicles
		SET status = $2, doc = doc || jsonb_build_object('status', $2::text), updated_at = $3
		WHERE id = $1`,
		id, string(status), time.Now().UTC(),
	)
	return err
}

type PostgresDriverRepo struct {
	DB *sql.DB
}

func NewPostgresDriverRepo(db *sql.DB) *PostgresDriverRepo {
	return &PostgresDriverRepo{DB: db}
}

func (r *PostgresDriverRepo) Create(d *models.Driver) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO drivers (id, mobile, status, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Mobile, string(d.Status), doc, d.CreatedAt,
	)
	return err
}

func (r *PostgresDriverRepo) GetByID(id string) (*models.Driver, error) {
	return r.scanOne(`SELECT doc FROM drivers WHERE id = $1`, id)
}

func (r *PostgresDriverRepo) GetByMobile(mobile string) (*models.Driver, error) {
	return r.scanOne(`SELECT doc FROM drivers WHERE mobile = $1`, mobile)
}

func (r *PostgresDriverRepo) scanOne(query string, args ...interface{}) (*models.Driver, error) {
	var doc []byte
	err := r.DB.QueryRow(query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var d models.Driver
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresDriverRepo) List() ([]*models.Driver, error) {
	rows, err := r.DB.Query(`SELECT doc FROM drivers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Driver
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var d models.Driver
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *PostgresDriverRepo) Update(d *models.Driver) error {
	now := time.Now().UTC()
	d.UpdatedAt = &now
	doc, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		UPDATE drivers SET mobile = $2, status = $3, doc = $4, updated_at = $5
		WHERE id = $1`,
		d.ID, d.Mobile, string(d.Status), doc, now,
	)
	return err
}

func (r *PostgresDriverRepo) SetStatus(id string, status models.DriverStatus, currentVehicle *string) error {
	patch := map[string]interface{}{"status": string(status)}
	if currentVehicle != nil {
		patch["current_vehicle"] = *currentVehicle
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	query := `UPDATE drivers SET status = $2, doc = doc || $3::jsonb, updated_at = $4 WHERE id = $1`
	if currentVehicle == nil {
		query = `UPDATE drivers SET status = $2, doc = (doc - 'current_vehicle') || $3::jsonb, updated_at = $4 WHERE id = $1`
	}
	_, err = r.DB.Exec(query, id, string(status), patchJSON, time.Now().UTC())
	return err
}
