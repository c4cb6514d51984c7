package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kvltransport/models"
)

type PostgresChalanRepo struct {
	DB *sql.DB
}

func NewPostgresChalanRepo(db *sql.DB) *PostgresChalanRepo {
	return &PostgresChalanRepo{DB: db}
}

func (r *PostgresChalanRepo) Create(ch *models.LoadChalan) error {
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now().UTC()
	}
	ch.RecalculateTotals()
	doc, err := json.Marshal(ch)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO load_chalans (id, chalan_number, status, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ch.ID, ch.ChalanNumber, string(ch.Status), doc, ch.CreatedAt,
	)
	return err
}

func (r *PostgresChalanRepo) GetByID(id string) (*models.LoadChalan, error) {
	return r.scanOne(`SELECT doc FROM load_chalans WHERE id = $1`, id)
}

func (r *PostgresChalanRepo) GetByNumber(number string) (*models.LoadChalan, error) {
	return r.scanOne(`SELECT doc FROM load_chalans WHERE chalan_number = $1`, number)
}

func (r *PostgresChalanRepo) scanOne(query string, args ...interface{}) (*models.LoadChalan, error) {
	var doc []byte
	err := r.DB.QueryRow(query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var ch models.LoadChalan
	if err := json.Unmarshal(doc, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *PostgresChalanRepo) List(filters map[string]interface{}) ([]*models.LoadChalan, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	for k, v := range filters {
		switch k {
		case "status":
			args = append(args, fmt.Sprintf("%v", v))
			where = append(where, fmt.Sprintf("status = $%d", len(args)))
		case "chalan_number":
			args = append(args, v)
			where = append(where, fmt.Sprintf("chalan_number = $%d", len(args)))
		case "vehicle.vehicle_id":
			args = append(args, fmt.Sprintf("%v", v))
			where = append(where, fmt.Sprintf("doc->'vehicle'->>'vehicle_id' = $%d", len(args)))
		}
	}

	rows, err := r.DB.Query(
		`SELECT doc FROM load_chalans WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.LoadChalan
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var ch models.LoadChalan
		if err := json.Unmarshal(doc, &ch); err != nil {
			return nil, err
		}
		out = append(out, &ch)
	}
	return out, rows.Err()
}

func (r *PostgresChalanRepo) Update(ch *models.LoadChalan) error {
	now := time.Now().UTC()
	ch.UpdatedAt = &now
	ch.RecalculateTotals()
	doc, err := json.Marshal(ch)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		UPDATE load_chalans SET chalan_number = $2, status = $3, doc = $4, updated_at = $5
		WHERE id = $1`,
		ch.ID, ch.ChalanNumber, string(ch.Status), doc, now,
	)
	return err
}

func (r *PostgresChalanRepo) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM load_chalans WHERE id = $1`, id)
	return err
}
