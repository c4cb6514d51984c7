package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"kvltransport/models"
)

type PostgresCustomerRepo struct {
	DB *sql.DB
}

func NewPostgresCustomerRepo(db *sql.DB) *PostgresCustomerRepo {
	return &PostgresCustomerRepo{DB: db}
}

func (r *PostgresCustomerRepo) Create(c *models.Customer) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO customers (id, is_deleted, doc, created_at)
		VALUES ($1, FALSE, $2, $3)`,
		c.ID, doc, c.CreatedAt,
	)
	return err
}

func (r *PostgresCustomerRepo) GetByID(id string) (*models.Customer, error) {
	var doc []byte
	err := r.DB.QueryRow(
		`SELECT doc FROM customers WHERE id = $1 AND is_deleted = FALSE`, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var c models.Customer
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCustomerRepo) List() ([]*models.Customer, error) {
	rows, err := r.DB.Query(`SELECT doc FROM customers WHERE is_deleted = FALSE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Customer
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var c models.Customer
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *PostgresCustomerRepo) Update(c *models.Customer) error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		UPDATE customers SET is_deleted = $2, doc = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.IsDeleted, doc, now,
	)
	return err
}

func (r *PostgresCustomerRepo) SoftDelete(id string) error {
	now := time.Now().UTC()
	_, err := r.DB.Exec(`
		UPDATE customers
		SET is_deleted = TRUE,
		    doc = doc || jsonb_build_object(
		        'is_deleted', TRUE,
		        'deleted_at', to_char($2::timestamptz, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')),
		    updated_at = $2
		WHERE id = $1 AND is_deleted = FALSE`,
		id, now,
	)
	return err
}
