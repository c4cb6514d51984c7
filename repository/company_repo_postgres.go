package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"kvltransport/models"
)

type PostgresCompanyRepo struct {
	DB *sql.DB
}

func NewPostgresCompanyRepo(db *sql.DB) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{DB: db}
}

func (r *PostgresCompanyRepo) SaveProfile(profile *models.CompanyProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO company_profile (id, doc, created_at) VALUES ($1, $2, $3)`,
		profile.ID, doc, profile.CreatedAt,
	)
	return err
}

func (r *PostgresCompanyRepo) GetProfile() (*models.CompanyProfile, error) {
	var doc []byte
	err := r.DB.QueryRow(
		`SELECT doc FROM company_profile ORDER BY created_at DESC LIMIT 1`,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var profile models.CompanyProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
