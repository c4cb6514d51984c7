package repository

import (
	"database/sql"
)

type PostgresSequenceRepo struct {
	DB *sql.DB
}

func NewPostgresSequenceRepo(db *sql.DB) *PostgresSequenceRepo {
	return &PostgresSequenceRepo{DB: db}
}

// Next relies on the upsert being atomic; concurrent callers each get a
// distinct value.
func (r *PostgresSequenceRepo) Next(name string, year int) (int64, error) {
	var value int64
	err := r.DB.QueryRow(`
		INSERT INTO sequences (name, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (name, year)
		DO UPDATE SET value = sequences.value + 1
		RETURNING value`,
		name, year,
	).Scan(&value)
	return value, err
}
