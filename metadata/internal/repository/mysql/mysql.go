package mysql

import (
	"context"
	"database/sql"
	"errors"

	// Register the mysql driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/moviedex/moviedex/metadata/internal/repository"
	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Repository defines a MySQL-based movie record repository.
type Repository struct {
	db *sql.DB
}

// New creates a new MySQL-based repository.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	return &Repository{db}, nil
}

// Get retrieves a movie record by its external id.
func (r *Repository) Get(ctx context.Context, id string) (*model.MovieRecord, error) {
	var record model.MovieRecord
	row := r.db.QueryRowContext(ctx, "SELECT external_id, title, year, synopsis, rating FROM movies WHERE external_id = ?", id)
	if err := row.Scan(&record.ExternalID, &record.Title, &record.Year, &record.Synopsis, &record.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Put adds or replaces the movie record for a given external id.
func (r *Repository) Put(ctx context.Context, id string, record *model.MovieRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (external_id, title, year, synopsis, rating) VALUES (?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE title = VALUES(title), year = VALUES(year), synopsis = VALUES(synopsis), rating = VALUES(rating)",
		id, record.Title, record.Year, record.Synopsis, record.Rating)
	return err
}

// List returns all stored movie records in unspecified order.
func (r *Repository) List(ctx context.Context) ([]model.MovieRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT external_id, title, year, synopsis, rating FROM movies")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.MovieRecord
	for rows.Next() {
		var record model.MovieRecord
		if err := rows.Scan(&record.ExternalID, &record.Title, &record.Year, &record.Synopsis, &record.Rating); err != nil {
			return nil, err
		}
		res = append(res, record)
	}
	return res, rows.Err()
}

// Clear removes all stored movie records and returns the number removed.
// Clearing an empty table is a no-op, not an error.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
