package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"impactsTracker/internal/db"
	"impactsTracker/models"
)

// LookupTable names one of the reference tables. Only these constants are
// interpolated into SQL.
type LookupTable string

const (
	ActivityCategories LookupTable = "activity_categories"
	SimulationTypes    LookupTable = "simulation_types"
	FeedbackFormTypes  LookupTable = "feedback_form_types"
)

// LookupRepository serves id/name reference rows from a single table.
type LookupRepository struct {
	db    *db.DB
	table LookupTable
}

func NewLookupRepository(d *db.DB, table LookupTable) *LookupRepository {
	switch table {
	case ActivityCategories, SimulationTypes, FeedbackFormTypes:
	default:
		panic(fmt.Sprintf("unknown lookup table %q", table))
	}
	return &LookupRepository{db: d, table: table}
}

// List returns all rows ordered by name.
func (r *LookupRepository) List(ctx context.Context) ([]models.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name, id`, r.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Lookup{}
	for rows.Next() {
		var l models.Lookup
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LookupRepository) GetByID(ctx context.Context, id int64) (*models.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var l models.Lookup
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT id, name FROM %s WHERE id = ?`, r.table), id).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LookupRepository) Create(ctx context.Context, name string) (*models.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var l models.Lookup
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES (?) RETURNING id, name`, r.table), name).Scan(&l.ID, &l.Name)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Update renames a row. It returns sql.ErrNoRows when id does not exist.
func (r *LookupRepository) Update(ctx context.Context, id int64, name string) (*models.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var l models.Lookup
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`UPDATE %s SET name = ? WHERE id = ? RETURNING id, name`, r.table), name, id).Scan(&l.ID, &l.Name)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete removes a row. It returns sql.ErrNoRows when id does not exist.
func (r *LookupRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
