package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"impactsTracker/internal/db"
	"impactsTracker/models"
)

type ReadinessRepository struct {
	db *db.DB
}

func NewReadinessRepository(d *db.DB) *ReadinessRepository {
	return &ReadinessRepository{db: d}
}

func (r *ReadinessRepository) Get(ctx context.Context, userID int64) (*models.ReadinessAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ra, err := scanReadiness(r.db.QueryRowContext(ctx,
		`SELECT user_id, document, updated_at FROM readiness_assessments WHERE user_id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ra, err
}

// Save replaces the user's document.
func (r *ReadinessRepository) Save(ctx context.Context, userID int64, doc json.RawMessage) (*models.ReadinessAssessment, error) {
	if !json.Valid(doc) {
		return nil, errors.New("readiness document is not valid json")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanReadiness(r.db.QueryRowContext(ctx, `INSERT INTO readiness_assessments (user_id, document, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (user_id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
RETURNING user_id, document, updated_at`, userID, string(doc)))
}

func scanReadiness(s rowScanner) (*models.ReadinessAssessment, error) {
	var ra models.ReadinessAssessment
	var doc []byte
	var updated nullTime
	if err := s.Scan(&ra.UserID, &doc, &updated); err != nil {
		return nil, err
	}
	ra.Document = json.RawMessage(doc)
	ra.UpdatedAt = updated.Time
	return &ra, nil
}
