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

// ActivityRepository persists activities. Every read and write is scoped to
// the owning user.
type ActivityRepository struct {
	db *db.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(d *db.DB) *ActivityRepository {
	return &ActivityRepository{db: d}
}

// The date is cast to text so both drivers yield YYYY-MM-DD.
const activitySelect = `SELECT a.id, a.user_id, CAST(a.date AS TEXT), a.activity_note, a.category_id, a.hours,
       a.simulation_type_id, a.simulation_participants, a.feedback_forms_submitted_id, a.notes, a.created_at,
       c.name, st.name, ff.name
FROM activities a
LEFT JOIN activity_categories c ON a.category_id = c.id
LEFT JOIN simulation_types st ON a.simulation_type_id = st.id
LEFT JOIN feedback_form_types ff ON a.feedback_forms_submitted_id = ff.id`

// ListByUser returns the user's activities, newest date first, then newest entry.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, activitySelect+`
WHERE a.user_id = ?
ORDER BY a.date DESC, a.created_at DESC, a.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetForUser fetches one activity if it exists and belongs to userID.
func (r *ActivityRepository) GetForUser(ctx context.Context, id, userID int64) (*models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	a, err := scanActivity(r.db.QueryRowContext(ctx, activitySelect+` WHERE a.id = ? AND a.user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// Create inserts an activity for userID and returns it with lookup names resolved.
func (r *ActivityRepository) Create(ctx context.Context, userID int64, f models.ActivityFields) (*models.Activity, error) {
	if f.Date == nil || f.ActivityNote == nil || f.CategoryID == nil || f.Hours == nil {
		return nil, errors.New("date, activity note, category and hours are required")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `INSERT INTO activities
    (user_id, date, activity_note, category_id, hours, simulation_type_id, simulation_participants, feedback_forms_submitted_id, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID, *f.Date, *f.ActivityNote, *f.CategoryID, *f.Hours,
		f.SimulationTypeID, f.SimulationParticipants, f.FeedbackFormsSubmittedID, f.Notes).Scan(&id)
	if err != nil {
		return nil, err
	}
	a, err := r.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("created activity not found: id=%d", id)
	}
	return a, nil
}

// Update overwrites only the non-nil fields. It returns sql.ErrNoRows when no
// activity with id is owned by userID.
func (r *ActivityRepository) Update(ctx context.Context, id, userID int64, f models.ActivityFields) (*models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE activities SET
    date = COALESCE(?, date),
    activity_note = COALESCE(?, activity_note),
    category_id = COALESCE(?, category_id),
    hours = COALESCE(?, hours),
    simulation_type_id = COALESCE(?, simulation_type_id),
    simulation_participants = COALESCE(?, simulation_participants),
    feedback_forms_submitted_id = COALESCE(?, feedback_forms_submitted_id),
    notes = COALESCE(?, notes)
WHERE id = ? AND user_id = ?`,
		f.Date, f.ActivityNote, f.CategoryID, f.Hours,
		f.SimulationTypeID, f.SimulationParticipants, f.FeedbackFormsSubmittedID, f.Notes,
		id, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}
	a, err := r.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

// Delete removes an activity owned by userID, or returns sql.ErrNoRows.
func (r *ActivityRepository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(s rowScanner) (*models.Activity, error) {
	var a models.Activity
	var simType, participants, feedback sql.NullInt64
	var notes, catName, simName, feedbackName sql.NullString
	var created nullTime
	if err := s.Scan(&a.ID, &a.UserID, &a.Date, &a.ActivityNote, &a.CategoryID, &a.Hours,
		&simType, &participants, &feedback, &notes, &created,
		&catName, &simName, &feedbackName); err != nil {
		return nil, err
	}
	a.SimulationTypeID = int64Ptr(simType)
	a.SimulationParticipants = int64Ptr(participants)
	a.FeedbackFormsSubmittedID = int64Ptr(feedback)
	a.Notes = stringPtr(notes)
	a.CreatedAt = created.Time
	a.CategoryName = stringPtr(catName)
	a.SimulationTypeName = stringPtr(simName)
	a.FeedbackFormTypeName = stringPtr(feedbackName)
	return &a, nil
}
