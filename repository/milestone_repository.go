package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"impactsTracker/internal/db"
	"impactsTracker/models"
)

// ErrItemNotFound is returned when a completion targets a milestone item that does not exist.
var ErrItemNotFound = errors.New("milestone item not found")

// MilestoneRepository reads milestone definitions with per-user status and
// maintains user_milestones.
type MilestoneRepository struct {
	db *db.DB
}

func NewMilestoneRepository(d *db.DB) *MilestoneRepository {
	return &MilestoneRepository{db: d}
}

const milestoneStatusQuery = `SELECT mc.id, mc.name, mc.display_order,
       mi.id, mi.title, mi.description, mi.link_url, mi.link_text, mi.display_order,
       COALESCE(um.completed, FALSE), um.completed_at, um.notes
FROM milestone_categories mc
LEFT JOIN milestone_items mi ON mi.category_id = mc.id
LEFT JOIN user_milestones um ON um.milestone_item_id = mi.id AND um.user_id = ?
ORDER BY mc.display_order, mc.id, mi.display_order, mi.id`

// ListWithStatus returns every category with its items and the user's completion state.
func (r *MilestoneRepository) ListWithStatus(ctx context.Context, userID int64) ([]models.MilestoneCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, milestoneStatusQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []models.MilestoneRow
	for rows.Next() {
		var row models.MilestoneRow
		var itemID sql.NullInt64
		var title, desc, linkURL, linkText, notes sql.NullString
		var itemOrder sql.NullInt64
		var completedAt nullTime
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.CategoryOrder,
			&itemID, &title, &desc, &linkURL, &linkText, &itemOrder,
			&row.Completed, &completedAt, &notes); err != nil {
			return nil, err
		}
		row.ItemID = int64Ptr(itemID)
		row.ItemTitle = stringPtr(title)
		row.ItemDescription = stringPtr(desc)
		row.ItemLinkURL = stringPtr(linkURL)
		row.ItemLinkText = stringPtr(linkText)
		if itemOrder.Valid {
			v := int(itemOrder.Int64)
			row.ItemDisplayOrder = &v
		}
		row.CompletedAt = completedAt.Ptr()
		row.Notes = stringPtr(notes)
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return FoldMilestoneRows(flat), nil
}

// ItemExists reports whether a milestone item with the given id is defined.
func (r *MilestoneRepository) ItemExists(ctx context.Context, itemID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM milestone_items WHERE id = ?`, itemID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

const completionColumns = `id, user_id, milestone_item_id, completed, completed_at, notes`

// Toggle flips the user's completion for an item in a single upsert. The
// first toggle creates the row as completed. completed_at is stamped when the
// new state is completed and cleared otherwise. Notes are only written when
// notes.Set is true.
func (r *MilestoneRepository) Toggle(ctx context.Context, userID, itemID int64, notes models.NotesUpdate) (*models.UserMilestone, error) {
	if err := r.requireItem(ctx, itemID); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `INSERT INTO user_milestones (user_id, milestone_item_id, completed, completed_at, notes)
VALUES (?, ?, TRUE, CURRENT_TIMESTAMP, ?)
ON CONFLICT (user_id, milestone_item_id) DO UPDATE SET
    completed = NOT user_milestones.completed,
    completed_at = CASE WHEN user_milestones.completed THEN NULL ELSE CURRENT_TIMESTAMP END,
    notes = CASE WHEN ? THEN excluded.notes ELSE user_milestones.notes END
RETURNING `+completionColumns, userID, itemID, notes.Value, notes.Set)
	return scanCompletion(row)
}

// UpsertNotes writes notes for (user, item), creating an incomplete row if
// needed. Completion state is never changed.
func (r *MilestoneRepository) UpsertNotes(ctx context.Context, userID, itemID int64, notes *string) (*models.UserMilestone, error) {
	if err := r.requireItem(ctx, itemID); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `INSERT INTO user_milestones (user_id, milestone_item_id, completed, notes)
VALUES (?, ?, FALSE, ?)
ON CONFLICT (user_id, milestone_item_id) DO UPDATE SET notes = excluded.notes
RETURNING `+completionColumns, userID, itemID, notes)
	return scanCompletion(row)
}

// Get returns the completion row for (user, item), or nil when none exists.
func (r *MilestoneRepository) Get(ctx context.Context, userID, itemID int64) (*models.UserMilestone, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	um, err := scanCompletion(r.db.QueryRowContext(ctx,
		`SELECT `+completionColumns+` FROM user_milestones WHERE user_id = ? AND milestone_item_id = ?`, userID, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return um, err
}

func (r *MilestoneRepository) requireItem(ctx context.Context, itemID int64) error {
	ok, err := r.ItemExists(ctx, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemNotFound
	}
	return nil
}

func scanCompletion(s rowScanner) (*models.UserMilestone, error) {
	var um models.UserMilestone
	var completedAt nullTime
	var notes sql.NullString
	if err := s.Scan(&um.ID, &um.UserID, &um.MilestoneItemID, &um.Completed, &completedAt, &notes); err != nil {
		return nil, err
	}
	um.CompletedAt = completedAt.Ptr()
	um.Notes = stringPtr(notes)
	return &um, nil
}
