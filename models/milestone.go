package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// MilestoneCategory groups milestone items for display. Items keep their
// display order.
type MilestoneCategory struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	DisplayOrder int             `json:"displayOrder"`
	Items        []MilestoneItem `json:"items"`
}

// MilestoneItem is a milestone definition merged with the caller's completion state.
type MilestoneItem struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	LinkURL      *string    `json:"linkUrl"`
	LinkText     *string    `json:"linkText"`
	DisplayOrder int        `json:"displayOrder"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completedAt"`
	Notes        *string    `json:"notes"`
}

// MilestoneRow is one flat row of the category → item → completion join.
// ItemID is nil for a category without items.
type MilestoneRow struct {
	CategoryID       int64
	CategoryName     string
	CategoryOrder    int
	ItemID           *int64
	ItemTitle        *string
	ItemDescription  *string
	ItemLinkURL      *string
	ItemLinkText     *string
	ItemDisplayOrder *int
	Completed        bool
	CompletedAt      *time.Time
	Notes            *string
}

// UserMilestone is the per-user completion record for one milestone item.
type UserMilestone struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	MilestoneItemID int64      `db:"milestone_item_id" json:"milestone_item_id"`
	Completed       bool       `db:"completed" json:"completed"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at"`
	Notes           *string    `db:"notes" json:"notes"`
}

// NotesUpdate distinguishes an absent notes field from an explicit null.
// Set is false when the field was omitted, in which case stored notes are kept.
// With Set true, Value overwrites them (nil clears).
type NotesUpdate struct {
	Set   bool
	Value *string
}

// KeepNotes leaves stored notes unchanged.
func KeepNotes() NotesUpdate { return NotesUpdate{} }

// SetNotes overwrites stored notes; nil clears them.
func SetNotes(v *string) NotesUpdate { return NotesUpdate{Set: true, Value: v} }

func (n *NotesUpdate) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
