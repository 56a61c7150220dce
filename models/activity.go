package models

import "time"

// Activity is a logged coordinator activity, owned by exactly one user.
// Lookup names are filled from LEFT JOINs and are nil when the reference is unset.
type Activity struct {
	ID                       int64     `db:"id" json:"id"`
	UserID                   int64     `db:"user_id" json:"user_id"`
	Date                     string    `db:"date" json:"date"`
	ActivityNote             string    `db:"activity_note" json:"activity_note"`
	CategoryID               int64     `db:"category_id" json:"category_id"`
	Hours                    float64   `db:"hours" json:"hours"`
	SimulationTypeID         *int64    `db:"simulation_type_id" json:"simulation_type_id"`
	SimulationParticipants   *int64    `db:"simulation_participants" json:"simulation_participants"`
	FeedbackFormsSubmittedID *int64    `db:"feedback_forms_submitted_id" json:"feedback_forms_submitted_id"`
	Notes                    *string   `db:"notes" json:"notes"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`

	CategoryName         *string `db:"category_name" json:"category_name"`
	SimulationTypeName   *string `db:"simulation_type_name" json:"simulation_type_name"`
	FeedbackFormTypeName *string `db:"feedback_form_type_name" json:"feedback_form_type_name"`
}

// ActivityFields carries column values for inserts and partial updates.
// A nil field is left untouched on update.
type ActivityFields struct {
	Date                     *string
	ActivityNote             *string
	CategoryID               *int64
	Hours                    *float64
	SimulationTypeID         *int64
	SimulationParticipants   *int64
	FeedbackFormsSubmittedID *int64
	Notes                    *string
}
