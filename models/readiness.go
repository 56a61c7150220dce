package models

import (
	"encoding/json"
	"time"
)

// ReadinessAssessment is the per-user survey document. The body is opaque JSON.
type ReadinessAssessment struct {
	UserID    int64           `db:"user_id" json:"userId"`
	Document  json.RawMessage `db:"document" json:"document"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}
