package models

// Lookup is a row of one of the admin-managed reference tables
// (activity categories, simulation types, feedback form types).
type Lookup struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
