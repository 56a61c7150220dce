package repository

import (
	"context"
	"encoding/json"

	"impactsTracker/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ActivityRepositoryI defines owner-scoped operations on activities.
type ActivityRepositoryI interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Activity, error)
	GetForUser(ctx context.Context, id, userID int64) (*models.Activity, error)
	Create(ctx context.Context, userID int64, f models.ActivityFields) (*models.Activity, error)
	Update(ctx context.Context, id, userID int64, f models.ActivityFields) (*models.Activity, error)
	Delete(ctx context.Context, id, userID int64) error
}

// LookupRepositoryI defines operations on one reference table.
type LookupRepositoryI interface {
	List(ctx context.Context) ([]models.Lookup, error)
	GetByID(ctx context.Context, id int64) (*models.Lookup, error)
	Create(ctx context.Context, name string) (*models.Lookup, error)
	Update(ctx context.Context, id int64, name string) (*models.Lookup, error)
	Delete(ctx context.Context, id int64) error
}

// MilestoneRepositoryI defines milestone status reads and completion upserts.
type MilestoneRepositoryI interface {
	ListWithStatus(ctx context.Context, userID int64) ([]models.MilestoneCategory, error)
	Toggle(ctx context.Context, userID, itemID int64, notes models.NotesUpdate) (*models.UserMilestone, error)
	UpsertNotes(ctx context.Context, userID, itemID int64, notes *string) (*models.UserMilestone, error)
}

// ReadinessRepositoryI stores one readiness document per user.
type ReadinessRepositoryI interface {
	Get(ctx context.Context, userID int64) (*models.ReadinessAssessment, error)
	Save(ctx context.Context, userID int64, doc json.RawMessage) (*models.ReadinessAssessment, error)
}
