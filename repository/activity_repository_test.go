package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"impactsTracker/models"
)

func strp(s string) *string   { return &s }
func i64p(v int64) *int64     { return &v }
func f64p(v float64) *float64 { return &v }

func newActivity(date string, hours float64) models.ActivityFields {
	return models.ActivityFields{
		Date:         strp(date),
		ActivityNote: strp("note " + date),
		CategoryID:   i64p(1),
		Hours:        f64p(hours),
	}
}

func TestActivityRepository_CreateListOrdering(t *testing.T) {
	d := openTestDB(t, "activityorder")
	users := NewUserRepository(d)
	repo := NewActivityRepository(d)
	ctx := context.Background()

	owner := seedUser(t, users, "owner@example.com")
	other := seedUser(t, users, "other@example.com")

	first, err := repo.Create(ctx, owner.ID, newActivity("2024-01-10", 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.CategoryName == nil || *first.CategoryName == "" {
		t.Fatalf("expected joined category name: %+v", first)
	}
	if first.Date != "2024-01-10" {
		t.Fatalf("date round trip: %q", first.Date)
	}
	second, err := repo.Create(ctx, owner.ID, newActivity("2024-03-01", 2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Same date as first, created later: must sort before it.
	third, err := repo.Create(ctx, owner.ID, newActivity("2024-01-10", 3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, other.ID, newActivity("2025-01-01", 4)); err != nil {
		t.Fatalf("create other: %v", err)
	}

	list, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 owned activities, got %d", len(list))
	}
	want := []int64{second.ID, third.ID, first.ID}
	for i, a := range list {
		if a.UserID != owner.ID {
			t.Fatalf("leaked activity of user %d", a.UserID)
		}
		if a.ID != want[i] {
			t.Fatalf("order mismatch at %d: got %d want %d", i, a.ID, want[i])
		}
	}
}

func TestActivityRepository_OptionalLookups(t *testing.T) {
	d := openTestDB(t, "activitylookups")
	users := NewUserRepository(d)
	repo := NewActivityRepository(d)
	ctx := context.Background()
	owner := seedUser(t, users, "sim@example.com")

	f := newActivity("2024-05-05", 4.5)
	f.SimulationTypeID = i64p(1)
	f.SimulationParticipants = i64p(12)
	f.FeedbackFormsSubmittedID = i64p(1)
	f.Notes = strp("debrief went well")
	a, err := repo.Create(ctx, owner.ID, f)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.SimulationTypeName == nil || a.FeedbackFormTypeName == nil {
		t.Fatalf("expected simulation and feedback names: %+v", a)
	}
	if a.SimulationParticipants == nil || *a.SimulationParticipants != 12 {
		t.Fatalf("participants: %+v", a.SimulationParticipants)
	}

	plain, err := repo.Create(ctx, owner.ID, newActivity("2024-05-06", 1))
	if err != nil {
		t.Fatalf("create plain: %v", err)
	}
	if plain.SimulationTypeID != nil || plain.SimulationTypeName != nil || plain.Notes != nil {
		t.Fatalf("expected nil optionals: %+v", plain)
	}
}

func TestActivityRepository_PartialUpdateAndOwnership(t *testing.T) {
	d := openTestDB(t, "activityupdate")
	users := NewUserRepository(d)
	repo := NewActivityRepository(d)
	ctx := context.Background()
	owner := seedUser(t, users, "own@example.com")
	intruder := seedUser(t, users, "intruder@example.com")

	f := newActivity("2024-02-02", 2)
	f.Notes = strp("first notes")
	a, err := repo.Create(ctx, owner.ID, f)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, a.ID, owner.ID, models.ActivityFields{Hours: f64p(6.5)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Hours != 6.5 {
		t.Fatalf("hours not updated: %v", updated.Hours)
	}
	if updated.Date != a.Date || updated.ActivityNote != a.ActivityNote || updated.CategoryID != a.CategoryID ||
		updated.Notes == nil || *updated.Notes != "first notes" {
		t.Fatalf("untouched fields changed: before=%+v after=%+v", a, updated)
	}

	if _, err := repo.Update(ctx, a.ID, intruder.ID, models.ActivityFields{Hours: f64p(1)}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for foreign update, got %v", err)
	}
	if err := repo.Delete(ctx, a.ID, intruder.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for foreign delete, got %v", err)
	}
	still, err := repo.GetForUser(ctx, a.ID, owner.ID)
	if err != nil || still == nil || still.Hours != 6.5 {
		t.Fatalf("row should be untouched: %+v err=%v", still, err)
	}
	foreign, err := repo.GetForUser(ctx, a.ID, intruder.ID)
	if err != nil || foreign != nil {
		t.Fatalf("intruder must not see row: %+v err=%v", foreign, err)
	}

	if err := repo.Delete(ctx, a.ID, owner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, a.ID, owner.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("second delete should be ErrNoRows, got %v", err)
	}
}
