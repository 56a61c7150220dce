package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"impactsTracker/internal/utils"
	"impactsTracker/models"
	"impactsTracker/repository"
)

type activityCreate struct {
	Date                     *string  `json:"date" validate:"required,isodate"`
	ActivityNote             *string  `json:"activityNote" validate:"required,trimmed"`
	CategoryID               *int64   `json:"categoryId" validate:"required"`
	Hours                    *float64 `json:"hours" validate:"required,between=0:24"`
	SimulationTypeID         *int64   `json:"simulationTypeId"`
	SimulationParticipants   *int64   `json:"simulationParticipants" validate:"omitempty,between=0:100"`
	FeedbackFormsSubmittedID *int64   `json:"feedbackFormsSubmittedId"`
	Notes                    *string  `json:"notes"`
}

type activityPatch struct {
	Date                     *string  `json:"date" validate:"omitempty,isodate"`
	ActivityNote             *string  `json:"activityNote" validate:"omitempty,trimmed"`
	CategoryID               *int64   `json:"categoryId"`
	Hours                    *float64 `json:"hours" validate:"omitempty,between=0:24"`
	SimulationTypeID         *int64   `json:"simulationTypeId"`
	SimulationParticipants   *int64   `json:"simulationParticipants" validate:"omitempty,between=0:100"`
	FeedbackFormsSubmittedID *int64   `json:"feedbackFormsSubmittedId"`
	Notes                    *string  `json:"notes"`
}

func (p activityPatch) fields() models.ActivityFields {
	f := models.ActivityFields{
		Date:                     p.Date,
		CategoryID:               p.CategoryID,
		Hours:                    p.Hours,
		SimulationTypeID:         p.SimulationTypeID,
		SimulationParticipants:   p.SimulationParticipants,
		FeedbackFormsSubmittedID: p.FeedbackFormsSubmittedID,
		Notes:                    p.Notes,
	}
	if p.ActivityNote != nil {
		note := strings.TrimSpace(*p.ActivityNote)
		f.ActivityNote = &note
	}
	return f
}

// ActivityHTTP serves the caller's own activity log.
type ActivityHTTP struct {
	activities      repository.ActivityRepositoryI
	categories      repository.LookupRepositoryI
	simulationTypes repository.LookupRepositoryI
	feedbackTypes   repository.LookupRepositoryI
}

func NewActivityHTTP(activities repository.ActivityRepositoryI, categories, simulationTypes, feedbackTypes repository.LookupRepositoryI) *ActivityHTTP {
	return &ActivityHTTP{
		activities:      activities,
		categories:      categories,
		simulationTypes: simulationTypes,
		feedbackTypes:   feedbackTypes,
	}
}

func (h *ActivityHTTP) List(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.activities.ListByUser(r.Context(), p.UserID)
	if err != nil {
		serverError(w, r, err, "list activities")
		return
	}
	if list == nil {
		list = []models.Activity{}
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *ActivityHTTP) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var in activityCreate
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	f := activityPatch(in).fields()
	errs, err := h.checkReferences(r.Context(), f)
	if err != nil {
		serverError(w, r, err, "check activity references")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	a, err := h.activities.Create(r.Context(), p.UserID, f)
	if err != nil {
		serverError(w, r, err, "create activity")
		return
	}
	utils.JSON(w, http.StatusCreated, a)
}

func (h *ActivityHTTP) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, fe := pathID(r, "id")
	if fe != nil {
		writeFieldErrors(w, *fe)
		return
	}
	var in activityPatch
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	existing, err := h.activities.GetForUser(r.Context(), id, p.UserID)
	if err != nil {
		serverError(w, r, err, "load activity")
		return
	}
	if existing == nil {
		utils.Error(w, http.StatusNotFound, "Activity not found")
		return
	}
	f := in.fields()
	errs, err := h.checkReferences(r.Context(), f)
	if err != nil {
		serverError(w, r, err, "check activity references")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	a, err := h.activities.Update(r.Context(), id, p.UserID, f)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Error(w, http.StatusNotFound, "Activity not found")
		return
	}
	if err != nil {
		serverError(w, r, err, "update activity")
		return
	}
	utils.JSON(w, http.StatusOK, a)
}

func (h *ActivityHTTP) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, fe := pathID(r, "id")
	if fe != nil {
		writeFieldErrors(w, *fe)
		return
	}
	err := h.activities.Delete(r.Context(), id, p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Error(w, http.StatusNotFound, "Activity not found")
		return
	}
	if err != nil {
		serverError(w, r, err, "delete activity")
		return
	}
	utils.Message(w, "Activity removed")
}

// checkReferences reports supplied lookup ids that do not exist.
func (h *ActivityHTTP) checkReferences(ctx context.Context, f models.ActivityFields) ([]FieldError, error) {
	refs := []struct {
		field string
		id    *int64
		repo  repository.LookupRepositoryI
		what  string
	}{
		{"categoryId", f.CategoryID, h.categories, "category"},
		{"simulationTypeId", f.SimulationTypeID, h.simulationTypes, "simulation type"},
		{"feedbackFormsSubmittedId", f.FeedbackFormsSubmittedID, h.feedbackTypes, "feedback form type"},
	}
	var out []FieldError
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		l, err := ref.repo.GetByID(ctx, *ref.id)
		if err != nil {
			return nil, err
		}
		if l == nil {
			out = append(out, FieldError{Field: ref.field, Message: "must reference an existing " + ref.what, Value: *ref.id})
		}
	}
	return out, nil
}
