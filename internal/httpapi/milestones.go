package httpapi

import (
	"errors"
	"net/http"

	"impactsTracker/internal/utils"
	"impactsTracker/models"
	"impactsTracker/repository"
)

type notesRequest struct {
	Notes models.NotesUpdate `json:"notes"`
}

type MilestoneHTTP struct {
	milestones repository.MilestoneRepositoryI
}

func NewMilestoneHTTP(milestones repository.MilestoneRepositoryI) *MilestoneHTTP {
	return &MilestoneHTTP{milestones: milestones}
}

func (h *MilestoneHTTP) List(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	cats, err := h.milestones.ListWithStatus(r.Context(), p.UserID)
	if err != nil {
		serverError(w, r, err, "list milestones")
		return
	}
	if cats == nil {
		cats = []models.MilestoneCategory{}
	}
	utils.JSON(w, http.StatusOK, cats)
}

// Toggle flips completion for the item. An omitted notes key keeps stored notes.
func (h *MilestoneHTTP) Toggle(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	itemID, fe := pathID(r, "itemId")
	if fe != nil {
		writeFieldErrors(w, *fe)
		return
	}
	var in notesRequest
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	um, err := h.milestones.Toggle(r.Context(), p.UserID, itemID, in.Notes)
	h.respond(w, r, um, err, "toggle milestone")
}

func (h *MilestoneHTTP) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	itemID, fe := pathID(r, "itemId")
	if fe != nil {
		writeFieldErrors(w, *fe)
		return
	}
	var in notesRequest
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	if !in.Notes.Set {
		writeFieldErrors(w, FieldError{Field: "notes", Message: "is required"})
		return
	}
	um, err := h.milestones.UpsertNotes(r.Context(), p.UserID, itemID, in.Notes.Value)
	h.respond(w, r, um, err, "update milestone notes")
}

func (h *MilestoneHTTP) respond(w http.ResponseWriter, r *http.Request, um *models.UserMilestone, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		utils.Error(w, http.StatusNotFound, "Milestone item not found")
	case err != nil:
		serverError(w, r, err, op)
	default:
		utils.JSON(w, http.StatusOK, um)
	}
}
