package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"impactsTracker/internal/utils"
	"impactsTracker/models"
	"impactsTracker/repository"
)

type lookupRequest struct {
	Name string `json:"name" validate:"required,trimmed"`
}

// LookupHTTP serves one reference table. label is the singular display name
// used in messages, e.g. "Category".
type LookupHTTP struct {
	repo  repository.LookupRepositoryI
	label string
}

func NewLookupHTTP(repo repository.LookupRepositoryI, label string) *LookupHTTP {
	return &LookupHTTP{repo: repo, label: label}
}

func (h *LookupHTTP) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		serverError(w, r, err, "list "+strings.ToLower(h.label))
		return
	}
	if list == nil {
		list = []models.Lookup{}
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *LookupHTTP) Create(w http.ResponseWriter, r *http.Request) {
	var in lookupRequest
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	l, err := h.repo.Create(r.Context(), strings.TrimSpace(in.Name))
	if err != nil {
		serverError(w, r, err, "create "+strings.ToLower(h.label))
		return
	}
	utils.JSON(w, http.StatusCreated, l)
}

func (h *LookupHTTP) Update(w http.ResponseWriter, r *http.Request) {
	id, fe := pathID(r, "id")
	if fe != nil {
		writeFieldErrors(w, *fe)
		return
	}
	var in lookupRequest
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	l, err := h.repo.Update(r.Context(), id, strings.TrimSpace(in.Name))
	if errors.Is(err, sql.ErrNoRows) {
		utils.Error(w, http.StatusNotFound, h.label+" not found")
		return
	}
	if err != nil {
		serverError(w, r, err, "update "+strings.ToLower(h.label))
		return
	}
	utils.JSON(w, http.StatusOK, l)
}

func (h *LookupHTTP) Delete(w http.ResponseWriter, r *http.Request) {
	id, fe := pathID(r, "id")
	if fe != nil {
		writeFieldErrors(w, *fe)
		return
	}
	err := h.repo.Delete(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Error(w, http.StatusNotFound, h.label+" not found")
		return
	}
	if err != nil {
		serverError(w, r, err, "delete "+strings.ToLower(h.label))
		return
	}
	utils.Message(w, h.label+" removed")
}
