package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"impactsTracker/internal/utils"
	"impactsTracker/repository"
)

// ReadinessHTTP stores one opaque readiness-assessment document per user.
type ReadinessHTTP struct {
	repo repository.ReadinessRepositoryI
}

func NewReadinessHTTP(repo repository.ReadinessRepositoryI) *ReadinessHTTP {
	return &ReadinessHTTP{repo: repo}
}

// Get answers {} until the user has saved a document.
func (h *ReadinessHTTP) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	ra, err := h.repo.Get(r.Context(), p.UserID)
	if err != nil {
		serverError(w, r, err, "load readiness assessment")
		return
	}
	if ra == nil {
		utils.JSON(w, http.StatusOK, json.RawMessage(`{}`))
		return
	}
	utils.JSON(w, http.StatusOK, ra.Document)
}

func (h *ReadinessHTTP) Save(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeFieldErrors(w, FieldError{Field: "body", Message: "is too large"})
			return
		}
		serverError(w, r, err, "read readiness assessment")
		return
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		writeFieldErrors(w, FieldError{Field: "body", Message: "must be a JSON object"})
		return
	}
	var doc bytes.Buffer
	if err := json.Compact(&doc, body); err != nil {
		writeFieldErrors(w, FieldError{Field: "body", Message: "must be a JSON object"})
		return
	}
	ra, err := h.repo.Save(r.Context(), p.UserID, doc.Bytes())
	if err != nil {
		serverError(w, r, err, "save readiness assessment")
		return
	}
	utils.JSON(w, http.StatusOK, ra.Document)
}
