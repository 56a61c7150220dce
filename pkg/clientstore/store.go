// Package clientstore keeps a per-user document of activities, milestones and
// the readiness assessment for clients that work against a local cache.
package clientstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// KeyPrefix is prepended to the user's email to form the storage key.
const KeyPrefix = "impacts_"

var ErrNoEmail = errors.New("clientstore: no user email provided")

// Document is the cached state for one user.
type Document struct {
	Activities          []json.RawMessage `json:"activities"`
	Milestones          []json.RawMessage `json:"milestones"`
	ReadinessAssessment json.RawMessage   `json:"readinessAssessment"`
}

// Patch replaces the top-level keys it carries. A nil field is left as stored.
type Patch struct {
	Activities          []json.RawMessage
	Milestones          []json.RawMessage
	ReadinessAssessment json.RawMessage
}

func emptyDocument() Document {
	return Document{
		Activities:          []json.RawMessage{},
		Milestones:          []json.RawMessage{},
		ReadinessAssessment: json.RawMessage(`{}`),
	}
}

func Key(email string) string { return KeyPrefix + email }

type Store struct {
	backend Backend
	log     zerolog.Logger
}

func New(backend Backend, log zerolog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Load returns the user's document, or an empty one when the email is blank,
// nothing is stored, or the stored value cannot be read.
func (s *Store) Load(ctx context.Context, email string) Document {
	if email == "" {
		return emptyDocument()
	}
	raw, err := s.backend.Get(ctx, Key(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error().Err(err).Str("key", Key(email)).Msg("load client document")
		}
		return emptyDocument()
	}
	var stored Document
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Error().Err(err).Str("key", Key(email)).Msg("parse client document")
		return emptyDocument()
	}
	doc := emptyDocument()
	if stored.Activities != nil {
		doc.Activities = stored.Activities
	}
	if stored.Milestones != nil {
		doc.Milestones = stored.Milestones
	}
	if len(stored.ReadinessAssessment) > 0 && string(stored.ReadinessAssessment) != "null" {
		doc.ReadinessAssessment = stored.ReadinessAssessment
	}
	return doc
}

// Save merges p over the stored document. A blank email is ignored.
func (s *Store) Save(ctx context.Context, email string, p Patch) error {
	if email == "" {
		return nil
	}
	doc := s.Load(ctx, email)
	if p.Activities != nil {
		doc.Activities = p.Activities
	}
	if p.Milestones != nil {
		doc.Milestones = p.Milestones
	}
	if p.ReadinessAssessment != nil {
		doc.ReadinessAssessment = p.ReadinessAssessment
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode client document: %w", err)
	}
	return s.backend.Set(ctx, Key(email), b)
}

// SaveReadinessAssessment replaces only the readinessAssessment key. Unlike
// Save it reports a missing email and an unreadable stored value, and it
// keeps any other top-level keys found in storage.
func (s *Store) SaveReadinessAssessment(ctx context.Context, email string, assessment json.RawMessage) error {
	if email == "" {
		return ErrNoEmail
	}
	if !json.Valid(assessment) {
		return errors.New("clientstore: readiness assessment is not valid json")
	}
	key := Key(email)
	fields := map[string]json.RawMessage{
		"activities": json.RawMessage(`[]`),
		"milestones": json.RawMessage(`[]`),
	}
	raw, err := s.backend.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return fmt.Errorf("load client document: %w", err)
	default:
		fields = nil
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("parse client document: %w", err)
		}
		if fields == nil {
			fields = map[string]json.RawMessage{}
		}
	}
	fields["readinessAssessment"] = assessment
	b, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode client document: %w", err)
	}
	return s.backend.Set(ctx, key, b)
}
