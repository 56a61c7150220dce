package clientstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore() (*Store, *MemoryBackend) {
	b := NewMemoryBackend()
	return New(b, zerolog.Nop()), b
}

func raws(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func assertEmpty(t *testing.T, doc Document) {
	t.Helper()
	if doc.Activities == nil || len(doc.Activities) != 0 || doc.Milestones == nil || len(doc.Milestones) != 0 {
		t.Fatalf("expected empty collections: %+v", doc)
	}
	if string(doc.ReadinessAssessment) != "{}" {
		t.Fatalf("readinessAssessment = %s", doc.ReadinessAssessment)
	}
}

func TestLoad_Defaults(t *testing.T) {
	ctx := context.Background()
	s, b := newTestStore()
	assertEmpty(t, s.Load(ctx, ""))
	assertEmpty(t, s.Load(ctx, "nobody@example.com"))

	_ = b.Set(ctx, Key("broken@example.com"), []byte("{not json"))
	assertEmpty(t, s.Load(ctx, "broken@example.com"))

	_ = b.Set(ctx, Key("partial@example.com"), []byte(`{"activities":null,"milestones":[{"id":1}]}`))
	doc := s.Load(ctx, "partial@example.com")
	if len(doc.Activities) != 0 || len(doc.Milestones) != 1 || string(doc.ReadinessAssessment) != "{}" {
		t.Fatalf("partial document = %+v", doc)
	}
}

func TestSave_ShallowMerge(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	const email = "merge@example.com"

	if err := s.Save(ctx, email, Patch{Activities: raws(`{"id":1}`, `{"id":2}`)}); err != nil {
		t.Fatalf("save activities: %v", err)
	}
	if err := s.Save(ctx, email, Patch{Milestones: raws(`{"id":9,"completed":true}`)}); err != nil {
		t.Fatalf("save milestones: %v", err)
	}
	doc := s.Load(ctx, email)
	if len(doc.Activities) != 2 || len(doc.Milestones) != 1 {
		t.Fatalf("merge lost keys: %+v", doc)
	}

	if err := s.Save(ctx, email, Patch{Activities: raws()}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	doc = s.Load(ctx, email)
	if len(doc.Activities) != 0 || len(doc.Milestones) != 1 {
		t.Fatalf("explicit empty slice should replace: %+v", doc)
	}
}

func TestSave_BlankEmailIsNoop(t *testing.T) {
	s, b := newTestStore()
	if err := s.Save(context.Background(), "", Patch{Activities: raws(`{}`)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(b.data) != 0 {
		t.Fatalf("backend written: %v", b.data)
	}
}

func TestSaveReadinessAssessment(t *testing.T) {
	ctx := context.Background()
	s, b := newTestStore()
	const email = "ready@example.com"

	if err := s.SaveReadinessAssessment(ctx, "", json.RawMessage(`{}`)); !errors.Is(err, ErrNoEmail) {
		t.Fatalf("err = %v, want ErrNoEmail", err)
	}

	if err := s.Save(ctx, email, Patch{Activities: raws(`{"id":1}`)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.SaveReadinessAssessment(ctx, email, json.RawMessage(`{"contactInfo":{"name":"N"}}`)); err != nil {
		t.Fatalf("SaveReadinessAssessment: %v", err)
	}
	doc := s.Load(ctx, email)
	if len(doc.Activities) != 1 || string(doc.ReadinessAssessment) != `{"contactInfo":{"name":"N"}}` {
		t.Fatalf("doc = %+v", doc)
	}

	_ = b.Set(ctx, Key("bad@example.com"), []byte("nope"))
	if err := s.SaveReadinessAssessment(ctx, "bad@example.com", json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected parse error for corrupt stored value")
	}
}
