package models

import (
	"encoding/json"
	"testing"
)

func TestNotesUpdate_Unmarshal(t *testing.T) {
	var omitted struct {
		Notes NotesUpdate `json:"notes"`
	}
	if err := json.Unmarshal([]byte(`{}`), &omitted); err != nil {
		t.Fatalf("unmarshal omitted: %v", err)
	}
	if omitted.Notes.Set {
		t.Fatalf("omitted notes should not be set: %+v", omitted.Notes)
	}

	var null struct {
		Notes NotesUpdate `json:"notes"`
	}
	if err := json.Unmarshal([]byte(`{"notes":null}`), &null); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !null.Notes.Set || null.Notes.Value != nil {
		t.Fatalf("explicit null should clear: %+v", null.Notes)
	}

	var val struct {
		Notes NotesUpdate `json:"notes"`
	}
	if err := json.Unmarshal([]byte(`{"notes":"done with leadership"}`), &val); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !val.Notes.Set || val.Notes.Value == nil || *val.Notes.Value != "done with leadership" {
		t.Fatalf("value not captured: %+v", val.Notes)
	}

	var bad struct {
		Notes NotesUpdate `json:"notes"`
	}
	if err := json.Unmarshal([]byte(`{"notes":42}`), &bad); err == nil {
		t.Fatalf("expected error for non-string notes")
	}
}
