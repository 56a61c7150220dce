package httpapi

import (
	"net/http"
	"testing"

	"impactsTracker/models"
)

func TestReadiness_SaveAndFetch(t *testing.T) {
	api := newTestAPI(t, "http_readiness")
	_, alice := api.userToken("ra@example.com", models.RoleNormal)
	_, bob := api.userToken("rb@example.com", models.RoleNormal)

	rec := api.do(http.MethodGet, "/api/readiness-assessment", alice, nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "{}\n" {
		t.Fatalf("empty document = %q", rec.Body.String())
	}

	expectFieldError(t, api.do(http.MethodPut, "/api/readiness-assessment", alice, `[1,2]`), "body")
	expectFieldError(t, api.do(http.MethodPut, "/api/readiness-assessment", alice, `null`), "body")

	doc := `{"facility": {"name": "North", "beds": 12}, "equipment": ["bvm"]}`
	rec = api.do(http.MethodPut, "/api/readiness-assessment", alice, doc)
	expectStatus(t, rec, http.StatusOK)

	rec = api.do(http.MethodGet, "/api/readiness-assessment", alice, nil)
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody[map[string]any](t, rec)
	facility, _ := got["facility"].(map[string]any)
	if facility["name"] != "North" || facility["beds"] != float64(12) {
		t.Fatalf("document = %v", got)
	}

	rec = api.do(http.MethodPost, "/api/readiness-assessment", alice, `{"facility":{"name":"South"}}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string]any](t, rec); got["equipment"] != nil {
		t.Fatalf("save should replace the document: %v", got)
	}

	rec = api.do(http.MethodGet, "/api/readiness-assessment", bob, nil)
	if rec.Body.String() != "{}\n" {
		t.Fatalf("bob sees %q", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t, "http_healthz")
	rec := api.do(http.MethodGet, "/healthz", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}

	req := api.do(http.MethodGet, "/nope", "", nil)
	expectStatus(t, req, http.StatusNotFound)
}
