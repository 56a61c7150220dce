package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"impactsTracker/internal/config"
	"impactsTracker/internal/db"
	"impactsTracker/internal/testutil"
	"impactsTracker/models"
)

const testSecret = "httpapi-test-secret"

type testAPI struct {
	t       *testing.T
	db      *db.DB
	handler http.Handler
}

func newTestAPI(t *testing.T, name string) *testAPI {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	cfg := &config.Config{
		Env: "test",
		HTTP: config.HTTPConfig{
			CORSOrigin:         "http://localhost:3000",
			RateLimitPerMinute: 1000,
		},
		Auth: config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
	}
	return &testAPI{t: t, db: d, handler: NewRouter(zerolog.Nop(), cfg, d)}
}

// userToken seeds a user with role and returns it with a signed token.
func (a *testAPI) userToken(email, role string) (*models.User, string) {
	a.t.Helper()
	u := testutil.SeedUser(a.t, a.db, email, role)
	return u, testutil.GenerateJWTHS256(a.t, testSecret, u.ID, role)
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, want, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	expectStatus(t, rec, status)
	body := decodeBody[map[string]string](t, rec)
	if body["error"] != msg {
		t.Fatalf("error = %q, want %q", body["error"], msg)
	}
}

type fieldErrorsBody struct {
	Errors []FieldError `json:"errors"`
}

// expectFieldError asserts a 400 whose errors include field.
func expectFieldError(t *testing.T, rec *httptest.ResponseRecorder, field string) FieldError {
	t.Helper()
	expectStatus(t, rec, http.StatusBadRequest)
	body := decodeBody[fieldErrorsBody](t, rec)
	for _, fe := range body.Errors {
		if fe.Field == field {
			return fe
		}
	}
	t.Fatalf("no error for field %q in %+v", field, body.Errors)
	return FieldError{}
}
