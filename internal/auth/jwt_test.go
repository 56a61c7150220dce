package auth

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"

	"impactsTracker/internal/testutil"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(testSecret, 7, "admin", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != 7 || p.Role != "admin" {
		t.Fatalf("principal mismatch: %+v", p)
	}
	if _, err := ParseToken(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := IssueToken(testSecret, 7, "normal", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseToken_ClaimsValidation(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, 0, "")
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
	if _, err := IssueToken("", 1, "normal", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestParseFromMD_ValidBearer(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, 3, "normal")
	ctx := testutil.CtxWithBearer(context.Background(), tok)
	p, err := ParseFromMD(ctx, testSecret)
	if err != nil {
		t.Fatalf("ParseFromMD: %v", err)
	}
	if p.UserID != 3 || p.Role != "normal" {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseFromMD_MissingOrMalformed(t *testing.T) {
	if _, err := ParseFromMD(context.Background(), testSecret); err == nil {
		t.Fatalf("expected error for missing metadata")
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic abc"))
	if _, err := ParseFromMD(ctx, testSecret); err == nil {
		t.Fatalf("expected error for non-Bearer scheme")
	}
}
