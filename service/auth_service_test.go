package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"impactsTracker/internal/auth"
	"impactsTracker/internal/testutil"
	"impactsTracker/repository"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "authsvc")
	users := repository.NewUserRepository(d)
	svc := NewAuthService(users, "secret", time.Hour)
	ctx := context.Background()

	blank := "   "
	tok, u, err := svc.Register(ctx, Registration{
		Email:        " kim@example.com ",
		Password:     "secret1",
		FirstName:    " Kim ",
		LastName:     "Ortiz",
		HospitalName: &blank,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "kim@example.com" || u.FirstName != "Kim" || u.HospitalName != nil || u.Role != "normal" {
		t.Fatalf("registered user: %+v", u)
	}
	if u.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear")
	}
	p, err := auth.ParseToken(tok, "secret")
	if err != nil || p.UserID != u.ID || p.Role != "normal" {
		t.Fatalf("token: %+v err=%v", p, err)
	}

	if _, _, err := svc.Register(ctx, Registration{Email: "kim@example.com", Password: "another", FirstName: "K", LastName: "O"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	if _, got, err := svc.Login(ctx, "kim@example.com", "secret1"); err != nil || got.ID != u.ID {
		t.Fatalf("login: %+v err=%v", got, err)
	}
	_, _, wrongPw := svc.Login(ctx, "kim@example.com", "nope")
	_, _, unknown := svc.Login(ctx, "ghost@example.com", "secret1")
	if !errors.Is(wrongPw, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("expected uniform invalid credentials: wrong=%v unknown=%v", wrongPw, unknown)
	}
}
