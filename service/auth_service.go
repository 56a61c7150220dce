package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"impactsTracker/internal/auth"
	"impactsTracker/models"
	"impactsTracker/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Registration is the validated input for a new account.
type Registration struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	HospitalName *string
}

type AuthService struct {
	users    repository.UserRepositoryI
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepositoryI, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a normal user and returns a session token for it.
func (a *AuthService) Register(ctx context.Context, in Registration) (string, *models.User, error) {
	email := strings.TrimSpace(in.Email)
	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return "", nil, ErrUserExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}
	var hospital *string
	if in.HospitalName != nil {
		if h := strings.TrimSpace(*in.HospitalName); h != "" {
			hospital = &h
		}
	}
	u, err := a.users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		HospitalName: hospital,
		Role:         models.RoleNormal,
	})
	if err != nil {
		// A concurrent registration may have won the unique index.
		if again, lookupErr := a.users.GetByEmail(ctx, email); lookupErr == nil && again != nil {
			return "", nil, ErrUserExists
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}
	tok, err := auth.IssueToken(a.secret, u.ID, u.Role, a.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

// Login checks credentials. Unknown email and wrong password both yield ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := auth.IssueToken(a.secret, u.ID, u.Role, a.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}
