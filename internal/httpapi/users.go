package httpapi

import (
	"errors"
	"net/http"

	"impactsTracker/internal/utils"
	"impactsTracker/models"
	"impactsTracker/repository"
	"impactsTracker/service"
)

type registerRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	FirstName    string  `json:"firstName" validate:"required,trimmed"`
	LastName     string  `json:"lastName" validate:"required,trimmed"`
	HospitalName *string `json:"hospitalName"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserHTTP struct {
	auth  *service.AuthService
	users repository.UserRepositoryI
}

func NewUserHTTP(auth *service.AuthService, users repository.UserRepositoryI) *UserHTTP {
	return &UserHTTP{auth: auth, users: users}
}

func (h *UserHTTP) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	tok, u, err := h.auth.Register(r.Context(), service.Registration{
		Email:        in.Email,
		Password:     in.Password,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		HospitalName: in.HospitalName,
	})
	if errors.Is(err, service.ErrUserExists) {
		utils.Error(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		serverError(w, r, err, "register user")
		return
	}
	utils.JSON(w, http.StatusCreated, sessionResponse{Token: tok, User: u})
}

func (h *UserHTTP) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if errs := decodeJSON(w, r, &in); len(errs) > 0 {
		writeFieldErrors(w, errs...)
		return
	}
	tok, u, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		utils.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		serverError(w, r, err, "login")
		return
	}
	utils.JSON(w, http.StatusOK, sessionResponse{Token: tok, User: u})
}

func (h *UserHTTP) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	u, err := h.users.GetByID(r.Context(), p.UserID)
	if err != nil {
		serverError(w, r, err, "load current user")
		return
	}
	if u == nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	utils.JSON(w, http.StatusOK, u)
}
