package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"wishshare/internal/domain"
	"wishshare/internal/middleware"
)

const bcryptCost = 10

type signupRequest struct {
	Username string `json:"username"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if len(req.Username) < 2 || len(req.Username) > 30 {
		a.error(w, http.StatusBadRequest, "bad_request", "username must be 2-30 characters")
		return
	}
	if req.Email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email is required")
		return
	}
	if len(req.Password) < 6 {
		a.error(w, http.StatusBadRequest, "bad_request", "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	user := &domain.User{
		Username: req.Username,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: string(hash),
	}
	if user.About == "" {
		user.About = domain.DefaultAbout
	}
	if user.Avatar == "" {
		user.Avatar = domain.DefaultAvatar
	}

	created, err := a.Users.Create(r.Context(), user)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, created)
}

// Signin verifies credentials and issues a JWT.
func (a *App) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	user, err := a.Users.GetCredentials(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", msg(r, "invalid_credentials"))
			return
		}
		a.domainError(w, r, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", msg(r, "invalid_credentials"))
		return
	}

	token, err := middleware.SignToken(a.JWTSecret, user.ID, user.Username, a.JWTTTL)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"access_token": token})
}
