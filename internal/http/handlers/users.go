package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"wishshare/internal/domain"
	"wishshare/internal/middleware"
)

type updateUserRequest struct {
	Username *string `json:"username"`
	About    *string `json:"about"`
	Avatar   *string `json:"avatar"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type findUsersRequest struct {
	Query string `json:"query"`
}

// Me returns the authenticated user's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

// UpdateMe applies profile changes; an incoming password gets re-hashed.
func (a *App) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	upd := domain.UserUpdate{
		Username: req.Username,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			a.domainError(w, r, err)
			return
		}
		hashed := string(hash)
		upd.Password = &hashed
	}

	user, err := a.Users.Update(r.Context(), userID, upd)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

// MyWishes lists the authenticated user's wishes, newest first.
func (a *App) MyWishes(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	wishes, err := a.Wishes.ListByOwner(r.Context(), userID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(wishes))
}

// UsersFind searches users by username or email substring.
func (a *App) UsersFind(w http.ResponseWriter, r *http.Request) {
	var req findUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	users, err := a.Users.Search(r.Context(), req.Query)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(users))
}

// UserByUsername returns a public profile.
func (a *App) UserByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

// WishesByUsername lists another user's wishes. An unknown username yields
// an empty list, not an error.
func (a *App) WishesByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusOK, []domain.Wish{})
			return
		}
		a.domainError(w, r, err)
		return
	}
	wishes, err := a.Wishes.ListByOwner(r.Context(), user.ID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(wishes))
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
