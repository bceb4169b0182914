package handlers

import (
	"encoding/json"
	"net/http"

	"wishshare/internal/domain"
	"wishshare/internal/middleware"
)

type createWishlistRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	ItemsID     []int64 `json:"itemsId"`
}

type updateWishlistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

type addWishlistItemRequest struct {
	WishID   int64 `json:"wishId"`
	Position int   `json:"position"`
}

// WishlistCreate creates a wishlist, optionally seeded with wishes.
func (a *App) WishlistCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if req.Name == "" || len(req.Name) > 250 {
		a.error(w, http.StatusBadRequest, "bad_request", "name must be 1-250 characters")
		return
	}

	wl, err := a.Wishlists.Create(r.Context(), &domain.Wishlist{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		OwnerID:     userID,
	}, req.ItemsID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, wl)
}

// WishlistGet returns a wishlist with its items. Public.
func (a *App) WishlistGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	wl, err := a.Wishlists.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, wl)
}

// WishlistList returns all wishlists, newest first.
func (a *App) WishlistList(w http.ResponseWriter, r *http.Request) {
	lists, err := a.Wishlists.List(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(lists))
}

// WishlistUpdate edits an owned wishlist.
func (a *App) WishlistUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	var req updateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	wl, err := a.Wishlists.Update(r.Context(), id, userID, domain.WishlistUpdate{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, wl)
}

// WishlistDelete removes an owned wishlist.
func (a *App) WishlistDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if err := a.Wishlists.Delete(r.Context(), id, userID); err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"deleted": true})
}

// WishlistAddItem links a wish into an owned wishlist.
func (a *App) WishlistAddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	var req addWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WishID <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	item, err := a.Wishlists.AddItem(r.Context(), id, userID, req.WishID, req.Position)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, item)
}

// WishlistRemoveItem unlinks a wish from an owned wishlist.
func (a *App) WishlistRemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	wishID, ok := pathID(r, "wishId")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if err := a.Wishlists.RemoveItem(r.Context(), id, userID, wishID); err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"deleted": true})
}
