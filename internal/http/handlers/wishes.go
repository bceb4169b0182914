package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wishshare/internal/domain"
	"wishshare/internal/middleware"
)

const (
	lastWishesLimit = 40
	topWishesLimit  = 20
)

type createWishRequest struct {
	Name        string       `json:"name"`
	Link        string       `json:"link"`
	Image       string       `json:"image"`
	Price       domain.Money `json:"price"`
	Description string       `json:"description"`
}

// updateWishRequest deliberately has no raised field: only the offer
// transaction writes it, and any client-supplied value is ignored.
type updateWishRequest struct {
	Name        *string       `json:"name"`
	Link        *string       `json:"link"`
	Image       *string       `json:"image"`
	Price       *domain.Money `json:"price"`
	Description *string       `json:"description"`
}

// WishCreate adds a wish owned by the authenticated user.
func (a *App) WishCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if req.Name == "" || len(req.Name) > 250 {
		a.error(w, http.StatusBadRequest, "bad_request", "name must be 1-250 characters")
		return
	}
	if !isHTTPURL(req.Link) || !isHTTPURL(req.Image) {
		a.error(w, http.StatusBadRequest, "bad_request", "link and image must be http(s) URLs")
		return
	}
	if req.Price < 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "price must not be negative")
		return
	}

	wish, err := a.Wishes.Create(r.Context(), &domain.Wish{
		Name:        req.Name,
		Link:        req.Link,
		Image:       req.Image,
		Price:       req.Price,
		OwnerID:     userID,
		Description: req.Description,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, wish)
}

// WishesList returns all wishes, newest first.
func (a *App) WishesList(w http.ResponseWriter, r *http.Request) {
	wishes, err := a.Wishes.List(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(wishes))
}

// WishesLast returns the latest wishes. Public.
func (a *App) WishesLast(w http.ResponseWriter, r *http.Request) {
	wishes, err := a.Wishes.ListLast(r.Context(), lastWishesLimit)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(wishes))
}

// WishesTop returns the most copied wishes. Public.
func (a *App) WishesTop(w http.ResponseWriter, r *http.Request) {
	wishes, err := a.Wishes.ListTop(r.Context(), topWishesLimit)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(wishes))
}

// WishGet returns a single wish with its owner.
func (a *App) WishGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	wish, err := a.Wishes.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, wish)
}

// WishUpdate edits an owned wish. Price changes are rejected once any
// offer exists.
func (a *App) WishUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}

	var req updateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if req.Price != nil && *req.Price < 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "price must not be negative")
		return
	}

	wish, err := a.Wishes.Update(r.Context(), id, userID, domain.WishUpdate{
		Name:        req.Name,
		Link:        req.Link,
		Image:       req.Image,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, wish)
}

// WishDelete removes an owned wish without offers.
func (a *App) WishDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if err := a.Wishes.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrHasOffers) {
			a.error(w, http.StatusBadRequest, "has_offers", msg(r, "delete_has_offers"))
			return
		}
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"deleted": true})
}

// WishCopy duplicates a wish into the authenticated user's collection and
// bumps the source's popularity counter.
func (a *App) WishCopy(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	wish, err := a.Wishes.Copy(r.Context(), id, userID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.Metrics.WishesCopied.Inc()
	a.json(w, http.StatusCreated, wish)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
