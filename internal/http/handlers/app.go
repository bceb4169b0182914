package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"wishshare/internal/domain"
	"wishshare/internal/mail"
	"wishshare/internal/metrics"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Users     domain.UserRepository
	Wishes    domain.WishRepository
	Offers    domain.OfferRepository
	Wishlists domain.WishlistRepository
	Mailer    mail.Mailer
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
	JWTSecret string
	JWTTTL    time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

// domainError maps a domain error to its HTTP representation. The
// exceeds-remaining rejection additionally reports the remaining amount.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var exceeds *domain.ExceedsRemainingError
	switch {
	case errors.As(err, &exceeds):
		a.json(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{
				"code":      "exceeds_remaining",
				"message":   msgf(r, "exceeds_remaining", exceeds.Remaining),
				"remaining": exceeds.Remaining,
			},
		})
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", msg(r, "not_found"))
	case errors.Is(err, domain.ErrSelfOffer):
		a.error(w, http.StatusForbidden, "self_offer", msg(r, "self_offer"))
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", msg(r, "forbidden"))
	case errors.Is(err, domain.ErrFundingClosed):
		a.error(w, http.StatusBadRequest, "funding_closed", msg(r, "funding_closed"))
	case errors.Is(err, domain.ErrHasOffers):
		a.error(w, http.StatusBadRequest, "has_offers", msg(r, "has_offers"))
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", msg(r, "conflict"))
	case errors.Is(err, domain.ErrConflictWrite):
		a.Logger.Error().Err(err).Msg("storage write conflict")
		a.error(w, http.StatusInternalServerError, "conflict_write", msg(r, "internal"))
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", msg(r, "internal"))
	}
}

func rejectReason(err error) string {
	var exceeds *domain.ExceedsRemainingError
	switch {
	case errors.As(err, &exceeds):
		return "exceeds_remaining"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSelfOffer):
		return "self_offer"
	case errors.Is(err, domain.ErrFundingClosed):
		return "funding_closed"
	default:
		return "internal"
	}
}
