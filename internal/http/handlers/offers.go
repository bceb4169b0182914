package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"wishshare/internal/domain"
	"wishshare/internal/mail"
	"wishshare/internal/middleware"
)

type createOfferRequest struct {
	ItemID int64        `json:"itemId"`
	Amount domain.Money `json:"amount"`
	Hidden bool         `json:"hidden"`
}

// OfferCreate submits a pledge toward another user's wish. The repository
// serializes concurrent offers per wish; on commit the owner is notified
// on a detached path that can never fail the request.
func (a *App) OfferCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	if req.ItemID <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "itemId must be a positive integer")
		return
	}
	if req.Amount < 1 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be at least 0.01")
		return
	}

	result, err := a.Offers.Create(r.Context(), domain.CreateOfferInput{
		ItemID: req.ItemID,
		UserID: userID,
		Amount: req.Amount,
		Hidden: req.Hidden,
	})
	if err != nil {
		a.Metrics.OffersRejected.WithLabelValues(rejectReason(err)).Inc()
		a.domainError(w, r, err)
		return
	}

	a.Metrics.OffersAccepted.Inc()
	a.notifyOwner(result)
	a.json(w, http.StatusCreated, result.Offer)
}

// OffersList returns all offers, newest first. Public.
func (a *App) OffersList(w http.ResponseWriter, r *http.Request) {
	offers, err := a.Offers.List(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, emptyIfNil(offers))
}

// OffersGet returns a single offer. Public.
func (a *App) OffersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", msg(r, "bad_request"))
		return
	}
	offer, err := a.Offers.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, offer)
}

// notifyOwner dispatches the owner notification after commit. Failures
// are logged and swallowed: the offer is already committed.
func (a *App) notifyOwner(result *domain.CreateOfferResult) {
	if result.OwnerEmail == "" {
		return
	}
	notice := mail.OfferNotice{
		WishID:     result.Offer.ItemID,
		WishName:   result.WishName,
		Amount:     result.Offer.Amount,
		FromUserID: result.Offer.UserID,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Mailer.SendOfferNotice(ctx, result.OwnerEmail, notice); err != nil {
			a.Logger.Warn().
				Err(err).
				Str("to", result.OwnerEmail).
				Int64("wish_id", result.Offer.ItemID).
				Msg("owner notification failed")
		}
	}()
}
