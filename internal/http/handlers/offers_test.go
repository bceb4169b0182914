package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wishshare/internal/domain"
)

func postOffer(t *testing.T, app *App, userID int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/offers", strings.NewReader(body))
	return doRequest(app.OfferCreate, authed(r, userID))
}

func TestOfferCreateSuccessNotifiesOwner(t *testing.T) {
	app, mailer := newTestApp()
	app.Offers = &fakeOfferRepo{
		createFn: func(_ context.Context, in domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
			if in.ItemID != 7 || in.UserID != 2 || in.Amount != 1500 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.CreateOfferResult{
				Offer:      domain.Offer{ID: 1, ItemID: 7, UserID: 2, Amount: 1500},
				WishName:   "Телескоп",
				OwnerID:    1,
				OwnerEmail: "owner@example.com",
			}, nil
		},
	}

	rec := postOffer(t, app, 2, `{"itemId":7,"amount":"15.00"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var offer domain.Offer
	if err := json.NewDecoder(rec.Body).Decode(&offer); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if offer.Amount != 1500 {
		t.Errorf("amount = %v, want 1500", offer.Amount)
	}

	if !mailer.wait(time.Second) {
		t.Fatal("owner notification never dispatched")
	}
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.to[0] != "owner@example.com" {
		t.Errorf("notified %q, want owner@example.com", mailer.to[0])
	}
	if mailer.sent[0].WishName != "Телескоп" {
		t.Errorf("notice wish name = %q", mailer.sent[0].WishName)
	}
}

func TestOfferCreateSurvivesNotificationFailure(t *testing.T) {
	app, mailer := newTestApp()
	mailer.err = errors.New("smtp down")
	app.Offers = &fakeOfferRepo{
		createFn: func(context.Context, domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
			return &domain.CreateOfferResult{
				Offer:      domain.Offer{ID: 1, ItemID: 7, UserID: 2, Amount: 100},
				OwnerEmail: "owner@example.com",
			}, nil
		},
	}

	rec := postOffer(t, app, 2, `{"itemId":7,"amount":"1.00"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 despite mailer failure", rec.Code)
	}
	if !mailer.wait(time.Second) {
		t.Fatal("notification was never attempted")
	}
}

func TestOfferCreateRejections(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
		wantCode   string
	}{
		{"missing wish", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"own wish", domain.ErrSelfOffer, http.StatusForbidden, "self_offer"},
		{"funding closed", domain.ErrFundingClosed, http.StatusBadRequest, "funding_closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp()
			app.Offers = &fakeOfferRepo{
				createFn: func(context.Context, domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
					return nil, tt.repoErr
				},
			}

			rec := postOffer(t, app, 2, `{"itemId":7,"amount":"1.00"}`)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestOfferCreateExceedsRemainingReportsAmount(t *testing.T) {
	app, _ := newTestApp()
	app.Offers = &fakeOfferRepo{
		createFn: func(context.Context, domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
			return nil, &domain.ExceedsRemainingError{Remaining: 4000}
		},
	}

	rec := postOffer(t, app, 2, `{"itemId":7,"amount":"60.00"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error struct {
			Code      string       `json:"code"`
			Message   string       `json:"message"`
			Remaining domain.Money `json:"remaining"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Code != "exceeds_remaining" {
		t.Errorf("code = %q", body.Error.Code)
	}
	if body.Error.Remaining != 4000 {
		t.Errorf("remaining = %v, want 4000", body.Error.Remaining)
	}
	if !strings.Contains(body.Error.Message, "40.00") {
		t.Errorf("message %q should mention the remaining amount", body.Error.Message)
	}
}

func TestOfferCreateValidation(t *testing.T) {
	app, _ := newTestApp()
	app.Offers = &fakeOfferRepo{
		createFn: func(context.Context, domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
			t.Fatal("repository must not be reached on invalid input")
			return nil, nil
		},
	}

	for name, body := range map[string]string{
		"zero amount":     `{"itemId":7,"amount":"0.00"}`,
		"negative amount": `{"itemId":7,"amount":"-5.00"}`,
		"missing item":    `{"amount":"5.00"}`,
		"garbage":         `{`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postOffer(t, app, 2, body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// memOfferRepo reproduces the per-wish serialization of the real
// repository with a mutex standing in for the row lock.
type memOfferRepo struct {
	mu     sync.Mutex
	wish   *domain.Wish
	offers []domain.Offer
}

func (m *memOfferRepo) Create(_ context.Context, in domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.ItemID != m.wish.ID {
		return nil, domain.ErrNotFound
	}
	newRaised, err := domain.EvaluateOffer(m.wish, in.UserID, in.Amount)
	if err != nil {
		return nil, err
	}
	offer := domain.Offer{
		ID:     int64(len(m.offers) + 1),
		ItemID: in.ItemID,
		UserID: in.UserID,
		Amount: in.Amount,
		Hidden: in.Hidden,
	}
	m.offers = append(m.offers, offer)
	m.wish.Raised = newRaised
	return &domain.CreateOfferResult{Offer: offer, WishName: m.wish.Name, OwnerID: m.wish.OwnerID}, nil
}

func (m *memOfferRepo) GetByID(context.Context, int64) (*domain.Offer, error) {
	return nil, domain.ErrNotFound
}

func (m *memOfferRepo) List(context.Context) ([]domain.Offer, error) { return m.offers, nil }

func TestOfferCreateConcurrentNeverOverfunds(t *testing.T) {
	const (
		price   = domain.Money(10000) // 100.00
		chunk   = domain.Money(300)   // 3.00 per pledge
		workers = 50
	)

	app, _ := newTestApp()
	repo := &memOfferRepo{wish: &domain.Wish{ID: 7, Name: "Телескоп", OwnerID: 1, Price: price}}
	app.Offers = repo

	var (
		wg       sync.WaitGroup
		accepted sync.Map
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rec := postOffer(t, app, int64(worker+2), `{"itemId":7,"amount":"3.00"}`)
			if rec.Code == http.StatusCreated {
				accepted.Store(worker, true)
			}
		}(i)
	}
	wg.Wait()

	if repo.wish.Raised > repo.wish.Price {
		t.Fatalf("raised %v exceeds price %v", repo.wish.Raised, repo.wish.Price)
	}

	var sum domain.Money
	for _, o := range repo.offers {
		sum += o.Amount
	}
	if sum != repo.wish.Raised {
		t.Fatalf("sum of offers %v != raised %v", sum, repo.wish.Raised)
	}

	var acceptedCount int
	accepted.Range(func(any, any) bool { acceptedCount++; return true })
	if acceptedCount != len(repo.offers) {
		t.Fatalf("accepted responses %d != stored offers %d", acceptedCount, len(repo.offers))
	}
	// 33 pledges of 3.00 fit under 100.00, the 34th leaves only 1.00.
	if want := int(price / chunk); acceptedCount != want {
		t.Fatalf("accepted %d pledges, want %d", acceptedCount, want)
	}
}
