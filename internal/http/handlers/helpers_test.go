package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"wishshare/internal/domain"
	"wishshare/internal/mail"
	"wishshare/internal/metrics"
	"wishshare/internal/middleware"
)

func newTestApp() (*App, *fakeMailer) {
	mailer := &fakeMailer{done: make(chan struct{}, 64)}
	return &App{
		Mailer:    mailer,
		Metrics:   metrics.New(prometheus.NewRegistry()),
		Logger:    zerolog.Nop(),
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
	}, mailer
}

// authed attaches an authenticated user id the way the auth middleware does.
func authed(r *http.Request, userID int64) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

// withPathID plants a chi route parameter so pathID resolves it.
func withPathID(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

type fakeMailer struct {
	mu   sync.Mutex
	to   []string
	sent []mail.OfferNotice
	err  error
	done chan struct{}
}

func (m *fakeMailer) SendOfferNotice(_ context.Context, to string, n mail.OfferNotice) error {
	m.mu.Lock()
	m.to = append(m.to, to)
	m.sent = append(m.sent, n)
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

// wait blocks until a notice was delivered or the deadline passes.
func (m *fakeMailer) wait(d time.Duration) bool {
	select {
	case <-m.done:
		return true
	case <-time.After(d):
		return false
	}
}

type fakeOfferRepo struct {
	createFn func(ctx context.Context, in domain.CreateOfferInput) (*domain.CreateOfferResult, error)
	getFn    func(ctx context.Context, id int64) (*domain.Offer, error)
	listFn   func(ctx context.Context) ([]domain.Offer, error)
}

func (f *fakeOfferRepo) Create(ctx context.Context, in domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
	return f.createFn(ctx, in)
}

func (f *fakeOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	if f.getFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.getFn(ctx, id)
}

func (f *fakeOfferRepo) List(ctx context.Context) ([]domain.Offer, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

type fakeWishRepo struct {
	createFn func(ctx context.Context, wish *domain.Wish) (*domain.Wish, error)
	getFn    func(ctx context.Context, id int64) (*domain.Wish, error)
	updateFn func(ctx context.Context, id, ownerID int64, upd domain.WishUpdate) (*domain.Wish, error)
	deleteFn func(ctx context.Context, id, ownerID int64) error
	copyFn   func(ctx context.Context, sourceID, newOwnerID int64) (*domain.Wish, error)
}

func (f *fakeWishRepo) Create(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	return f.createFn(ctx, wish)
}

func (f *fakeWishRepo) GetByID(ctx context.Context, id int64) (*domain.Wish, error) {
	return f.getFn(ctx, id)
}

func (f *fakeWishRepo) List(context.Context) ([]domain.Wish, error)            { return nil, nil }
func (f *fakeWishRepo) ListLast(context.Context, int) ([]domain.Wish, error)   { return nil, nil }
func (f *fakeWishRepo) ListTop(context.Context, int) ([]domain.Wish, error)    { return nil, nil }
func (f *fakeWishRepo) ListByOwner(context.Context, int64) ([]domain.Wish, error) {
	return nil, nil
}

func (f *fakeWishRepo) Update(ctx context.Context, id, ownerID int64, upd domain.WishUpdate) (*domain.Wish, error) {
	return f.updateFn(ctx, id, ownerID, upd)
}

func (f *fakeWishRepo) Delete(ctx context.Context, id, ownerID int64) error {
	return f.deleteFn(ctx, id, ownerID)
}

func (f *fakeWishRepo) Copy(ctx context.Context, sourceID, newOwnerID int64) (*domain.Wish, error) {
	return f.copyFn(ctx, sourceID, newOwnerID)
}

type fakeUserRepo struct {
	createFn func(ctx context.Context, user *domain.User) (*domain.User, error)
	credsFn  func(ctx context.Context, username string) (*domain.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetCredentials(ctx context.Context, username string) (*domain.User, error) {
	return f.credsFn(ctx, username)
}

func (f *fakeUserRepo) Update(context.Context, int64, domain.UserUpdate) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Search(context.Context, string) ([]domain.User, error) {
	return nil, nil
}
