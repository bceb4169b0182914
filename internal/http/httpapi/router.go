package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"wishshare/internal/http/handlers"
	"wishshare/internal/infra"
	mw "wishshare/internal/middleware"
)

// NewRouter builds the full route table. Routes mirror the public API:
// auth, users, wishes, offers, wishlists, plus health and metrics.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.RequestID,
		mw.Logger(logger),
		chimw.Recoverer,
		mw.CORS(cfg.AllowedOrigins),
		mw.Locale(cfg.DefaultLocale),
		mw.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/healthz", app.Health)
	r.Handle("/metrics", metricsHandler)

	// Public surface.
	r.Post("/signup", app.Signup)
	r.Post("/signin", app.Signin)
	r.Get("/wishes/last", app.WishesLast)
	r.Get("/wishes/top", app.WishesTop)
	r.Get("/offers", app.OffersList)
	r.Get("/offers/{id}", app.OffersGet)
	r.Post("/users/find", app.UsersFind)
	r.Get("/users/{username}", app.UserByUsername)
	r.Get("/users/{username}/wishes", app.WishesByUsername)
	r.Get("/wishlists/{id}", app.WishlistGet)

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth(cfg.JWTSecret))

		r.Get("/users/me", app.Me)
		r.Patch("/users/me", app.UpdateMe)
		r.Get("/users/me/wishes", app.MyWishes)

		r.Get("/wishes", app.WishesList)
		r.Post("/wishes", app.WishCreate)
		r.Get("/wishes/{id}", app.WishGet)
		r.Patch("/wishes/{id}", app.WishUpdate)
		r.Delete("/wishes/{id}", app.WishDelete)
		r.Post("/wishes/{id}/copy", app.WishCopy)

		r.Post("/offers", app.OfferCreate)

		r.Get("/wishlists", app.WishlistList)
		r.Post("/wishlists", app.WishlistCreate)
		r.Patch("/wishlists/{id}", app.WishlistUpdate)
		r.Delete("/wishlists/{id}", app.WishlistDelete)
		r.Post("/wishlists/{id}/items", app.WishlistAddItem)
		r.Delete("/wishlists/{id}/items/{wishId}", app.WishlistRemoveItem)
	})

	return r
}
