package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey is the context key under which the negotiated locale is stored.
var LocaleKey = localeContextKey{}

var supported = []language.Tag{
	language.Russian, // default content language
	language.English,
}

var matcher = language.NewMatcher(supported)

// Locale negotiates the response language from the X-Locale header or
// Accept-Language, falling back to defaultLocale. Only "ru" and "en" are
// served.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the negotiated locale, defaulting to "ru".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "ru"
}

func detectLocale(r *http.Request, fallback string) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return matchLocale(v)
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		return matchLocale(v)
	}
	if fallback != "" {
		return matchLocale(fallback)
	}
	return "ru"
}

func matchLocale(prefs string) string {
	tag, _ := language.MatchStrings(matcher, prefs)
	base, _ := tag.Base()
	if base.String() == "en" {
		return "en"
	}
	return "ru"
}
