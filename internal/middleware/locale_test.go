package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name           string
		xLocale        string
		acceptLanguage string
		fallback       string
		want           string
	}{
		{name: "x-locale wins", xLocale: "en", acceptLanguage: "ru-RU", fallback: "ru", want: "en"},
		{name: "accept-language russian", acceptLanguage: "ru-RU,ru;q=0.9", fallback: "en", want: "ru"},
		{name: "accept-language english region", acceptLanguage: "en-GB", fallback: "ru", want: "en"},
		{name: "unsupported language falls back to default", acceptLanguage: "de-DE", fallback: "ru", want: "ru"},
		{name: "fallback used when headers absent", fallback: "en", want: "en"},
		{name: "no headers no fallback", want: "ru"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.xLocale != "" {
				req.Header.Set("X-Locale", tc.xLocale)
			}
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			if got := detectLocale(req, tc.fallback); got != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocaleMiddlewareSetsContextAndHeader(t *testing.T) {
	var got string
	handler := Locale("ru")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got != "en" {
		t.Fatalf("locale in context = %q, want %q", got, "en")
	}
	if hdr := rr.Header().Get("Content-Language"); hdr != "en" {
		t.Fatalf("Content-Language = %q, want %q", hdr, "en")
	}
}
