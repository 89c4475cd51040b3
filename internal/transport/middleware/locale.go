package middleware

import (
	"net/http"
	"strings"

	"github.com/geocasagroup/portal/internal"
)

// Locale negotiates the display language for the request. The lang query
// parameter wins over Accept-Language; anything unrecognized falls back to
// French, the portal default.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			accept := r.Header.Get("Accept-Language")
			if strings.HasPrefix(accept, "en") {
				lang = "en"
			}
		}
		if lang != "en" {
			lang = "fr"
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithLang(r.Context(), lang)))
	})
}
