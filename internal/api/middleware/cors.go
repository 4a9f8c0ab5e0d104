package middleware

import (
	"net/http"
	"strings"

	gorillahandlers "github.com/gorilla/handlers"
)

// corsMaxAge is the preflight cache lifetime in seconds; gorilla caps it at 600.
const corsMaxAge = 600

var (
	corsAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	corsAllowedHeaders = []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"}
)

// CORS wraps the whole router so preflight requests are answered before route method matching.
// Only the methods and headers the API actually serves are allowed.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins = append(origins, strings.TrimRight(o, "/"))
	}

	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods(corsAllowedMethods),
		gorillahandlers.AllowedHeaders(corsAllowedHeaders),
		gorillahandlers.MaxAge(corsMaxAge),
		gorillahandlers.OptionStatusCode(http.StatusNoContent),
	)
}
