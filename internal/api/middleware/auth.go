package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/domain"
)

const (
	msgMissingToken = "missing or malformed Authorization header"
	msgInvalidToken = "invalid or expired token"
)

type sessionKey struct{}

// TokenVerifier turns a bearer token into a session.
type TokenVerifier interface {
	Verify(token string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetSession returns the session stored by Auth or OptionalAuth.
func GetSession(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return s, ok && s != nil
}

// Auth rejects requests without a valid bearer token with 401.
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			session, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("%s %s - Token rejected: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// OptionalAuth attaches a session when a valid token is present and lets anonymous requests through.
// A present but invalid token is still rejected.
func OptionalAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			Auth(verifier, logger)(next).ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
