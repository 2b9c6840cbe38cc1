package httpd

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type contextKey string

const userIDKey contextKey = "user_id"

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

func RequestLogger(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())
			if reqID == "" {
				reqID = "unknown"
			}

			requestLog := log.With().
				Str("request_id", reqID).
				Logger()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			r = r.WithContext(requestLog.WithContext(r.Context()))

			defer func() {
				requestLog.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("query", r.URL.RawQuery).
					Str("ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func Recovery(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
					log.Error().
						Interface("recover", rvr).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("ip", r.RemoteAddr).
						Msg("Panic recovered")

					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// Authenticate rejects requests without a valid bearer token. Every failure
// gets the same 401 response.
func Authenticate(tokens TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := bearerUser(tokens, r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="school"`)
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and
// lets anonymous requests through.
func OptionalAuth(tokens TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := bearerUser(tokens, r); ok {
				r = r.WithContext(withUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerUser(tokens TokenParser, r *http.Request) (int64, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return 0, false
	}

	userID, err := tokens.ParseToken(strings.TrimSpace(token))
	if err != nil {
		return 0, false
	}
	return userID, true
}

func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user, or nil for anonymous requests.
func UserIDFromContext(ctx context.Context) *int64 {
	if userID, ok := ctx.Value(userIDKey).(int64); ok {
		return &userID
	}
	return nil
}
