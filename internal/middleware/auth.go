package middleware

import (
	"context"
	"net/http"

	"github.com/voicevault/voicevault-backend/internal/models"
	"github.com/voicevault/voicevault-backend/internal/services"
)

// TokenCookie is the HTTP-only cookie the token travels in.
const TokenCookie = "token"

type contextKey string

const userContextKey contextKey = "user"

// UserLookup resolves a verified token's user id to the current user record.
type UserLookup func(ctx context.Context, id string) (*models.User, error)

// RequireAuth extracts the token from the cookie, verifies it, loads the
// referenced user and attaches it to the request context. Missing, invalid or
// expired tokens and deleted users all get 401.
func RequireAuth(secret []byte, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			userID, err := services.ParseToken(cookie.Value, secret)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := lookup(r.Context(), userID)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route to administrators. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil {
			unauthorized(w)
			return
		}
		if !user.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user attached by RequireAuth, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Authentication required"}`))
}
