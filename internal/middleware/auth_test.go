package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/voicevault/voicevault-backend/internal/models"
	"github.com/voicevault/voicevault-backend/internal/services"
)

var testSecret = []byte("middleware-test-secret")

func fixedLookup(user *models.User) UserLookup {
	return func(ctx context.Context, id string) (*models.User, error) {
		if user != nil && user.ID.Hex() == id {
			return user, nil
		}
		return nil, services.ErrNotFound
	}
}

func authedRequest(t *testing.T, userID string, ttl time.Duration) *http.Request {
	t.Helper()
	token, err := services.GenerateToken(userID, testSecret, ttl)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/recordings/my-recordings", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	return req
}

func TestRequireAuth(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "owner@example.com"}

	var resolved *models.User
	handler := RequireAuth(testSecret, fixedLookup(user))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		resolved = nil
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, user.ID.Hex(), time.Minute))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, resolved)
		assert.Equal(t, user.Email, resolved.Email)
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, user.ID.Hex(), -time.Minute))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, primitive.NewObjectID().Hex(), time.Minute))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(user *models.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/recordings/all", nil)
		if user != nil {
			req = req.WithContext(context.WithValue(req.Context(), userContextKey, user))
		}
		rec := httptest.NewRecorder()
		RequireAdmin(inner).ServeHTTP(rec, req)
		return rec
	}

	t.Run("administrator passes", func(t *testing.T) {
		rec := run(&models.User{ID: primitive.NewObjectID(), IsAdmin: true})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("standard role is forbidden", func(t *testing.T) {
		rec := run(&models.User{ID: primitive.NewObjectID()})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no resolved user is unauthorized", func(t *testing.T) {
		rec := run(nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAuthThenAdmin(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Email: "admin@example.com", IsAdmin: true}

	handler := RequireAuth(testSecret, fixedLookup(admin))(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, admin.ID.Hex(), time.Minute))
	assert.Equal(t, http.StatusOK, rec.Code)
}
