package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.Claims, method jwt.SigningMethod) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T, captured *uuid.UUID) http.Handler {
	t.Helper()
	return Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		*captured = userID
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token passes the subject through", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}, jwt.SigningMethodHS256)

		var captured uuid.UUID
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protectedHandler(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, captured)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		rec := httptest.NewRecorder()

		var captured uuid.UUID
		protectedHandler(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		var captured uuid.UUID
		protectedHandler(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}, jwt.SigningMethodHS256)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		var captured uuid.UUID
		protectedHandler(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, jwt.SigningMethodHS256)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		var captured uuid.UUID
		protectedHandler(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("subject is not a UUID", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, jwt.SigningMethodHS256)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		var captured uuid.UUID
		protectedHandler(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSecurity(t *testing.T) {
	handler := Security()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
