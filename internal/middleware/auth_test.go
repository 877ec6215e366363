package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTestMiddleware() *AuthMiddleware {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.Issuer = "hostel-identity"
	return NewAuthMiddleware(auth.NewJWTManager(cfg))
}

func mintToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := auth.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hostel-identity",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	m := newTestMiddleware()

	var gotUserID, gotRole string
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("passes claims into context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "STU-001", auth.RoleStudent))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "STU-001", gotUserID)
		assert.Equal(t, auth.RoleStudent, gotRole)
	})

	t.Run("missing header is a 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/rooms", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is a 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/rooms", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token is a 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/rooms", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	m := newTestMiddleware()

	handler := m.RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("staff passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/allocations", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "WARDEN-1", auth.RoleStaff))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("student is a 403", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/allocations", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "STU-001", auth.RoleStudent))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous is a 401", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/allocations", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
