package auth

import (
	"testing"
	"time"

	"hostel-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret, issuer string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.Issuer = issuer
	return cfg
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	mgr := NewJWTManager(testConfig("test-secret", "hostel-identity"))

	base := Claims{
		UserID: "STU-001",
		Name:   "Asha Verma",
		Role:   RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hostel-identity",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("accepts a valid student token", func(t *testing.T) {
		claims, err := mgr.ValidateToken(signToken(t, "test-secret", base))
		require.NoError(t, err)
		assert.Equal(t, "STU-001", claims.UserID)
		assert.Equal(t, RoleStudent, claims.Role)
	})

	t.Run("accepts a staff token", func(t *testing.T) {
		staff := base
		staff.UserID = "WARDEN-1"
		staff.Role = RoleStaff
		claims, err := mgr.ValidateToken(signToken(t, "test-secret", staff))
		require.NoError(t, err)
		assert.Equal(t, RoleStaff, claims.Role)
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		_, err := mgr.ValidateToken(signToken(t, "other-secret", base))
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := base
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := mgr.ValidateToken(signToken(t, "test-secret", expired))
		assert.Error(t, err)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		admin := base
		admin.Role = "superadmin"
		_, err := mgr.ValidateToken(signToken(t, "test-secret", admin))
		assert.Error(t, err)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		other := base
		other.Issuer = "someone-else"
		_, err := mgr.ValidateToken(signToken(t, "test-secret", other))
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := mgr.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestValidateTokenNoIssuerCheck(t *testing.T) {
	// An empty configured issuer disables the issuer comparison.
	mgr := NewJWTManager(testConfig("test-secret", ""))

	claims := Claims{
		UserID: "STU-002",
		Role:   RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "whatever",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	got, err := mgr.ValidateToken(signToken(t, "test-secret", claims))
	require.NoError(t, err)
	assert.Equal(t, "STU-002", got.UserID)
}
