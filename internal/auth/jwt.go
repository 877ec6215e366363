package auth

import (
	"errors"

	"hostel-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Roles recognized on identity-service tokens. Only staff may allocate or
// end allocations; students read rooms and their own allocation history.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
)

// Claims are the fields the hostel identity service puts on its HS256
// tokens. This backend validates them with the shared secret; it never
// issues tokens itself.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// ValidateToken verifies a token from the identity service and returns its
// claims.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Role != RoleStudent && claims.Role != RoleStaff {
		return nil, errors.New("unknown role on token")
	}
	if j.cfg.JWT.Issuer != "" && claims.Issuer != j.cfg.JWT.Issuer {
		return nil, errors.New("unexpected token issuer")
	}

	return claims, nil
}
