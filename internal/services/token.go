package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL bounds token validity. There is no revocation list: invalidation
// is expiry or client-side cookie clearing only.
const TokenTTL = 7 * 24 * time.Hour

// Claims carries the standard registered claims plus the user id the token
// was issued for. Role is not embedded; it is resolved by user lookup on
// every request so an admin flag change takes effect immediately.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken issues a signed HS256 token for userID, valid for ttl.
func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the embedded user id.
func ParseToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
