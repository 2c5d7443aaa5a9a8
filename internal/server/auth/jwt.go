// Package auth issues and verifies the signed session tokens used to
// authenticate API requests. Tokens are self-contained HS256 JWTs carrying
// the user id and an absolute expiry; nothing is stored server-side.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dsmirnovs/notekeeper/internal/common"
)

// Claims extends the registered claim set with the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken mints a signed token for userID expiring after
// validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the embedded user id.
//
// Every verification failure (malformed token, wrong signing method, bad
// signature, expired claim) returns common.ErrInvalidToken. The caller is
// never told which check failed.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
