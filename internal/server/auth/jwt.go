// Package auth wraps the token and password primitives the server relies on:
// HS256 JWTs for identity assertion and bcrypt for stored credentials.
package auth

import (
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the authenticated
// user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

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

func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrorInvalidToken
	}

	return claims.UserID, nil
}
