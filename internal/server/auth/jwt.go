// Package auth mints and verifies the HS256 bearer tokens that carry the
// requester identity. A token embeds {username, sub: userID} and is the sole
// trust boundary: no DB lookup happens after verification.
package auth

import (
	"time"

	"github.com/akosarev/notekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claim set with the username.
// The user id travels in the standard Subject ("sub") claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func GenerateToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates signature and expiry and returns the embedded identity.
func ParseToken(tokenString string, secretKey []byte) (userID, username string, err error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid || claims.Subject == "" {
		return "", "", common.ErrInvalidToken
	}

	return claims.Subject, claims.Username, nil
}
