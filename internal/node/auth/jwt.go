// Package auth issues and validates wallet session tokens. A session token
// is an HS256 JWT carrying the account address; it stands in for the wallet
// signature on write requests.
package auth

import (
	"time"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the wallet account address.
type Claims struct {
	jwt.RegisteredClaims
	Account string
}

// GenerateToken signs a session token for the given account.
func GenerateToken(account string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Account: account,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountFromToken validates a session token and extracts the account.
func GetAccountFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Account, nil
}
