/*
Package jwt issues and verifies the HS256 admin tokens the admin back end hands
to the browser, and extracts the caller's identity from the Authorization header.
*/
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AdminTokenExpiration is the lifetime of an admin token.
	AdminTokenExpiration = 24 * time.Hour

	// TokenIssuer identifies tokens minted by this service.
	TokenIssuer = "chatfront"
)

var (
	// ErrMissingSubject is returned for tokens without a sub claim.
	ErrMissingSubject = errors.New("token has no subject")

	// ErrWrongTokenType is returned for tokens whose type claim is not admin.
	ErrWrongTokenType = errors.New("token is not an admin token")
)

// GenerateToken signs an admin token for username valid for duration.
func GenerateToken(username, secretKey string, duration time.Duration) (string, error) {
	if username == "" {
		return "", ErrMissingSubject
	}

	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   username,
			ExpiresAt: now.Add(duration).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
		Type: TokenTypeAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secretKey))
}

// ParseToken verifies tokenString with secretKey and returns its claims.
// Tokens signed by other issuers are accepted as long as they carry a subject
// and the admin type.
func ParseToken(tokenString, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	if claims.Type != TokenTypeAdmin {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
