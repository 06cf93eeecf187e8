package jwt

import "github.com/golang-jwt/jwt"

// TokenTypeAdmin is the type claim carried by tokens issued to admin users.
const TokenTypeAdmin = "admin"

// Claims is the payload of an admin token: the standard claims at the top level
// (sub holds the username) plus the token type.
type Claims struct {
	jwt.StandardClaims

	// Type distinguishes admin tokens from chat tokens signed with the same secret.
	Type string `json:"type"`
}

// Username returns the subject of the token.
func (c *Claims) Username() string {
	return c.Subject
}
