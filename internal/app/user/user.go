/*
Package user contains the representation of the signed-in principal shared by the
auth state store, the HTTP handlers and the chat widget.

A User is an open record: the login flow may attach any fields it likes, and the
only field the rest of the system relies on is "username".
*/
package user

import "maps"

const (
	// KeyUsername is the record key holding the resolved display name.
	KeyUsername = "username"

	// KeyEmail is consulted when no explicit username is supplied.
	KeyEmail = "email"

	// DefaultUsername is used when neither a username nor an email is present.
	DefaultUsername = "user"
)

// User is the authenticated principal. A nil User means nobody is signed in.
// Values are serialized as a flat JSON object.
type User map[string]any

// Clone returns a shallow copy of the record. Nested values are shared.
func (u User) Clone() User {
	if u == nil {
		return nil
	}

	c := make(User, len(u))
	maps.Copy(c, u)
	return c
}

// Username returns the username field when it is a string.
func (u User) Username() string {
	return u.str(KeyUsername)
}

// Email returns the email field when it is a string.
func (u User) Email() string {
	return u.str(KeyEmail)
}

func (u User) str(key string) string {
	s, _ := u[key].(string)
	return s
}

// ResolveUsername picks the display name for u: a non-empty username, else a
// non-empty email, else DefaultUsername.
func ResolveUsername(u User) string {
	if name := u.Username(); name != "" {
		return name
	}
	if email := u.Email(); email != "" {
		return email
	}
	return DefaultUsername
}

// Normalize returns a new record holding every field of u with the username
// replaced by ResolveUsername(u). A nil input stays nil.
func Normalize(u User) User {
	if u == nil {
		return nil
	}

	n := u.Clone()
	n[KeyUsername] = ResolveUsername(u)
	return n
}
