/*
Package handler provides HTTP handler functions for the browser's auth state.
*/
package handler

import (
	"net/http"

	"chatfront/internal/app/user"
	"chatfront/internal/pkg/auth/jwt"
	"chatfront/internal/pkg/errs"
	"chatfront/internal/pkg/logx"
	"chatfront/internal/pkg/req"
	"chatfront/internal/pkg/resp"
)

// UserResponse is the payload of GET /api/auth/user.
type UserResponse struct {
	User user.User `json:"user"`
}

// HandleGetUser returns the current user, or null when anonymous.
func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, UserResponse{User: deps.Store.CurrentUser()})
	}
}

// HandleGetState returns the current auth snapshot.
func HandleGetState(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Store.Snapshot())
	}
}

// HandleLogin makes the bearer of a valid admin token the current user.
//
// The optional JSON object body carries extra profile fields (email, role, ...).
// The username is always the token subject. A request without a usable token
// is rejected and leaves the current user untouched.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)
		if claims == nil {
			logx.Warn("Login rejected: no valid admin token.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		profile := user.User{}
		if _, customErr := req.BindOptionalJSON(w, r, &profile); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if profile == nil {
			profile = user.User{}
		}
		profile[user.KeyUsername] = claims.Username()

		deps.Store.SetAuthUser(profile)

		logx.Info("User logged in.", "username", claims.Username())

		resp.RespondSuccess(w, r, deps.Store.Snapshot())
	}
}

// HandleLogout clears the current user. It requires an admin token and
// succeeds when already anonymous.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wasAuthenticated := deps.Store.Authenticated()
		deps.Store.SetAuthUser(nil)

		if wasAuthenticated {
			logx.Info("User logged out.")
		}

		resp.RespondSuccess(w, r, deps.Store.Snapshot())
	}
}
