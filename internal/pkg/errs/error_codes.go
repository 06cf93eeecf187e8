/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both inside the
server and in the JSON envelopes returned to the browser.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 3xxx: Authentication Errors
const (
	// ErrUnauthorized indicates the request carried no usable admin token.
	ErrUnauthorized = 3001
)

// 4xxx: Front-end Routing Errors
const (
	// ErrViewNotFound indicates that no view or static asset matches the path.
	ErrViewNotFound = 4001

	// ErrProxyRouteNotFound indicates that no proxy rule matches the path.
	ErrProxyRouteNotFound = 4002

	// ErrUpstreamUnavailable indicates that the proxied back end could not be reached.
	ErrUpstreamUnavailable = 4003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
