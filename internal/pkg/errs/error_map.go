package errs

import "net/http"

// errorMap holds the client-facing message and HTTP status for every code.
// A zero Status is rendered as 200 with the error carried in the envelope code.
var errorMap = map[int]CustomError{
	// 1xxx
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 3xxx
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx
	ErrViewNotFound:        {Code: ErrViewNotFound, Message: "Page not found.", Status: http.StatusNotFound},
	ErrProxyRouteNotFound:  {Code: ErrProxyRouteNotFound, Message: "No back end serves this path.", Status: http.StatusNotFound},
	ErrUpstreamUnavailable: {Code: ErrUpstreamUnavailable, Message: "Back end %s is unavailable.", Status: http.StatusBadGateway},

	// 5xxx
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
