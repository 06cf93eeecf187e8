package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_Known(t *testing.T) {
	err := NewError(ErrUnauthorized)

	assert.Equal(t, ErrUnauthorized, err.Code)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Contains(t, err.Error(), "3001")
}

func TestNewError_FormatsDetails(t *testing.T) {
	err := NewError(ErrUpstreamUnavailable, "chat-admin")

	assert.Equal(t, "Back end chat-admin is unavailable.", err.Message)
	assert.Equal(t, http.StatusBadGateway, err.Status)
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	err := NewError(123456, "ignored")

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewError_UnknownKeepsMessageGeneric(t *testing.T) {
	err := NewError(ErrUnknown, errors.New("db exploded"))

	assert.NotContains(t, err.Message, "db exploded")
}

func TestNewError_DoesNotMutateTemplate(t *testing.T) {
	first := NewError(ErrUpstreamUnavailable, "a")
	second := NewError(ErrUpstreamUnavailable, "b")

	assert.NotEqual(t, first.Message, second.Message)
	assert.Contains(t, errorMap[ErrUpstreamUnavailable].Message, "%s")
}
