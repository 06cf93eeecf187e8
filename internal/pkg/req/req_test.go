package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatfront/internal/pkg/errs"
)

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name     string
		req      *http.Request
		wantCode int
	}{
		{"valid", jsonRequest(`{"a":1}`), 0},
		{"trailing whitespace", jsonRequest("{\"a\":1}\n  "), 0},
		{"bad syntax", jsonRequest(`{"a":`), errs.ErrInvalidJSONFormat},
		{"extra value", jsonRequest(`{"a":1}{"b":2}`), errs.ErrExtraContentInBody},
		{"too large", jsonRequest(`{"a":"` + strings.Repeat("x", int(MaxJSONBodySize)) + `"}`), errs.ErrRequestEntityTooLarge},
		{"wrong content type", httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), errs.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst map[string]any
			customErr := BindJSON(httptest.NewRecorder(), tt.req, &dst)

			if tt.wantCode == 0 {
				require.Nil(t, customErr)
				assert.Equal(t, 1.0, dst["a"])
				return
			}
			require.NotNil(t, customErr)
			assert.Equal(t, tt.wantCode, customErr.Code)
		})
	}
}

func TestBindOptionalJSON_EmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	var dst map[string]any
	ok, customErr := BindOptionalJSON(httptest.NewRecorder(), r, &dst)

	assert.False(t, ok)
	assert.Nil(t, customErr)
	assert.Nil(t, dst)
}

func TestBindOptionalJSON_WithBody(t *testing.T) {
	var dst map[string]any
	ok, customErr := BindOptionalJSON(httptest.NewRecorder(), jsonRequest(`{"email":"a@b.com"}`), &dst)

	require.Nil(t, customErr)
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", dst["email"])
}
