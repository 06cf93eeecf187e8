package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, TokenTypeAdmin, claims.Type)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestGenerateToken_RequiresUsername(t *testing.T) {
	_, err := GenerateToken("", testSecret, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := GenerateToken("alice", testSecret, -time.Minute)
	require.NoError(t, err)

	wrongSecret, err := GenerateToken("alice", "other", time.Hour)
	require.NoError(t, err)

	chatToken, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"system_id": "drillquiz",
		"user_id":   "12345",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noType, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong secret": wrongSecret,
		"chat token":   chatToken,
		"no type":      noType,
		"garbage":      "not.a.token",
	} {
		_, err := ParseToken(tok, testSecret)
		assert.Error(t, err, name)
	}
}

func TestIdentityExtractorMiddleware(t *testing.T) {
	valid, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	var got *Claims
	h := IdentityExtractorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaimsFromContext(r)
	}))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer", "Bearer " + valid, "alice"},
		{"lowercase scheme", "bearer " + valid, "alice"},
		{"basic scheme", "Basic abc", ""},
		{"invalid token", "Bearer nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			h.ServeHTTP(httptest.NewRecorder(), r)

			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Username())
		})
	}
}

func TestWebSocketIdentityMiddleware(t *testing.T) {
	valid, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	var got *Claims
	h := WebSocketIdentityMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaimsFromContext(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/ws?"+AccessTokenParam+"="+valid, nil)
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username())

	got = nil
	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+valid)
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.NotNil(t, got)

	got = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws?"+AccessTokenParam+"=nope", nil))
	assert.Nil(t, got)
}

func TestRequireAdmin(t *testing.T) {
	valid, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	reached := false
	h := IdentityExtractorMiddleware(testSecret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+valid)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
