package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/models"
)

var testIdentity = models.Identity{
	UserID:   "u-123",
	Email:    "ana@example.com",
	Name:     "Ana",
	PhotoURL: "https://example.com/ana.png",
}

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("blog", testIdentity, time.Hour, "secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndParseJWTToken(token, "secret-key", "blog")
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, "blog", claims.Issuer)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		identity models.Identity
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", testIdentity, time.Hour, "key"},
		{"zero duration", "iss", testIdentity, 0, "key"},
		{"empty key", "iss", testIdentity, time.Hour, ""},
		{"empty subject", "iss", models.Identity{Email: "a@b.c"}, time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.identity, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken("blog", testIdentity, time.Hour, "secret-key")
	require.NoError(t, err)

	expired, err := GenerateJWTToken("blog", testIdentity, -time.Minute, "secret-key")
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid, "other-key", "blog")
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid, "secret-key", "someone-else")
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})
	t.Run("expired", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(expired, "secret-key", "blog")
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken("not.a.token", "secret-key", "")
		assert.Error(t, err)
	})
	t.Run("issuer check skipped when empty", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid, "secret-key", "")
		assert.NoError(t, err)
	})
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.Error(t, err, header)
	}
}

func TestParseUnverifiedClaims(t *testing.T) {
	token, err := GenerateJWTToken("blog", testIdentity, time.Hour, "whatever")
	require.NoError(t, err)

	claims, err := ParseUnverifiedClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	_, err = ParseUnverifiedClaims("garbage")
	assert.Error(t, err)
}
