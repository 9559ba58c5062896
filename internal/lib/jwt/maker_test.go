package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name   string
		userID string
		role   string
	}{
		{
			name:   "admin user",
			userID: "550e8400-e29b-41d4-a716-446655440000",
			role:   "ADMIN",
		},
		{
			name:   "regular user",
			userID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			role:   "USER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID, tt.role)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.userID, claims.Subject)
		})
	}
}

func TestJWTMaker_ParseToken_Invalid(t *testing.T) {
	maker := NewJWTMaker("secret", time.Hour)
	other := NewJWTMaker("other_secret", time.Hour)

	expired := NewJWTMaker("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("user-1", "USER")
	require.NoError(t, err)

	foreignToken, err := other.GenerateToken("user-1", "USER")
	require.NoError(t, err)

	noUser, err := maker.GenerateToken("", "USER")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{UserID: "user-1", Role: "ADMIN"})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "expired", token: expiredToken},
		{name: "wrong signature", token: foreignToken},
		{name: "missing user id", token: noUser},
		{name: "alg none", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
