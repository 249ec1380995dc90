package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("6617f2a9c2b4a1d3e4f5a6b7", tokenSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token, tokenSecret)
	require.NoError(t, err)
	assert.Equal(t, "6617f2a9c2b4a1d3e4f5a6b7", userID)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", tokenSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, tokenSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", tokenSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "definitely-not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tokenSecret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
