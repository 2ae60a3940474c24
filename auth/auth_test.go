package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndVerifyToken(t *testing.T) {
	p := Principal{UserID: "u-1", Email: "maria@example.com"}

	token, err := MintToken("secret", p, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := VerifyToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestMintTokenRequiresPrincipal(t *testing.T) {
	_, err := MintToken("secret", Principal{}, time.Hour)
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := MintToken("secret", Principal{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := MintToken("secret", Principal{UserID: "u-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("secret", "not-a-token")
	assert.Error(t, err)
}

func TestPrincipalValid(t *testing.T) {
	assert.True(t, Principal{UserID: "u-1"}.Valid())
	assert.False(t, Principal{Email: "maria@example.com"}.Valid())
}
