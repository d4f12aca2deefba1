package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("0xAlice", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	account, err := GetAccountFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "0xAlice", account)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("0xAlice", []byte("secret-a"), time.Minute)
	require.NoError(t, err)

	_, err = GetAccountFromToken(token, []byte("secret-b"))
	require.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("0xAlice", []byte("s"), -time.Minute)
	require.NoError(t, err)

	_, err = GetAccountFromToken(token, []byte("s"))
	require.Error(t, err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := GetAccountFromToken("not-a-token", []byte("s"))
	require.Error(t, err)
}
