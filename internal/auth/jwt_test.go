package auth

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseToken(t *testing.T, headers Headers, secret string) jwt.MapClaims {
	t.Helper()

	raw := strings.TrimPrefix(headers["Authorization"], "Bearer ")
	require.NotEqual(t, raw, headers["Authorization"], "missing Bearer prefix")

	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestJWTQueryHashNoQuery(t *testing.T) {
	a, err := NewJWTQueryHash(Credentials{Key: "access", Secret: "secret"})
	require.NoError(t, err)

	headers, err := a.Sign("GET", "/v1/accounts", "", "")
	require.NoError(t, err)

	claims := parseToken(t, headers, "secret")
	assert.Equal(t, "access", claims["access_key"])
	assert.NotEmpty(t, claims["nonce"])

	// No query parameters: the hash claims must be absent entirely, not a
	// hash of the empty string.
	_, hasHash := claims["query_hash"]
	assert.False(t, hasHash)
	_, hasAlg := claims["query_hash_alg"]
	assert.False(t, hasAlg)
}

func TestJWTQueryHashWithQuery(t *testing.T) {
	a, err := NewJWTQueryHash(Credentials{Key: "access", Secret: "secret"})
	require.NoError(t, err)

	headers, err := a.Sign("GET", "/v1/orders", "market=X-Y", "")
	require.NoError(t, err)

	claims := parseToken(t, headers, "secret")

	sum := sha512.Sum512([]byte("market=X-Y"))
	assert.Equal(t, hex.EncodeToString(sum[:]), claims["query_hash"])
	assert.Equal(t, "SHA512", claims["query_hash_alg"])
}

func TestJWTQueryHashFreshNoncePerRequest(t *testing.T) {
	a, err := NewJWTQueryHash(Credentials{Key: "access", Secret: "secret"})
	require.NoError(t, err)

	h1, err := a.Sign("GET", "/v1/accounts", "", "")
	require.NoError(t, err)
	h2, err := a.Sign("GET", "/v1/accounts", "", "")
	require.NoError(t, err)

	c1 := parseToken(t, h1, "secret")
	c2 := parseToken(t, h2, "secret")
	assert.NotEqual(t, c1["nonce"], c2["nonce"])
}
