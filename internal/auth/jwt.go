package auth

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTQueryHash signs requests with an HS256 token whose payload carries the
// access key and a fresh nonce. When the request has query parameters the
// payload additionally carries a lowercase hex SHA-512 digest of the
// canonical query string; a request without parameters omits the hash claims
// entirely rather than hashing an empty string.
type JWTQueryHash struct {
	key    string
	secret []byte

	nonce func() string
}

func NewJWTQueryHash(creds Credentials) (*JWTQueryHash, error) {
	if creds.Key == "" {
		return nil, ErrMissingKey
	}
	if creds.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTQueryHash{
		key:    creds.Key,
		secret: []byte(creds.Secret),
		nonce:  uuid.NewString,
	}, nil
}

func (j *JWTQueryHash) Sign(method, path, query, body string) (Headers, error) {
	claims := jwt.MapClaims{
		"access_key": j.key,
		"nonce":      j.nonce(),
	}

	if query != "" {
		sum := sha512.Sum512([]byte(query))
		claims["query_hash"] = hex.EncodeToString(sum[:])
		claims["query_hash_alg"] = "SHA512"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return Headers{
		"Authorization": "Bearer " + signed,
	}, nil
}
