package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"strconv"
)

// PathChain signs requests with HMAC-SHA512 over the base64-decoded secret,
// chaining the URL path bytes with SHA256(nonce + postData). The nonce is
// strictly increasing per credential set and is returned in the headers so
// the adapter can embed the same value in the form body it dispatches.
type PathChain struct {
	key    string
	secret []byte
	nonce  *Nonce
}

func NewPathChain(creds Credentials) (*PathChain, error) {
	if creds.Key == "" {
		return nil, ErrMissingKey
	}
	if creds.Secret == "" {
		return nil, ErrMissingSecret
	}
	secret, err := base64.StdEncoding.DecodeString(creds.Secret)
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}
	return &PathChain{
		key:    creds.Key,
		secret: secret,
		nonce:  NewNonce(),
	}, nil
}

func (p *PathChain) Sign(method, path, query, body string) (Headers, error) {
	nonce := strconv.FormatInt(p.nonce.Next(), 10)

	inner := sha256.Sum256([]byte(nonce + body))

	mac := hmac.New(sha512.New, p.secret)
	mac.Write([]byte(path))
	mac.Write(inner[:])
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return Headers{
		"API-Key":   p.key,
		"API-Sign":  sig,
		"API-Nonce": nonce,
	}, nil
}
