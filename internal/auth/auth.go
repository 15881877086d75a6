// Package auth implements the request-signing strategies used for private
// exchange endpoints. Each exchange adapter selects one protocol at
// construction time; a signer validates and derives its key material up
// front so malformed credentials fail synchronously instead of on the first
// signed request.
package auth

import (
	"errors"
	"fmt"
)

// Headers holds the transport-level authentication headers for one request.
type Headers map[string]string

// Protocol identifies one of the supported signature protocols. The set is
// closed: every supported exchange maps onto exactly one of these shapes.
type Protocol string

const (
	// ProtocolHMACConcat signs timestamp+method+path+query+body with
	// HMAC-SHA256 over the raw secret and sends a separate passphrase header.
	ProtocolHMACConcat Protocol = "hmac-concat"
	// ProtocolJWTQueryHash issues an HS256 token embedding the access key, a
	// nonce and, for requests with query parameters, a SHA-512 hash of the
	// canonical query string.
	ProtocolJWTQueryHash Protocol = "jwt-query-hash"
	// ProtocolPathChain signs path ++ SHA256(nonce+postData) with HMAC-SHA512
	// over the base64-decoded secret.
	ProtocolPathChain Protocol = "path-chain"
)

// Credentials carries one exchange API credential set. Passphrase is only
// used by the hmac-concat protocol.
type Credentials struct {
	Key        string
	Secret     string
	Passphrase string
}

// Authenticator produces the authentication headers for one private request.
// Implementations are safe for concurrent use; the path-chain strategy
// additionally guarantees a strictly increasing nonce per credential set,
// which requires callers to serialize dispatch per credential.
type Authenticator interface {
	Sign(method, path, query, body string) (Headers, error)
}

var (
	ErrUnknownProtocol = errors.New("unknown signature protocol")
	ErrMissingKey      = errors.New("missing API key")
	ErrMissingSecret   = errors.New("missing API secret")
)

// New constructs the authenticator for the given protocol.
func New(protocol Protocol, creds Credentials) (Authenticator, error) {
	switch protocol {
	case ProtocolHMACConcat:
		return NewHMACConcat(creds)
	case ProtocolJWTQueryHash:
		return NewJWTQueryHash(creds)
	case ProtocolPathChain:
		return NewPathChain(creds)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, protocol)
}
