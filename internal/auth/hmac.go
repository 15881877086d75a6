package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// HMACConcat signs requests by concatenating the millisecond timestamp,
// method, request path (including query) and body, and MACing the result
// with HMAC-SHA256 over the raw UTF-8 secret. The timestamp travels verbatim
// in its own header so the receiver can validate its tolerance window.
type HMACConcat struct {
	key        string
	passphrase string
	secret     []byte

	now func() time.Time
}

func NewHMACConcat(creds Credentials) (*HMACConcat, error) {
	if creds.Key == "" {
		return nil, ErrMissingKey
	}
	if creds.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &HMACConcat{
		key:        creds.Key,
		passphrase: creds.Passphrase,
		secret:     []byte(creds.Secret),
		now:        time.Now,
	}, nil
}

func (h *HMACConcat) Sign(method, path, query, body string) (Headers, error) {
	ts := strconv.FormatInt(h.now().UnixMilli(), 10)

	requestPath := path
	if query != "" {
		requestPath += "?" + query
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(ts + method + requestPath + body))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return Headers{
		"ACCESS-KEY":        h.key,
		"ACCESS-SIGN":       sig,
		"ACCESS-TIMESTAMP":  ts,
		"ACCESS-PASSPHRASE": h.passphrase,
	}, nil
}
