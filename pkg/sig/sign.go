package sig

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
)

// Digest returns the raw HMAC-SHA1 of the canonical form of p, keyed by
// secret. A "sign" entry in p never takes part in its own signature.
func Digest(p Params, secret []byte) []byte {
	payload := p
	if _, ok := p[KeySign]; ok {
		payload = p.Without(KeySign)
	}
	h := hmac.New(sha1.New, secret)
	h.Write(Canonicalize(payload))
	return h.Sum(nil)
}

// Sign returns the value sent as the "sign" parameter: the standard base64
// encoding of Digest(p, secret).
func Sign(p Params, secret []byte) string {
	return base64.StdEncoding.EncodeToString(Digest(p, secret))
}

// SignHex returns Digest(p, secret) as lowercase hex.
func SignHex(p Params, secret []byte) string {
	return hex.EncodeToString(Digest(p, secret))
}

// Verify reports whether signature is the valid base64 signature of p.
func Verify(p Params, secret []byte, signature string) bool {
	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, Digest(p, secret))
}
