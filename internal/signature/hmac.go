package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"net/http"
	"strings"
)

// Supported HMAC algorithms
const (
	AlgorithmSHA1   = "hmac-sha1"
	AlgorithmSHA256 = "hmac-sha256"
	AlgorithmSHA512 = "hmac-sha512"
)

// Supported digest encodings
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// HMAC verifies a single-header HMAC digest computed over the raw request
// body. This covers providers like GitHub (hex with a "sha256=" prefix),
// Shopify and WooCommerce (bare base64) and Vercel (bare hex, SHA-1).
type HMAC struct {
	// Header is the request header carrying the digest
	Header string
	// Prefix is stripped from the header value before decoding, e.g. "sha256="
	Prefix string
	// Algorithm selects the hash, defaults to AlgorithmSHA256
	Algorithm string
	// Encoding is how the provider encodes the digest, defaults to EncodingHex
	Encoding string
	// Secret is the shared signing secret
	Secret string
}

func (h *HMAC) Scheme() string {
	return "hmac"
}

// Verify recomputes the digest over body and compares it to the header value
func (h *HMAC) Verify(r *http.Request, body []byte) error {
	if h.Secret == "" {
		return NewHeaderError(ReasonConfigurationMissing, h.Header, "signing secret is not configured")
	}

	value := r.Header.Get(h.Header)
	if value == "" {
		return NewHeaderError(ReasonMissingCredential, h.Header, "missing signature header")
	}

	if h.Prefix != "" {
		if !strings.HasPrefix(value, h.Prefix) {
			return NewHeaderError(ReasonMalformedCredential, h.Header, "signature is missing the %q prefix", h.Prefix)
		}
		value = strings.TrimPrefix(value, h.Prefix)
	}

	provided, err := decodeDigest(h.encoding(), value)
	if err != nil {
		return &Error{
			Reason:  ReasonMalformedCredential,
			Header:  h.Header,
			Message: "signature is not valid " + h.encoding(),
			Cause:   err,
		}
	}

	expected, err := computeHMAC(h.algorithm(), []byte(h.Secret), body)
	if err != nil {
		return err
	}

	if !Equal(provided, expected) {
		return NewHeaderError(ReasonSignatureMismatch, h.Header, "signature mismatch")
	}

	return nil
}

func (h *HMAC) algorithm() string {
	if h.Algorithm == "" {
		return AlgorithmSHA256
	}
	return h.Algorithm
}

func (h *HMAC) encoding() string {
	if h.Encoding == "" {
		return EncodingHex
	}
	return h.Encoding
}

// computeHMAC calculates the MAC over data with the named algorithm
func computeHMAC(algorithm string, key, data []byte) ([]byte, error) {
	var mac hash.Hash

	switch algorithm {
	case AlgorithmSHA1:
		mac = hmac.New(sha1.New, key)
	case AlgorithmSHA256:
		mac = hmac.New(sha256.New, key)
	case AlgorithmSHA512:
		mac = hmac.New(sha512.New, key)
	default:
		return nil, NewError(ReasonConfigurationMissing, "unsupported algorithm: %s", algorithm)
	}

	mac.Write(data)
	return mac.Sum(nil), nil
}

// decodeDigest decodes a digest string in the named encoding
func decodeDigest(encoding, value string) ([]byte, error) {
	switch encoding {
	case EncodingHex:
		return hex.DecodeString(value)
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(value)
	default:
		return nil, NewError(ReasonConfigurationMissing, "unsupported encoding: %s", encoding)
	}
}
