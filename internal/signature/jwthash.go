package signature

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultBodyHashClaim is the claim FusionAuth puts the body digest in
const DefaultBodyHashClaim = "request_body_sha256"

// JWTBodyHash verifies deliveries that carry a signed JWT whose claims pin
// a SHA-256 digest of the exact body bytes. The token signature proves the
// sender holds the shared secret and the embedded digest proves the body
// was not altered in transit.
type JWTBodyHash struct {
	// Header carries the compact JWT
	Header string
	// Claim names the claim holding base64(SHA-256(body)), defaults to
	// DefaultBodyHashClaim
	Claim string
	// Secret is the HMAC signing secret configured at the provider
	Secret string
}

func (j *JWTBodyHash) Scheme() string {
	return "jwt"
}

// Verify parses the token, checks its signature and compares the body
// digest claim against a digest of the delivered body
func (j *JWTBodyHash) Verify(r *http.Request, body []byte) error {
	if j.Secret == "" {
		return NewHeaderError(ReasonConfigurationMissing, j.Header, "signing secret is not configured")
	}

	raw := r.Header.Get(j.Header)
	if raw == "" {
		return NewHeaderError(ReasonMissingCredential, j.Header, "missing token header")
	}

	// Only symmetric HMAC methods are accepted
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return &Error{
				Reason:  ReasonMalformedCredential,
				Header:  j.Header,
				Message: "token is not a valid JWT",
				Cause:   err,
			}
		}
		return &Error{
			Reason:  ReasonSignatureMismatch,
			Header:  j.Header,
			Message: "token rejected",
			Cause:   err,
		}
	}

	claimName := j.Claim
	if claimName == "" {
		claimName = DefaultBodyHashClaim
	}

	expected, ok := claims[claimName].(string)
	if !ok || expected == "" {
		return NewHeaderError(ReasonMalformedCredential, j.Header, "token is missing the %s claim", claimName)
	}

	sum := sha256.Sum256(body)
	if !EqualString(base64.StdEncoding.EncodeToString(sum[:]), expected) {
		return NewHeaderError(ReasonSignatureMismatch, j.Header, "body digest does not match the signed digest")
	}

	return nil
}
