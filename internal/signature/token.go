package signature

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// StaticToken verifies a pre-shared token delivered in a request header.
// Tokens in the query string are rejected outright, even when a valid
// credential is also present elsewhere, because URLs leak into access logs
// and proxies.
type StaticToken struct {
	// Header is the primary header carrying the token
	Header string
	// AllowBearer also accepts the token as an Authorization bearer credential
	AllowBearer bool
	// QueryParam names the query parameter that must not carry the token
	QueryParam string
	// Token is the expected value
	Token string
}

func (s *StaticToken) Scheme() string {
	return "token"
}

// Verify compares the delivered token against the configured value
func (s *StaticToken) Verify(r *http.Request, body []byte) error {
	if s.Token == "" {
		return NewHeaderError(ReasonConfigurationMissing, s.Header, "token is not configured")
	}

	// Rejected before any credential is inspected
	if s.QueryParam != "" && r.URL.Query().Get(s.QueryParam) != "" {
		return NewHeaderError(ReasonCredentialInQuery, s.Header, "token passed in query parameter %q", s.QueryParam)
	}

	provided := r.Header.Get(s.Header)
	if provided == "" && s.AllowBearer {
		if auth := r.Header.Get("Authorization"); auth != "" {
			if !strings.HasPrefix(auth, "Bearer ") {
				return NewHeaderError(ReasonMalformedCredential, "Authorization", "authorization header is not a bearer credential")
			}
			provided = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if provided == "" {
		return NewHeaderError(ReasonMissingCredential, s.Header, "missing token")
	}

	if !EqualString(provided, s.Token) {
		return NewHeaderError(ReasonSignatureMismatch, s.Header, "token mismatch")
	}

	return nil
}

// BasicAuth verifies RFC 7617 basic credentials. Like StaticToken it
// rejects credentials sent through the query string.
type BasicAuth struct {
	// Username is the expected user name
	Username string
	// Password is the expected password
	Password string
	// QueryParam names the query parameter that must not carry a credential
	QueryParam string
}

func (b *BasicAuth) Scheme() string {
	return "basic"
}

// Verify decodes the Authorization header and compares both credential
// halves against the configured values
func (b *BasicAuth) Verify(r *http.Request, body []byte) error {
	if b.Username == "" || b.Password == "" {
		return NewHeaderError(ReasonConfigurationMissing, "Authorization", "basic auth credentials are not configured")
	}

	if b.QueryParam != "" && r.URL.Query().Get(b.QueryParam) != "" {
		return NewHeaderError(ReasonCredentialInQuery, "Authorization", "credential passed in query parameter %q", b.QueryParam)
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return NewHeaderError(ReasonMissingCredential, "Authorization", "missing authorization header")
	}

	const prefix = "Basic "
	if !strings.HasPrefix(auth, prefix) {
		return NewHeaderError(ReasonMalformedCredential, "Authorization", "authorization header is not a basic credential")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, prefix))
	if err != nil {
		return &Error{
			Reason:  ReasonMalformedCredential,
			Header:  "Authorization",
			Message: "credential is not valid base64",
			Cause:   err,
		}
	}

	// Split on the first colon only, passwords may contain colons
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return NewHeaderError(ReasonMalformedCredential, "Authorization", "credential has no password separator")
	}

	// Always evaluate both comparisons
	userOK := EqualString(parts[0], b.Username)
	passOK := EqualString(parts[1], b.Password)
	if !userOK || !passOK {
		return NewHeaderError(ReasonSignatureMismatch, "Authorization", "credentials do not match")
	}

	return nil
}
