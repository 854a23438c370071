package signature

import (
	"bytes"
	"io"
	"net/http"
)

// Verifier authenticates a webhook delivery before the payload is parsed.
//
// Implementations are stateless and safe for concurrent use. Verify never
// reads from the request body itself; the caller reads the body once and
// passes it in so the exact delivered bytes are what gets verified.
type Verifier interface {
	// Scheme names the verification scheme for logging
	Scheme() string

	// Verify checks the request against the raw body. A nil return means
	// the delivery is authentic. Any non-nil error is an *Error carrying
	// the rejection reason.
	Verify(r *http.Request, body []byte) error
}

// PreserveRequestBody reads and preserves the request body for signature verification
func PreserveRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	// Replace the body with a new reader
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
