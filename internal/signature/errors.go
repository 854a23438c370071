package signature

import "fmt"

// Reason classifies why a verifier rejected a request
type Reason string

const (
	// ReasonMissingCredential means the request carried no credential at all
	ReasonMissingCredential Reason = "missing_credential"
	// ReasonMalformedCredential means a credential was present but could not be parsed
	ReasonMalformedCredential Reason = "malformed_credential"
	// ReasonReplayWindowExceeded means the signed timestamp is outside the accepted window
	ReasonReplayWindowExceeded Reason = "replay_window_exceeded"
	// ReasonSignatureMismatch means the credential parsed but did not match
	ReasonSignatureMismatch Reason = "signature_mismatch"
	// ReasonCredentialInQuery means the credential was sent in the query string
	ReasonCredentialInQuery Reason = "credential_in_query"
	// ReasonConfigurationMissing means the verifier has no secret material to verify with
	ReasonConfigurationMissing Reason = "configuration_missing"
)

// Error is the failure type returned by every verifier in this package
type Error struct {
	Reason  Reason
	Header  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("signature verification failed for header %s: %s", e.Header, e.Message)
	}
	return fmt.Sprintf("signature verification failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a verification error with the given rejection reason
func NewError(reason Reason, format string, args ...interface{}) *Error {
	return &Error{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewHeaderError creates a verification error tied to a specific request header
func NewHeaderError(reason Reason, header, format string, args ...interface{}) *Error {
	return &Error{
		Reason:  reason,
		Header:  header,
		Message: fmt.Sprintf(format, args...),
	}
}

// ReasonOf extracts the rejection reason from an error returned by a
// verifier. Errors from outside this package map to ReasonSignatureMismatch
// so callers fail closed.
func ReasonOf(err error) Reason {
	if verr, ok := err.(*Error); ok {
		return verr.Reason
	}
	return ReasonSignatureMismatch
}

// IsConfigurationMissing checks if the error is a server-side configuration
// failure rather than a problem with the request
func IsConfigurationMissing(err error) bool {
	return ReasonOf(err) == ReasonConfigurationMissing
}
