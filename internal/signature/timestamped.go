package signature

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance bounds how far a signed timestamp may drift from the
// server clock before the delivery is rejected as a replay
const DefaultTolerance = 5 * time.Minute

// SigningSecretPrefix marks signing secrets issued by Svix-style portals
const SigningSecretPrefix = "whsec_"

// TimestampedHMAC verifies schemes that bind a delivery timestamp into the
// signed content so a captured request cannot be replayed later.
//
// Providers ship the signature in one of three layouts:
//
//   - combined: timestamp and signature candidates share one header as
//     key=value elements, e.g. Stripe "t=...,v1=..." or Paddle "ts=...;h1=..."
//   - tagged: a dedicated timestamp header plus space-separated "v1,<sig>"
//     candidates, the Svix and Standard Webhooks layout
//   - bare: a dedicated timestamp header plus a single untagged signature
//     value, e.g. Webflow
//
// The raw timestamp string from the request is used verbatim when building
// the signed content. Multiple candidates exist for secret rotation, any
// single match accepts the delivery.
type TimestampedHMAC struct {
	// SignatureHeader carries the signature candidates
	SignatureHeader string
	// TimestampHeader carries the timestamp when it is not embedded in the
	// signature header
	TimestampHeader string
	// IDHeader carries the message id for schemes that sign it
	IDHeader string

	// TimestampKey names the timestamp element of a combined header, e.g.
	// "t" for Stripe. Leave empty when the timestamp has its own header.
	TimestampKey string
	// SignatureKey names the signature elements of a combined header or the
	// candidate tag in the tagged layout, e.g. "v1"
	SignatureKey string
	// ElementSep separates the elements of a combined header, "," or ";"
	ElementSep string

	// Tagged selects the tagged candidate layout
	Tagged bool

	// ContentSep joins id and timestamp to the body, defaults to "."
	ContentSep string
	// Encoding of the signature digest, defaults to EncodingHex
	Encoding string
	// Key is the raw signing key
	Key []byte
	// Tolerance overrides DefaultTolerance when non-zero
	Tolerance time.Duration
	// Millis marks the timestamp as milliseconds rather than seconds
	Millis bool
}

func (t *TimestampedHMAC) Scheme() string {
	return "timestamped-hmac"
}

// Verify checks the delivery timestamp against the replay window, then
// recomputes the MAC over the signed content and compares it against every
// signature candidate
func (t *TimestampedHMAC) Verify(r *http.Request, body []byte) error {
	if len(t.Key) == 0 {
		return NewHeaderError(ReasonConfigurationMissing, t.SignatureHeader, "signing secret is not configured")
	}

	header := r.Header.Get(t.SignatureHeader)
	if header == "" {
		return NewHeaderError(ReasonMissingCredential, t.SignatureHeader, "missing signature header")
	}

	timestamp, candidates, err := t.parseRequest(r, header)
	if err != nil {
		return err
	}

	if err := t.checkTimestamp(timestamp); err != nil {
		return err
	}

	expected, err := computeHMAC(AlgorithmSHA256, t.Key, t.signedContent(r, timestamp, body))
	if err != nil {
		return err
	}

	decodable := false
	for _, candidate := range candidates {
		provided, err := decodeDigest(t.encoding(), candidate)
		if err != nil {
			continue
		}
		decodable = true
		if Equal(provided, expected) {
			return nil
		}
	}

	if !decodable {
		return NewHeaderError(ReasonMalformedCredential, t.SignatureHeader, "no signature candidate is valid %s", t.encoding())
	}
	return NewHeaderError(ReasonSignatureMismatch, t.SignatureHeader, "no signature candidate matched")
}

// parseRequest extracts the timestamp string and the signature candidates
// for the configured header layout
func (t *TimestampedHMAC) parseRequest(r *http.Request, header string) (string, []string, error) {
	if t.TimestampKey != "" {
		return t.parseCombined(header)
	}

	timestamp := r.Header.Get(t.TimestampHeader)
	if timestamp == "" {
		return "", nil, NewHeaderError(ReasonMalformedCredential, t.TimestampHeader, "missing timestamp header")
	}
	if t.IDHeader != "" && r.Header.Get(t.IDHeader) == "" {
		return "", nil, NewHeaderError(ReasonMalformedCredential, t.IDHeader, "missing message id header")
	}

	if !t.Tagged {
		return timestamp, []string{header}, nil
	}

	// Tagged candidates are space separated "v1,<sig>" pairs. Candidates
	// carrying other version tags are ignored.
	var candidates []string
	for _, field := range strings.Fields(header) {
		parts := strings.SplitN(field, ",", 2)
		if len(parts) != 2 {
			continue
		}
		if parts[0] == t.SignatureKey {
			candidates = append(candidates, parts[1])
		}
	}
	if len(candidates) == 0 {
		return "", nil, NewHeaderError(ReasonMalformedCredential, t.SignatureHeader, "no %s signature candidate in header", t.SignatureKey)
	}

	return timestamp, candidates, nil
}

// parseCombined splits a combined header like "t=123,v1=abc,v1=def" into
// the timestamp and the signature candidates
func (t *TimestampedHMAC) parseCombined(header string) (string, []string, error) {
	var timestamp string
	var candidates []string

	for _, element := range strings.Split(header, t.ElementSep) {
		parts := strings.SplitN(strings.TrimSpace(element), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case t.TimestampKey:
			if timestamp == "" {
				timestamp = parts[1]
			}
		case t.SignatureKey:
			candidates = append(candidates, parts[1])
		}
	}

	if timestamp == "" {
		return "", nil, NewHeaderError(ReasonMalformedCredential, t.SignatureHeader, "no %s timestamp element in header", t.TimestampKey)
	}
	if len(candidates) == 0 {
		return "", nil, NewHeaderError(ReasonMalformedCredential, t.SignatureHeader, "no %s signature element in header", t.SignatureKey)
	}

	return timestamp, candidates, nil
}

// checkTimestamp rejects deliveries whose timestamp is outside the replay
// window on either side of the server clock
func (t *TimestampedHMAC) checkTimestamp(raw string) error {
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &Error{
			Reason:  ReasonMalformedCredential,
			Header:  t.timestampSource(),
			Message: "timestamp is not a valid integer",
			Cause:   err,
		}
	}

	var issued time.Time
	if t.Millis {
		issued = time.UnixMilli(ts)
	} else {
		issued = time.Unix(ts, 0)
	}

	age := time.Since(issued)
	if age < 0 {
		age = -age // Handle future timestamps
	}

	if age > t.tolerance() {
		return NewHeaderError(ReasonReplayWindowExceeded, t.timestampSource(), "timestamp is %v outside the replay window", (age - t.tolerance()).Round(time.Second))
	}

	return nil
}

// signedContent builds the canonical bytes the provider signed, joining the
// optional message id and the raw timestamp string to the body
func (t *TimestampedHMAC) signedContent(r *http.Request, timestamp string, body []byte) []byte {
	var prefix string
	if t.IDHeader != "" {
		prefix = r.Header.Get(t.IDHeader) + t.contentSep()
	}
	prefix += timestamp + t.contentSep()

	return append([]byte(prefix), body...)
}

func (t *TimestampedHMAC) timestampSource() string {
	if t.TimestampHeader != "" {
		return t.TimestampHeader
	}
	return t.SignatureHeader
}

func (t *TimestampedHMAC) tolerance() time.Duration {
	if t.Tolerance > 0 {
		return t.Tolerance
	}
	return DefaultTolerance
}

func (t *TimestampedHMAC) contentSep() string {
	if t.ContentSep == "" {
		return "."
	}
	return t.ContentSep
}

func (t *TimestampedHMAC) encoding() string {
	if t.Encoding == "" {
		return EncodingHex
	}
	return t.Encoding
}

// Svix builds the verifier for providers that deliver through Svix, such as
// Clerk and Resend. Svix signs "{id}.{timestamp}.{body}" and publishes the
// secret in portal form, "whsec_" followed by the base64 key.
func Svix(secret string) *TimestampedHMAC {
	return &TimestampedHMAC{
		SignatureHeader: "svix-signature",
		TimestampHeader: "svix-timestamp",
		IDHeader:        "svix-id",
		SignatureKey:    "v1",
		Tagged:          true,
		Encoding:        EncodingBase64,
		Key:             DecodeSigningSecret(secret),
	}
}

// StandardWebhooks builds the verifier for the Standard Webhooks header set
// used by OpenAI and Replicate. The scheme is identical to Svix under
// "webhook-*" header names.
func StandardWebhooks(secret string) *TimestampedHMAC {
	v := Svix(secret)
	v.SignatureHeader = "webhook-signature"
	v.TimestampHeader = "webhook-timestamp"
	v.IDHeader = "webhook-id"
	return v
}

// DecodeSigningSecret strips the "whsec_" prefix and base64-decodes the
// rest. It returns nil when the secret is empty or not in portal form, and
// verifiers treat a nil key as missing configuration.
func DecodeSigningSecret(secret string) []byte {
	if !strings.HasPrefix(secret, SigningSecretPrefix) {
		return nil
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, SigningSecretPrefix))
	if err != nil {
		return nil
	}
	return key
}
