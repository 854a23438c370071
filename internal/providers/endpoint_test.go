package providers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webhook-examples/internal/signature"
)

func TestEndpoint_Handler_ValidDelivery(t *testing.T) {
	secret := "s3cr3t"
	body := []byte(`{"id":"evt_1"}`)

	rec := deliver(t, GitHub(secret), body, map[string]string{
		"X-Hub-Signature-256": "sha256=" + signHex(secret, body),
		"X-GitHub-Event":      "ping",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response["received"])
}

func TestEndpoint_Handler_TamperedSignature(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)

	rec := deliver(t, GitHub("s3cr3t"), body, map[string]string{
		"X-Hub-Signature-256": "sha256=" + strings.Repeat("0", 64),
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid signature"}`, rec.Body.String())
}

func TestEndpoint_Handler_RejectionIsGeneric(t *testing.T) {
	secret := "s3cr3t"
	body := []byte(`{"id":"evt_1"}`)

	// Different failure modes must be indistinguishable from the outside
	cases := []struct {
		name    string
		headers map[string]string
	}{
		{name: "missing header", headers: map[string]string{}},
		{name: "malformed header", headers: map[string]string{
			"X-Hub-Signature-256": "not-a-signature",
		}},
		{name: "wrong secret", headers: map[string]string{
			"X-Hub-Signature-256": "sha256=" + signHex("other-secret", body),
		}},
	}

	var responses []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := deliver(t, GitHub(secret), body, tc.headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			responses = append(responses, rec.Body.String())
		})
	}

	for i := 1; i < len(responses); i++ {
		assert.Equal(t, responses[0], responses[i])
	}
}

func TestEndpoint_Handler_MissingConfiguration(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)

	// No secret configured, even a correctly signed delivery answers 500
	rec := deliver(t, GitHub(""), body, map[string]string{
		"X-Hub-Signature-256": "sha256=" + signHex("s3cr3t", body),
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"webhook verification is not configured"}`, rec.Body.String())
}

func TestEndpoint_Handler_MalformedPayload(t *testing.T) {
	secret := "s3cr3t"
	body := []byte("not json at all")

	// Authentic delivery that the dispatcher cannot parse
	rec := deliver(t, GitHub(secret), body, map[string]string{
		"X-Hub-Signature-256": "sha256=" + signHex(secret, body),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid payload"}`, rec.Body.String())
}

func TestEndpoint_Handler_BodyAvailableToDispatch(t *testing.T) {
	payload := []byte(`{"hello":"world"}`)

	var captured []byte
	var rebuffered []byte

	endpoint := Endpoint{
		Name:     "capture",
		Path:     "/webhooks/capture",
		Verifier: &signature.StaticToken{Header: "X-Token", Token: "tok"},
		Dispatch: func(r *http.Request, body []byte) error {
			captured = body

			// The request body is restored after verification read it
			data, err := io.ReadAll(r.Body)
			if err != nil {
				return err
			}
			rebuffered = data
			return nil
		},
	}

	rec := deliver(t, endpoint, payload, map[string]string{"X-Token": "tok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, captured)
	assert.Equal(t, payload, rebuffered)
}

func TestEndpoint_Handler_UnreadableBody(t *testing.T) {
	endpoint := Endpoint{
		Name:     "broken",
		Path:     "/webhooks/broken",
		Verifier: &signature.StaticToken{Header: "X-Token", Token: "tok"},
		Dispatch: func(r *http.Request, body []byte) error { return nil },
	}

	req := httptest.NewRequest(http.MethodPost, endpoint.Path, failingReader{})
	req.Header.Set("X-Token", "tok")

	rec := httptest.NewRecorder()
	endpoint.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unable to read request body"}`, rec.Body.String())
}

// Test helpers

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func signHex(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func deliver(t *testing.T, endpoint Endpoint, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, endpoint.Path, bytes.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	endpoint.Handler().ServeHTTP(rec, req)
	return rec
}

func createSignedRequest(header, value string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/test", bytes.NewReader(body))
	req.Header.Set(header, value)
	return req
}
