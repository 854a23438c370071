package signature

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticToken_Scheme(t *testing.T) {
	verifier := &StaticToken{}
	assert.Equal(t, "token", verifier.Scheme())
}

func TestStaticToken_Verify(t *testing.T) {
	token := "valid-token-123"

	tests := []struct {
		name        string
		verifier    *StaticToken
		headers     map[string]string
		queryParams map[string]string
		expectError bool
		reason      Reason
	}{
		{
			name: "valid token in header",
			verifier: &StaticToken{
				Header: "X-Gitlab-Token",
				Token:  token,
			},
			headers: map[string]string{
				"X-Gitlab-Token": token,
			},
			expectError: false,
		},
		{
			name: "valid bearer token",
			verifier: &StaticToken{
				Header:      "X-OpenClaw-Token",
				AllowBearer: true,
				Token:       token,
			},
			headers: map[string]string{
				"Authorization": "Bearer " + token,
			},
			expectError: false,
		},
		{
			name: "primary header wins over authorization",
			verifier: &StaticToken{
				Header:      "X-OpenClaw-Token",
				AllowBearer: true,
				Token:       token,
			},
			headers: map[string]string{
				"X-OpenClaw-Token": token,
				"Authorization":    "Basic ignored",
			},
			expectError: false,
		},
		{
			name: "authorization is not a bearer credential",
			verifier: &StaticToken{
				Header:      "X-OpenClaw-Token",
				AllowBearer: true,
				Token:       token,
			},
			headers: map[string]string{
				"Authorization": "Token " + token,
			},
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name: "bearer not allowed",
			verifier: &StaticToken{
				Header: "X-Gitlab-Token",
				Token:  token,
			},
			headers: map[string]string{
				"Authorization": "Bearer " + token,
			},
			expectError: true,
			reason:      ReasonMissingCredential,
		},
		{
			name: "missing token",
			verifier: &StaticToken{
				Header: "X-Gitlab-Token",
				Token:  token,
			},
			headers:     map[string]string{},
			expectError: true,
			reason:      ReasonMissingCredential,
		},
		{
			name: "wrong token",
			verifier: &StaticToken{
				Header: "X-Gitlab-Token",
				Token:  token,
			},
			headers: map[string]string{
				"X-Gitlab-Token": "wrong-token",
			},
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
		{
			name: "token in query string",
			verifier: &StaticToken{
				Header:     "X-OpenClaw-Token",
				QueryParam: "token",
				Token:      token,
			},
			queryParams: map[string]string{
				"token": token,
			},
			expectError: true,
			reason:      ReasonCredentialInQuery,
		},
		{
			name: "query token rejected even with a valid header",
			verifier: &StaticToken{
				Header:     "X-OpenClaw-Token",
				QueryParam: "token",
				Token:      token,
			},
			headers: map[string]string{
				"X-OpenClaw-Token": token,
			},
			queryParams: map[string]string{
				"token": token,
			},
			expectError: true,
			reason:      ReasonCredentialInQuery,
		},
		{
			name: "token not configured",
			verifier: &StaticToken{
				Header: "X-Gitlab-Token",
			},
			headers: map[string]string{
				"X-Gitlab-Token": token,
			},
			expectError: true,
			reason:      ReasonConfigurationMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createTestRequestWithQuery(tt.headers, tt.queryParams)
			err := tt.verifier.Verify(req, nil)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.reason, ReasonOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBasicAuth_Scheme(t *testing.T) {
	verifier := &BasicAuth{}
	assert.Equal(t, "basic", verifier.Scheme())
}

func TestBasicAuth_Verify(t *testing.T) {
	verifier := &BasicAuth{
		Username:   "testuser",
		Password:   "testpass",
		QueryParam: "token",
	}

	tests := []struct {
		name        string
		headers     map[string]string
		queryParams map[string]string
		expectError bool
		reason      Reason
	}{
		{
			name: "valid credentials",
			headers: map[string]string{
				"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("testuser:testpass")),
			},
			expectError: false,
		},
		{
			name: "wrong password",
			headers: map[string]string{
				"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("testuser:wrongpass")),
			},
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
		{
			name: "wrong username",
			headers: map[string]string{
				"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("wronguser:testpass")),
			},
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
		{
			name:        "missing authorization header",
			headers:     map[string]string{},
			expectError: true,
			reason:      ReasonMissingCredential,
		},
		{
			name: "not a basic credential",
			headers: map[string]string{
				"Authorization": "Bearer token123",
			},
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name: "invalid base64",
			headers: map[string]string{
				"Authorization": "Basic invalid-base64!",
			},
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name: "no colon separator",
			headers: map[string]string{
				"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("no-separator")),
			},
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name: "credential in query string",
			headers: map[string]string{
				"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("testuser:testpass")),
			},
			queryParams: map[string]string{
				"token": "testpass",
			},
			expectError: true,
			reason:      ReasonCredentialInQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createTestRequestWithQuery(tt.headers, tt.queryParams)
			err := verifier.Verify(req, nil)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.reason, ReasonOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBasicAuth_PasswordWithColon(t *testing.T) {
	verifier := &BasicAuth{
		Username: "test",
		Password: "user:testpass",
	}

	req := createTestRequest(map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("test:user:testpass")),
	})

	assert.NoError(t, verifier.Verify(req, nil))
}

func TestBasicAuth_NotConfigured(t *testing.T) {
	verifier := &BasicAuth{Username: "testuser"}

	req := createTestRequest(map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("testuser:testpass")),
	})
	err := verifier.Verify(req, nil)

	require.Error(t, err)
	assert.Equal(t, ReasonConfigurationMissing, ReasonOf(err))
}
