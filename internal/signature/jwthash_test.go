package signature

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTBodyHash_Scheme(t *testing.T) {
	verifier := &JWTBodyHash{}
	assert.Equal(t, "jwt", verifier.Scheme())
}

func TestJWTBodyHash_Verify(t *testing.T) {
	secret := "fusionauth-signing-secret"
	body := []byte(`{"event":{"type":"user.create"}}`)

	verifier := &JWTBodyHash{
		Header: "X-FusionAuth-Signature-JWT",
		Secret: secret,
	}

	tests := []struct {
		name        string
		token       string
		expectError bool
		reason      Reason
	}{
		{
			name:        "valid token",
			token:       signBodyToken(t, secret, jwt.SigningMethodHS256, bodyDigest(body)),
			expectError: false,
		},
		{
			name:        "valid hs512 token",
			token:       signBodyToken(t, secret, jwt.SigningMethodHS512, bodyDigest(body)),
			expectError: false,
		},
		{
			name:        "token signed with wrong secret",
			token:       signBodyToken(t, "wrong-secret", jwt.SigningMethodHS256, bodyDigest(body)),
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
		{
			name:        "digest of a different body",
			token:       signBodyToken(t, secret, jwt.SigningMethodHS256, bodyDigest([]byte(`{"event":{}}`))),
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
		{
			name:        "token missing the digest claim",
			token:       signBodyToken(t, secret, jwt.SigningMethodHS256, ""),
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name:        "token is not a jwt",
			token:       "definitely.not.a-jwt",
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name:        "unsigned token rejected",
			token:       unsignedBodyToken(t, bodyDigest(body)),
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createTestRequest(map[string]string{
				"X-FusionAuth-Signature-JWT": tt.token,
			})
			err := verifier.Verify(req, body)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.reason, ReasonOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("missing token header", func(t *testing.T) {
		err := verifier.Verify(createTestRequest(map[string]string{}), body)

		require.Error(t, err)
		assert.Equal(t, ReasonMissingCredential, ReasonOf(err))
	})

	t.Run("secret not configured", func(t *testing.T) {
		unconfigured := &JWTBodyHash{Header: "X-FusionAuth-Signature-JWT"}

		req := createTestRequest(map[string]string{
			"X-FusionAuth-Signature-JWT": signBodyToken(t, secret, jwt.SigningMethodHS256, bodyDigest(body)),
		})
		err := unconfigured.Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonConfigurationMissing, ReasonOf(err))
	})
}

func TestJWTBodyHash_CustomClaim(t *testing.T) {
	secret := "custom-claim-secret"
	body := []byte(`{"ok":true}`)

	verifier := &JWTBodyHash{
		Header: "X-Signature-JWT",
		Claim:  "body_digest",
		Secret: secret,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"body_digest": bodyDigest(body),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	req := createTestRequest(map[string]string{"X-Signature-JWT": signed})
	assert.NoError(t, verifier.Verify(req, body))
}

// Helper functions

func bodyDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func signBodyToken(t *testing.T, secret string, method jwt.SigningMethod, digest string) string {
	claims := jwt.MapClaims{}
	if digest != "" {
		claims[DefaultBodyHashClaim] = digest
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func unsignedBodyToken(t *testing.T, digest string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		DefaultBodyHashClaim: digest,
	})

	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return signed
}
