package signature

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampedHMAC_Scheme(t *testing.T) {
	verifier := &TimestampedHMAC{}
	assert.Equal(t, "timestamped-hmac", verifier.Scheme())
}

func TestTimestampedHMAC_CombinedHeader(t *testing.T) {
	key := []byte("stripe-signing-secret")
	body := []byte(`{"id":"evt_1"}`)

	now := time.Now().Unix()
	fresh := strconv.FormatInt(now, 10)
	stale := strconv.FormatInt(now-3600, 10)
	future := strconv.FormatInt(now+3600, 10)

	// Signs "{timestamp}.{body}" the way Stripe does
	sign := func(ts string) string {
		return hmacHex(key, []byte(ts+"."+string(body)))
	}

	verifier := &TimestampedHMAC{
		SignatureHeader: "Stripe-Signature",
		TimestampKey:    "t",
		SignatureKey:    "v1",
		ElementSep:      ",",
		Key:             key,
	}

	tests := []struct {
		name        string
		header      string
		expectError bool
		reason      Reason
	}{
		{
			name:        "valid signature",
			header:      "t=" + fresh + ",v1=" + sign(fresh),
			expectError: false,
		},
		{
			name:        "second candidate matches",
			header:      "t=" + fresh + ",v1=" + hmacHex([]byte("rotated-out-key"), body) + ",v1=" + sign(fresh),
			expectError: false,
		},
		{
			name:        "undecodable candidate does not mask a valid one",
			header:      "t=" + fresh + ",v1=zzzz,v1=" + sign(fresh),
			expectError: false,
		},
		{
			name:        "no candidate matches",
			header:      "t=" + fresh + ",v1=" + hmacHex([]byte("wrong-key"), []byte(fresh+"."+string(body))),
			expectError: true,
			reason:      ReasonSignatureMismatch,
		},
		{
			name:        "only undecodable candidates",
			header:      "t=" + fresh + ",v1=zzzz",
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name:        "missing timestamp element",
			header:      "v1=" + sign(fresh),
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name:        "missing signature element",
			header:      "t=" + fresh,
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name:        "timestamp is not an integer",
			header:      "t=yesterday,v1=" + sign(fresh),
			expectError: true,
			reason:      ReasonMalformedCredential,
		},
		{
			name:        "timestamp too old",
			header:      "t=" + stale + ",v1=" + sign(stale),
			expectError: true,
			reason:      ReasonReplayWindowExceeded,
		},
		{
			name:        "timestamp in the future",
			header:      "t=" + future + ",v1=" + sign(future),
			expectError: true,
			reason:      ReasonReplayWindowExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createTestRequest(map[string]string{
				"Stripe-Signature": tt.header,
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

	t.Run("missing signature header", func(t *testing.T) {
		req := createTestRequest(map[string]string{})
		err := verifier.Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonMissingCredential, ReasonOf(err))
	})

	t.Run("key not configured", func(t *testing.T) {
		unconfigured := &TimestampedHMAC{
			SignatureHeader: "Stripe-Signature",
			TimestampKey:    "t",
			SignatureKey:    "v1",
			ElementSep:      ",",
		}

		req := createTestRequest(map[string]string{
			"Stripe-Signature": "t=" + fresh + ",v1=" + sign(fresh),
		})
		err := unconfigured.Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonConfigurationMissing, ReasonOf(err))
	})
}

func TestTimestampedHMAC_SemicolonSeparated(t *testing.T) {
	// Paddle separates elements with semicolons and joins content with a colon
	key := []byte("paddle-signing-secret")
	body := []byte(`{"event_type":"transaction.completed"}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	verifier := &TimestampedHMAC{
		SignatureHeader: "Paddle-Signature",
		TimestampKey:    "ts",
		SignatureKey:    "h1",
		ElementSep:      ";",
		ContentSep:      ":",
		Key:             key,
	}

	req := createTestRequest(map[string]string{
		"Paddle-Signature": "ts=" + ts + ";h1=" + hmacHex(key, []byte(ts+":"+string(body))),
	})

	assert.NoError(t, verifier.Verify(req, body))
}

func TestTimestampedHMAC_ToleranceOverride(t *testing.T) {
	key := []byte("elevenlabs-signing-secret")
	body := []byte(`{"type":"post_call_transcription"}`)

	ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	header := "t=" + ts + ",v0=" + hmacHex(key, []byte(ts+"."+string(body)))

	build := func(tolerance time.Duration) *TimestampedHMAC {
		return &TimestampedHMAC{
			SignatureHeader: "ElevenLabs-Signature",
			TimestampKey:    "t",
			SignatureKey:    "v0",
			ElementSep:      ",",
			Tolerance:       tolerance,
			Key:             key,
		}
	}

	t.Run("inside a widened window", func(t *testing.T) {
		req := createTestRequest(map[string]string{"ElevenLabs-Signature": header})
		assert.NoError(t, build(30*time.Minute).Verify(req, body))
	})

	t.Run("outside the default window", func(t *testing.T) {
		req := createTestRequest(map[string]string{"ElevenLabs-Signature": header})
		err := build(0).Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonReplayWindowExceeded, ReasonOf(err))
	})
}

func TestSvix(t *testing.T) {
	rawKey := []byte("svix-test-signing-key")
	secret := SigningSecretPrefix + base64.StdEncoding.EncodeToString(rawKey)
	body := []byte(`{"type":"user.created"}`)

	id := "msg_2KWPBgLlAfxdpx2AI54pPJ85f4W"
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	valid := hmacBase64(rawKey, []byte(id+"."+ts+"."+string(body)))

	request := func(sig string) map[string]string {
		return map[string]string{
			"svix-id":        id,
			"svix-timestamp": ts,
			"svix-signature": sig,
		}
	}

	verifier := Svix(secret)

	t.Run("valid signature", func(t *testing.T) {
		req := createTestRequest(request("v1," + valid))
		assert.NoError(t, verifier.Verify(req, body))
	})

	t.Run("ignores foreign version tags", func(t *testing.T) {
		req := createTestRequest(request("v2,Zm9v v1," + valid))
		assert.NoError(t, verifier.Verify(req, body))
	})

	t.Run("no candidate with the expected tag", func(t *testing.T) {
		req := createTestRequest(request("v2,Zm9v"))
		err := verifier.Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonMalformedCredential, ReasonOf(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := Svix(SigningSecretPrefix + base64.StdEncoding.EncodeToString([]byte("other-key")))

		req := createTestRequest(request("v1," + valid))
		err := other.Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonSignatureMismatch, ReasonOf(err))
	})

	t.Run("missing timestamp header", func(t *testing.T) {
		headers := request("v1," + valid)
		delete(headers, "svix-timestamp")

		err := verifier.Verify(createTestRequest(headers), body)

		require.Error(t, err)
		assert.Equal(t, ReasonMalformedCredential, ReasonOf(err))
	})

	t.Run("missing id header", func(t *testing.T) {
		headers := request("v1," + valid)
		delete(headers, "svix-id")

		err := verifier.Verify(createTestRequest(headers), body)

		require.Error(t, err)
		assert.Equal(t, ReasonMalformedCredential, ReasonOf(err))
	})

	t.Run("secret without portal prefix", func(t *testing.T) {
		broken := Svix("not-a-portal-secret")

		err := broken.Verify(createTestRequest(request("v1,"+valid)), body)

		require.Error(t, err)
		assert.Equal(t, ReasonConfigurationMissing, ReasonOf(err))
	})
}

func TestStandardWebhooks(t *testing.T) {
	rawKey := []byte("standard-webhooks-key")
	secret := SigningSecretPrefix + base64.StdEncoding.EncodeToString(rawKey)
	body := []byte(`{"object":"event"}`)

	id := "wh_abc123"
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	verifier := StandardWebhooks(secret)

	req := createTestRequest(map[string]string{
		"webhook-id":        id,
		"webhook-timestamp": ts,
		"webhook-signature": "v1," + hmacBase64(rawKey, []byte(id+"."+ts+"."+string(body))),
	})

	assert.NoError(t, verifier.Verify(req, body))
}

func TestTimestampedHMAC_BareSignature(t *testing.T) {
	// Webflow sends a bare hex signature and a millisecond timestamp
	key := []byte("webflow-signing-secret")
	body := []byte(`{"triggerType":"form_submission"}`)

	verifier := &TimestampedHMAC{
		SignatureHeader: "X-Webflow-Signature",
		TimestampHeader: "X-Webflow-Timestamp",
		ContentSep:      ":",
		Millis:          true,
		Key:             key,
	}

	sign := func(ts string) string {
		return hmacHex(key, []byte(ts+":"+string(body)))
	}

	t.Run("valid signature", func(t *testing.T) {
		ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

		req := createTestRequest(map[string]string{
			"X-Webflow-Signature": sign(ts),
			"X-Webflow-Timestamp": ts,
		})

		assert.NoError(t, verifier.Verify(req, body))
	})

	t.Run("stale millisecond timestamp", func(t *testing.T) {
		ts := strconv.FormatInt(time.Now().Add(-time.Hour).UnixMilli(), 10)

		req := createTestRequest(map[string]string{
			"X-Webflow-Signature": sign(ts),
			"X-Webflow-Timestamp": ts,
		})
		err := verifier.Verify(req, body)

		require.Error(t, err)
		assert.Equal(t, ReasonReplayWindowExceeded, ReasonOf(err))
	})
}

func TestDecodeSigningSecret(t *testing.T) {
	key := []byte("decoded-key-material")

	tests := []struct {
		name     string
		secret   string
		expected []byte
	}{
		{
			name:     "portal form secret",
			secret:   SigningSecretPrefix + base64.StdEncoding.EncodeToString(key),
			expected: key,
		},
		{
			name:     "missing prefix",
			secret:   base64.StdEncoding.EncodeToString(key),
			expected: nil,
		},
		{
			name:     "invalid base64 after prefix",
			secret:   SigningSecretPrefix + "!!!",
			expected: nil,
		},
		{
			name:     "empty secret",
			secret:   "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeSigningSecret(tt.secret))
		})
	}
}
