package providers

import (
	"encoding/json"
	"net/http"
	"time"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// ElevenLabs receives conversational AI call events. The signature header
// carries a unix timestamp and a v0 digest over "{timestamp}.{body}", with a
// wider replay window than most providers allow.
func ElevenLabs(secret string) Endpoint {
	return Endpoint{
		Name: "elevenlabs",
		Path: "/webhooks/elevenlabs",
		Verifier: &signature.TimestampedHMAC{
			SignatureHeader: "ElevenLabs-Signature",
			TimestampKey:    "t",
			SignatureKey:    "v0",
			ElementSep:      ",",
			Key:             []byte(secret),
			Tolerance:       30 * time.Minute,
		},
		Dispatch: dispatchElevenLabs,
	}
}

type elevenLabsEvent struct {
	Type string `json:"type"`
	Data struct {
		CallID string `json:"call_id"`
	} `json:"data"`
}

func dispatchElevenLabs(r *http.Request, body []byte) error {
	var event elevenLabsEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.Type {
	case "post_call_transcription":
		logging.Info("ElevenLabs call transcription completed",
			logging.Field{Key: "call", Value: event.Data.CallID},
		)
	case "post_call_audio":
		logging.Info("ElevenLabs call audio available",
			logging.Field{Key: "call", Value: event.Data.CallID},
		)
	case "call_initiation_failure":
		logging.Warn("ElevenLabs call initiation failed",
			logging.Field{Key: "call", Value: event.Data.CallID},
		)
	default:
		logging.Info("ElevenLabs event received",
			logging.Field{Key: "type", Value: event.Type},
		)
	}

	return nil
}
