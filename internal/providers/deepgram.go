package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Deepgram posts completed transcriptions to a callback URL and authenticates
// with the dg-token header instead of a body signature.
func Deepgram(apiKeyID string) Endpoint {
	return Endpoint{
		Name: "deepgram",
		Path: "/webhooks/deepgram",
		Verifier: &signature.StaticToken{
			Header: "dg-token",
			Token:  apiKeyID,
		},
		Dispatch: dispatchDeepgram,
	}
}

type deepgramTranscription struct {
	RequestID string  `json:"request_id"`
	Created   string  `json:"created"`
	Duration  float64 `json:"duration"`
	Channels  int     `json:"channels"`
	Results   struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func dispatchDeepgram(r *http.Request, body []byte) error {
	var transcription deepgramTranscription
	if err := json.Unmarshal(body, &transcription); err != nil {
		return err
	}

	var transcript string
	var confidence float64
	if len(transcription.Results.Channels) > 0 {
		alternatives := transcription.Results.Channels[0].Alternatives
		if len(alternatives) > 0 {
			transcript = alternatives[0].Transcript
			confidence = alternatives[0].Confidence
		}
	}

	logging.Info("Deepgram transcription received",
		logging.Field{Key: "request", Value: transcription.RequestID},
		logging.Field{Key: "created", Value: transcription.Created},
		logging.Field{Key: "duration_seconds", Value: transcription.Duration},
		logging.Field{Key: "channels", Value: transcription.Channels},
		logging.Field{Key: "confidence", Value: confidence},
		logging.Field{Key: "transcript_preview", Value: truncate(transcript, 100)},
	)

	return nil
}
