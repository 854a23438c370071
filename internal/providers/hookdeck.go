package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Hookdeck receives events relayed through the Hookdeck event gateway. The
// gateway signs the forwarded body with a base64 HMAC-SHA256 and annotates the
// delivery with its own headers, while the body keeps the upstream provider's
// shape.
func Hookdeck(secret string) Endpoint {
	return Endpoint{
		Name: "hookdeck",
		Path: "/webhooks",
		Verifier: &signature.HMAC{
			Header:   "x-hookdeck-signature",
			Encoding: signature.EncodingBase64,
			Secret:   secret,
		},
		Dispatch: dispatchHookdeck,
	}
}

type hookdeckEvent struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

func dispatchHookdeck(r *http.Request, body []byte) error {
	var event hookdeckEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	// Upstream sources disagree on the envelope, Stripe-style bodies carry
	// "type" while others carry "topic".
	eventType := event.Type
	if eventType == "" {
		eventType = event.Topic
	}

	fields := []logging.Field{
		{Key: "event", Value: eventType},
		{Key: "delivery", Value: r.Header.Get("x-hookdeck-event-id")},
		{Key: "source", Value: r.Header.Get("x-hookdeck-source-id")},
		{Key: "attempt", Value: r.Header.Get("x-hookdeck-attempt-number")},
	}

	switch eventType {
	case "payment_intent.succeeded":
		fields = append(fields, logging.Field{Key: "payment_intent", Value: event.Data.Object.ID})
		logging.Info("Hookdeck relayed payment success", fields...)
	case "customer.subscription.created":
		fields = append(fields, logging.Field{Key: "subscription", Value: event.Data.Object.ID})
		logging.Info("Hookdeck relayed subscription creation", fields...)
	default:
		logging.Info("Hookdeck event received", fields...)
	}

	return nil
}
