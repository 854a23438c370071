package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Paddle receives billing events. The Paddle-Signature header uses
// semicolon separated "ts=...;h1=..." elements and signs
// "{timestamp}:{body}" with HMAC-SHA256.
func Paddle(secret string) Endpoint {
	return Endpoint{
		Name: "paddle",
		Path: "/webhooks/paddle",
		Verifier: &signature.TimestampedHMAC{
			SignatureHeader: "Paddle-Signature",
			TimestampKey:    "ts",
			SignatureKey:    "h1",
			ElementSep:      ";",
			ContentSep:      ":",
			Key:             []byte(secret),
		},
		Dispatch: dispatchPaddle,
	}
}

type paddleEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		ID string `json:"id"`
	} `json:"data"`
}

func dispatchPaddle(r *http.Request, body []byte) error {
	var event paddleEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.EventType {
	case "subscription.created":
		logging.Info("Paddle subscription created",
			logging.Field{Key: "subscription", Value: event.Data.ID},
		)
	case "subscription.activated":
		logging.Info("Paddle subscription activated",
			logging.Field{Key: "subscription", Value: event.Data.ID},
		)
	case "subscription.canceled":
		logging.Info("Paddle subscription canceled",
			logging.Field{Key: "subscription", Value: event.Data.ID},
		)
	case "subscription.paused":
		logging.Info("Paddle subscription paused",
			logging.Field{Key: "subscription", Value: event.Data.ID},
		)
	case "subscription.resumed":
		logging.Info("Paddle subscription resumed",
			logging.Field{Key: "subscription", Value: event.Data.ID},
		)
	case "transaction.completed":
		logging.Info("Paddle transaction completed",
			logging.Field{Key: "transaction", Value: event.Data.ID},
		)
	case "transaction.payment_failed":
		logging.Warn("Paddle transaction payment failed",
			logging.Field{Key: "transaction", Value: event.Data.ID},
		)
	case "customer.created":
		logging.Info("Paddle customer created",
			logging.Field{Key: "customer", Value: event.Data.ID},
		)
	case "customer.updated":
		logging.Info("Paddle customer updated",
			logging.Field{Key: "customer", Value: event.Data.ID},
		)
	default:
		logging.Info("Paddle event received",
			logging.Field{Key: "event_type", Value: event.EventType},
		)
	}

	return nil
}
