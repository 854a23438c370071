package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Stripe receives billing events. The Stripe-Signature header packs a
// timestamp and one or more hex HMAC-SHA256 candidates over
// "{timestamp}.{body}", rejected outside a five minute window.
func Stripe(secret string) Endpoint {
	return Endpoint{
		Name: "stripe",
		Path: "/webhooks/stripe",
		Verifier: &signature.TimestampedHMAC{
			SignatureHeader: "Stripe-Signature",
			TimestampKey:    "t",
			SignatureKey:    "v1",
			ElementSep:      ",",
			Key:             []byte(secret),
		},
		Dispatch: dispatchStripe,
	}
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

func dispatchStripe(r *http.Request, body []byte) error {
	var event stripeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.Type {
	case "payment_intent.succeeded":
		logging.Info("Stripe payment succeeded",
			logging.Field{Key: "payment_intent", Value: event.Data.Object.ID},
		)
	case "payment_intent.payment_failed":
		logging.Warn("Stripe payment failed",
			logging.Field{Key: "payment_intent", Value: event.Data.Object.ID},
		)
	case "customer.subscription.created":
		logging.Info("Stripe subscription created",
			logging.Field{Key: "subscription", Value: event.Data.Object.ID},
		)
	case "customer.subscription.deleted":
		logging.Info("Stripe subscription canceled",
			logging.Field{Key: "subscription", Value: event.Data.Object.ID},
		)
	case "invoice.paid":
		logging.Info("Stripe invoice paid",
			logging.Field{Key: "invoice", Value: event.Data.Object.ID},
		)
	default:
		logging.Info("Stripe event received",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "type", Value: event.Type},
		)
	}

	return nil
}
