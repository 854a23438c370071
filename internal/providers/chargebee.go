package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Chargebee receives subscription lifecycle events guarded by basic auth
// credentials configured in the Chargebee dashboard.
func Chargebee(username, password string) Endpoint {
	return Endpoint{
		Name: "chargebee",
		Path: "/webhooks/chargebee",
		Verifier: &signature.BasicAuth{
			Username: username,
			Password: password,
		},
		Dispatch: dispatchChargebee,
	}
}

type chargebeeEvent struct {
	ID         string `json:"id"`
	EventType  string `json:"event_type"`
	OccurredAt int64  `json:"occurred_at"`
	Content    struct {
		Subscription struct {
			ID string `json:"id"`
		} `json:"subscription"`
		Transaction struct {
			ID string `json:"id"`
		} `json:"transaction"`
		Invoice struct {
			ID string `json:"id"`
		} `json:"invoice"`
		Customer struct {
			ID string `json:"id"`
		} `json:"customer"`
	} `json:"content"`
}

func dispatchChargebee(r *http.Request, body []byte) error {
	var event chargebeeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.EventType {
	case "subscription_created":
		logging.Info("Chargebee subscription created",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "subscription", Value: event.Content.Subscription.ID},
		)
	case "subscription_changed":
		logging.Info("Chargebee subscription changed",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "subscription", Value: event.Content.Subscription.ID},
		)
	case "subscription_cancelled":
		logging.Info("Chargebee subscription cancelled",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "subscription", Value: event.Content.Subscription.ID},
		)
	case "subscription_reactivated":
		logging.Info("Chargebee subscription reactivated",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "subscription", Value: event.Content.Subscription.ID},
		)
	case "payment_succeeded":
		logging.Info("Chargebee payment succeeded",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "transaction", Value: event.Content.Transaction.ID},
		)
	case "payment_failed":
		logging.Warn("Chargebee payment failed",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "transaction", Value: event.Content.Transaction.ID},
		)
	case "invoice_generated":
		logging.Info("Chargebee invoice generated",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "invoice", Value: event.Content.Invoice.ID},
		)
	case "customer_created":
		logging.Info("Chargebee customer created",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "customer", Value: event.Content.Customer.ID},
		)
	default:
		logging.Info("Chargebee event received",
			logging.Field{Key: "event_id", Value: event.ID},
			logging.Field{Key: "event_type", Value: event.EventType},
		)
	}

	return nil
}
