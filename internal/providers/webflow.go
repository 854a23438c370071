package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Webflow receives site events. The signature is a bare hex digest over
// "{timestamp}:{body}" where the timestamp header is in milliseconds.
func Webflow(secret string) Endpoint {
	return Endpoint{
		Name: "webflow",
		Path: "/webhooks/webflow",
		Verifier: &signature.TimestampedHMAC{
			SignatureHeader: "X-Webflow-Signature",
			TimestampHeader: "X-Webflow-Timestamp",
			ContentSep:      ":",
			Millis:          true,
			Key:             []byte(secret),
		},
		Dispatch: dispatchWebflow,
	}
}

type webflowEvent struct {
	TriggerType string `json:"triggerType"`
	Payload     struct {
		Name         string            `json:"name"`
		Data         map[string]string `json:"data"`
		OrderID      string            `json:"orderId"`
		Total        string            `json:"total"`
		Currency     string            `json:"currency"`
		CollectionID string            `json:"_cid"`
		ItemID       string            `json:"_id"`
		UserID       string            `json:"userId"`
		PublishedBy  struct {
			DisplayName string `json:"displayName"`
		} `json:"publishedBy"`
	} `json:"payload"`
}

func dispatchWebflow(r *http.Request, body []byte) error {
	var event webflowEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.TriggerType {
	case "form_submission":
		logging.Info("Webflow form submitted",
			logging.Field{Key: "form", Value: event.Payload.Name},
			logging.Field{Key: "fields", Value: len(event.Payload.Data)},
		)
	case "ecomm_new_order":
		logging.Info("Webflow order placed",
			logging.Field{Key: "order", Value: event.Payload.OrderID},
			logging.Field{Key: "total", Value: event.Payload.Total},
			logging.Field{Key: "currency", Value: event.Payload.Currency},
		)
	case "collection_item_created":
		logging.Info("Webflow collection item created",
			logging.Field{Key: "item", Value: event.Payload.Name},
			logging.Field{Key: "collection", Value: event.Payload.CollectionID},
		)
	case "collection_item_changed":
		logging.Info("Webflow collection item updated",
			logging.Field{Key: "item", Value: event.Payload.Name},
		)
	case "collection_item_deleted":
		logging.Info("Webflow collection item deleted",
			logging.Field{Key: "item", Value: event.Payload.ItemID},
		)
	case "site_publish":
		logging.Info("Webflow site published",
			logging.Field{Key: "published_by", Value: event.Payload.PublishedBy.DisplayName},
		)
	case "user_account_added":
		logging.Info("Webflow user account added",
			logging.Field{Key: "user", Value: event.Payload.UserID},
		)
	default:
		logging.Info("Webflow event received",
			logging.Field{Key: "trigger", Value: event.TriggerType},
		)
	}

	return nil
}
