package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Postmark receives message stream events guarded by HTTP basic auth.
// Postmark does not sign bodies, so the endpoint relies on credentials plus
// the query-string rejection to keep tokens out of access logs.
func Postmark(username, password string) Endpoint {
	return Endpoint{
		Name: "postmark",
		Path: "/webhooks/postmark",
		Verifier: &signature.BasicAuth{
			Username:   username,
			Password:   password,
			QueryParam: "token",
		},
		Dispatch: dispatchPostmark,
	}
}

type postmarkEvent struct {
	RecordType        string `json:"RecordType"`
	MessageID         string `json:"MessageID"`
	Email             string `json:"Email"`
	Type              string `json:"Type"`
	Description       string `json:"Description"`
	Platform          string `json:"Platform"`
	OriginalLink      string `json:"OriginalLink"`
	DeliveredAt       string `json:"DeliveredAt"`
	SuppressionReason string `json:"SuppressionReason"`
}

func dispatchPostmark(r *http.Request, body []byte) error {
	var event postmarkEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.RecordType {
	case "Bounce":
		logging.Warn("Postmark message bounced",
			logging.Field{Key: "message", Value: event.MessageID},
			logging.Field{Key: "email", Value: event.Email},
			logging.Field{Key: "bounce_type", Value: event.Type},
			logging.Field{Key: "description", Value: event.Description},
		)
	case "SpamComplaint":
		logging.Warn("Postmark spam complaint",
			logging.Field{Key: "message", Value: event.MessageID},
			logging.Field{Key: "email", Value: event.Email},
		)
	case "Open":
		logging.Info("Postmark message opened",
			logging.Field{Key: "message", Value: event.MessageID},
			logging.Field{Key: "email", Value: event.Email},
			logging.Field{Key: "platform", Value: event.Platform},
		)
	case "Click":
		logging.Info("Postmark link clicked",
			logging.Field{Key: "message", Value: event.MessageID},
			logging.Field{Key: "email", Value: event.Email},
			logging.Field{Key: "link", Value: event.OriginalLink},
		)
	case "Delivery":
		logging.Info("Postmark message delivered",
			logging.Field{Key: "message", Value: event.MessageID},
			logging.Field{Key: "email", Value: event.Email},
			logging.Field{Key: "delivered_at", Value: event.DeliveredAt},
		)
	case "SubscriptionChange":
		logging.Info("Postmark subscription changed",
			logging.Field{Key: "message", Value: event.MessageID},
			logging.Field{Key: "email", Value: event.Email},
			logging.Field{Key: "suppression_reason", Value: event.SuppressionReason},
		)
	default:
		logging.Info("Postmark event received",
			logging.Field{Key: "record_type", Value: event.RecordType},
			logging.Field{Key: "message", Value: event.MessageID},
		)
	}

	return nil
}
