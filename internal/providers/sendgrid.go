package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// SendGrid receives event webhook batches signed with ECDSA over the
// timestamp header plus the body. The verification key is the base64 public
// key shown in the SendGrid dashboard. The body is a JSON array, one element
// per email event.
func SendGrid(verificationKey string) Endpoint {
	// A bad key surfaces as configuration_missing on the first delivery.
	pub, _ := signature.ParsePublicKey(verificationKey)
	return Endpoint{
		Name: "sendgrid",
		Path: "/webhooks/sendgrid",
		Verifier: &signature.ECDSA{
			SignatureHeader: "X-Twilio-Email-Event-Webhook-Signature",
			TimestampHeader: "X-Twilio-Email-Event-Webhook-Timestamp",
			PublicKey:       pub,
		},
		Dispatch: dispatchSendGrid,
	}
}

type sendgridEvent struct {
	Event     string `json:"event"`
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
	Reason    string `json:"reason"`
	URL       string `json:"url"`
}

func dispatchSendGrid(r *http.Request, body []byte) error {
	var events []sendgridEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return err
	}

	logging.Info("SendGrid event batch received",
		logging.Field{Key: "events", Value: len(events)},
	)

	for _, event := range events {
		switch event.Event {
		case "delivered":
			logging.Info("SendGrid email delivered",
				logging.Field{Key: "email", Value: event.Email},
			)
		case "bounce":
			logging.Warn("SendGrid email bounced",
				logging.Field{Key: "email", Value: event.Email},
				logging.Field{Key: "reason", Value: event.Reason},
			)
		case "spam report":
			logging.Warn("SendGrid spam report",
				logging.Field{Key: "email", Value: event.Email},
			)
		case "unsubscribe":
			logging.Info("SendGrid unsubscribe",
				logging.Field{Key: "email", Value: event.Email},
			)
		case "open":
			logging.Info("SendGrid email opened",
				logging.Field{Key: "email", Value: event.Email},
			)
		case "click":
			logging.Info("SendGrid link clicked",
				logging.Field{Key: "email", Value: event.Email},
				logging.Field{Key: "url", Value: event.URL},
			)
		case "deferred":
			logging.Warn("SendGrid email deferred",
				logging.Field{Key: "email", Value: event.Email},
				logging.Field{Key: "reason", Value: event.Reason},
			)
		case "dropped":
			logging.Warn("SendGrid email dropped",
				logging.Field{Key: "email", Value: event.Email},
				logging.Field{Key: "reason", Value: event.Reason},
			)
		case "processed":
			logging.Info("SendGrid email processed",
				logging.Field{Key: "email", Value: event.Email},
			)
		default:
			logging.Info("SendGrid event received",
				logging.Field{Key: "event", Value: event.Event},
				logging.Field{Key: "email", Value: event.Email},
			)
		}
	}

	return nil
}
