package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Resend receives email lifecycle events delivered through Svix.
func Resend(secret string) Endpoint {
	return Endpoint{
		Name:     "resend",
		Path:     "/webhooks/resend",
		Verifier: signature.Svix(secret),
		Dispatch: dispatchResend,
	}
}

type resendEvent struct {
	Type string `json:"type"`
	Data struct {
		EmailID string `json:"email_id"`
	} `json:"data"`
}

func dispatchResend(r *http.Request, body []byte) error {
	var event resendEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.Type {
	case "email.sent":
		logging.Info("Resend email sent",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.delivered":
		logging.Info("Resend email delivered",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.delivery_delayed":
		logging.Warn("Resend email delivery delayed",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.bounced":
		logging.Warn("Resend email bounced",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.complained":
		logging.Warn("Resend email marked as spam",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.opened":
		logging.Info("Resend email opened",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.clicked":
		logging.Info("Resend email link clicked",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	case "email.received":
		logging.Info("Resend inbound email received",
			logging.Field{Key: "email", Value: event.Data.EmailID},
		)
	default:
		logging.Info("Resend event received",
			logging.Field{Key: "type", Value: event.Type},
		)
	}

	return nil
}
