package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// FusionAuth receives identity events. The signature travels as a JWT in
// X-FusionAuth-Signature-JWT whose claim carries a hash of the request body.
func FusionAuth(secret string) Endpoint {
	return Endpoint{
		Name: "fusionauth",
		Path: "/webhooks/fusionauth",
		Verifier: &signature.JWTBodyHash{
			Header: "X-FusionAuth-Signature-JWT",
			Secret: secret,
		},
		Dispatch: dispatchFusionAuth,
	}
}

type fusionauthEvent struct {
	Event struct {
		Type string `json:"type"`
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		ApplicationID string `json:"applicationId"`
	} `json:"event"`
}

func dispatchFusionAuth(r *http.Request, body []byte) error {
	var event fusionauthEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	user := event.Event.User
	switch event.Event.Type {
	case "user.create":
		logging.Info("FusionAuth user created",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.update":
		logging.Info("FusionAuth user updated",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.delete":
		logging.Info("FusionAuth user deleted",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.deactivate":
		logging.Info("FusionAuth user deactivated",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.reactivate":
		logging.Info("FusionAuth user reactivated",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.login.success":
		logging.Info("FusionAuth login succeeded",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.login.failed":
		logging.Warn("FusionAuth login failed",
			logging.Field{Key: "email", Value: user.Email},
		)
	case "user.registration.create":
		logging.Info("FusionAuth registration created",
			logging.Field{Key: "user", Value: user.ID},
			logging.Field{Key: "application", Value: event.Event.ApplicationID},
		)
	case "user.registration.update":
		logging.Info("FusionAuth registration updated",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.registration.delete":
		logging.Info("FusionAuth registration deleted",
			logging.Field{Key: "user", Value: user.ID},
		)
	case "user.email.verified":
		logging.Info("FusionAuth email verified",
			logging.Field{Key: "user", Value: user.ID},
		)
	default:
		logging.Info("FusionAuth event received",
			logging.Field{Key: "type", Value: event.Event.Type},
		)
	}

	return nil
}
