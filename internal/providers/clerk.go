package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Clerk receives user and organization events delivered through Svix.
func Clerk(secret string) Endpoint {
	return Endpoint{
		Name:     "clerk",
		Path:     "/webhooks/clerk",
		Verifier: signature.Svix(secret),
		Dispatch: dispatchClerk,
	}
}

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		UserID         string `json:"user_id"`
		Name           string `json:"name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func dispatchClerk(r *http.Request, body []byte) error {
	var event clerkEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.Type {
	case "user.created":
		email := ""
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}
		logging.Info("Clerk user created",
			logging.Field{Key: "user", Value: event.Data.ID},
			logging.Field{Key: "email", Value: email},
		)
	case "user.updated":
		logging.Info("Clerk user updated",
			logging.Field{Key: "user", Value: event.Data.ID},
		)
	case "user.deleted":
		logging.Info("Clerk user deleted",
			logging.Field{Key: "user", Value: event.Data.ID},
		)
	case "session.created":
		logging.Info("Clerk session created",
			logging.Field{Key: "session", Value: event.Data.ID},
			logging.Field{Key: "user", Value: event.Data.UserID},
		)
	case "session.ended":
		logging.Info("Clerk session ended",
			logging.Field{Key: "session", Value: event.Data.ID},
			logging.Field{Key: "user", Value: event.Data.UserID},
		)
	case "organization.created":
		logging.Info("Clerk organization created",
			logging.Field{Key: "organization", Value: event.Data.ID},
			logging.Field{Key: "name", Value: event.Data.Name},
		)
	default:
		logging.Info("Clerk event received",
			logging.Field{Key: "type", Value: event.Type},
		)
	}

	return nil
}
