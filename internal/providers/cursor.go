package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Cursor receives background agent status events. The signature header uses
// the "sha256=" prefixed hex digest convention and the event name travels in
// X-Webhook-Event.
func Cursor(secret string) Endpoint {
	return Endpoint{
		Name: "cursor",
		Path: "/webhooks/cursor",
		Verifier: &signature.HMAC{
			Header: "X-Webhook-Signature",
			Prefix: "sha256=",
			Secret: secret,
		},
		Dispatch: dispatchCursor,
	}
}

type cursorAgentEvent struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
	Source  struct {
		Repository string `json:"repository"`
		Ref        string `json:"ref"`
	} `json:"source"`
	Target struct {
		URL        string `json:"url"`
		BranchName string `json:"branchName"`
		PrURL      string `json:"prUrl"`
	} `json:"target"`
}

func dispatchCursor(r *http.Request, body []byte) error {
	eventName := r.Header.Get("X-Webhook-Event")
	if eventName != "statusChange" {
		logging.Info("Cursor event received",
			logging.Field{Key: "event", Value: eventName},
			logging.Field{Key: "delivery", Value: r.Header.Get("X-Webhook-ID")},
		)
		return nil
	}

	var event cursorAgentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	fields := []logging.Field{
		{Key: "agent", Value: event.ID},
		{Key: "status", Value: event.Status},
		{Key: "repository", Value: event.Source.Repository},
		{Key: "branch", Value: event.Target.BranchName},
		{Key: "delivery", Value: r.Header.Get("X-Webhook-ID")},
	}

	switch event.Status {
	case "FINISHED":
		fields = append(fields, logging.Field{Key: "summary", Value: event.Summary})
		if event.Target.PrURL != "" {
			fields = append(fields, logging.Field{Key: "pr_url", Value: event.Target.PrURL})
		}
		logging.Info("Cursor agent finished", fields...)
	case "ERROR":
		logging.Warn("Cursor agent errored", fields...)
	default:
		logging.Info("Cursor agent status changed", fields...)
	}

	return nil
}
