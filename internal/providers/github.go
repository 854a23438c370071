package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// GitHub receives repository events. GitHub signs the body with
// HMAC-SHA256 and ships the hex digest in X-Hub-Signature-256 behind a
// "sha256=" prefix.
func GitHub(secret string) Endpoint {
	return Endpoint{
		Name: "github",
		Path: "/webhooks/github",
		Verifier: &signature.HMAC{
			Header: "X-Hub-Signature-256",
			Prefix: "sha256=",
			Secret: secret,
		},
		Dispatch: dispatchGitHub,
	}
}

type githubPayload struct {
	Zen        string `json:"zen"`
	Ref        string `json:"ref"`
	Action     string `json:"action"`
	Number     int    `json:"number"`
	HeadCommit struct {
		Message string `json:"message"`
	} `json:"head_commit"`
	PullRequest struct {
		Title string `json:"title"`
	} `json:"pull_request"`
	Issue struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
	} `json:"issue"`
	Comment struct {
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
	Release struct {
		TagName string `json:"tag_name"`
	} `json:"release"`
	WorkflowRun struct {
		Name       string `json:"name"`
		Conclusion string `json:"conclusion"`
	} `json:"workflow_run"`
}

// dispatchGitHub switches on the X-GitHub-Event header, the payload shape
// differs per event
func dispatchGitHub(r *http.Request, body []byte) error {
	event := r.Header.Get("X-GitHub-Event")
	delivery := r.Header.Get("X-GitHub-Delivery")

	var payload githubPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}

	switch event {
	case "ping":
		logging.Info("GitHub ping received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "zen", Value: payload.Zen},
		)
	case "push":
		logging.Info("GitHub push received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "ref", Value: payload.Ref},
			logging.Field{Key: "head_commit", Value: payload.HeadCommit.Message},
		)
	case "pull_request":
		logging.Info("GitHub pull request event received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "action", Value: payload.Action},
			logging.Field{Key: "number", Value: payload.Number},
			logging.Field{Key: "title", Value: payload.PullRequest.Title},
		)
	case "issues":
		logging.Info("GitHub issue event received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "action", Value: payload.Action},
			logging.Field{Key: "number", Value: payload.Issue.Number},
			logging.Field{Key: "title", Value: payload.Issue.Title},
		)
	case "issue_comment":
		logging.Info("GitHub issue comment received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "number", Value: payload.Issue.Number},
			logging.Field{Key: "author", Value: payload.Comment.User.Login},
		)
	case "release":
		logging.Info("GitHub release event received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "action", Value: payload.Action},
			logging.Field{Key: "tag", Value: payload.Release.TagName},
		)
	case "workflow_run":
		logging.Info("GitHub workflow run completed",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "workflow", Value: payload.WorkflowRun.Name},
			logging.Field{Key: "conclusion", Value: payload.WorkflowRun.Conclusion},
		)
	default:
		logging.Info("GitHub event received",
			logging.Field{Key: "delivery", Value: delivery},
			logging.Field{Key: "event", Value: event},
		)
	}

	return nil
}
