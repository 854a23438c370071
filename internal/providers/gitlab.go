package providers

import (
	"encoding/json"
	"net/http"
	"strings"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

const zeroCommitHash = "0000000000000000000000000000000000000000"

// GitLab receives project events authenticated with the static
// X-Gitlab-Token header. GitLab does not sign the body.
func GitLab(token string) Endpoint {
	return Endpoint{
		Name: "gitlab",
		Path: "/webhooks/gitlab",
		Verifier: &signature.StaticToken{
			Header: "X-Gitlab-Token",
			Token:  token,
		},
		Dispatch: dispatchGitLab,
	}
}

type gitlabPayload struct {
	ObjectKind string `json:"object_kind"`
	UserName   string `json:"user_name"`
	Ref        string `json:"ref"`
	Before     string `json:"before"`
	After      string `json:"after"`

	TotalCommitsCount int `json:"total_commits_count"`

	ObjectAttributes struct {
		ID           int     `json:"id"`
		IID          int     `json:"iid"`
		Title        string  `json:"title"`
		State        string  `json:"state"`
		Action       string  `json:"action"`
		SourceBranch string  `json:"source_branch"`
		TargetBranch string  `json:"target_branch"`
		Ref          string  `json:"ref"`
		Status       string  `json:"status"`
		Duration     float64 `json:"duration"`
		Note         string  `json:"note"`
		Slug         string  `json:"slug"`
	} `json:"object_attributes"`

	MergeRequest struct {
		IID int `json:"iid"`
	} `json:"merge_request"`
	Issue struct {
		IID int `json:"iid"`
	} `json:"issue"`
	Commit struct {
		ID string `json:"id"`
	} `json:"commit"`

	BuildName     string  `json:"build_name"`
	BuildStage    string  `json:"build_stage"`
	BuildStatus   string  `json:"build_status"`
	BuildDuration float64 `json:"build_duration"`

	Status        string `json:"status"`
	Environment   string `json:"environment"`
	DeployableURL string `json:"deployable_url"`
	Action        string `json:"action"`
	Name          string `json:"name"`
	Tag           string `json:"tag"`
}

// dispatchGitLab switches on object_kind from the payload rather than the
// X-Gitlab-Event header, which carries a display name
func dispatchGitLab(r *http.Request, body []byte) error {
	instance := r.Header.Get("X-Gitlab-Instance")
	eventUUID := r.Header.Get("X-Gitlab-Event-UUID")

	var payload gitlabPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}

	switch payload.ObjectKind {
	case "push":
		logging.Info("GitLab push received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "ref", Value: payload.Ref},
			logging.Field{Key: "before", Value: shortHash(payload.Before)},
			logging.Field{Key: "after", Value: shortHash(payload.After)},
			logging.Field{Key: "commits", Value: payload.TotalCommitsCount},
			logging.Field{Key: "user", Value: payload.UserName},
		)
	case "tag_push":
		// A zero "before" hash means the tag is new
		action := "deleted"
		if payload.Before == zeroCommitHash {
			action = "created"
		}
		logging.Info("GitLab tag push received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "tag", Value: strings.TrimPrefix(payload.Ref, "refs/tags/")},
			logging.Field{Key: "action", Value: action},
			logging.Field{Key: "user", Value: payload.UserName},
		)
	case "merge_request":
		logging.Info("GitLab merge request event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "iid", Value: payload.ObjectAttributes.IID},
			logging.Field{Key: "title", Value: payload.ObjectAttributes.Title},
			logging.Field{Key: "state", Value: payload.ObjectAttributes.State},
			logging.Field{Key: "action", Value: payload.ObjectAttributes.Action},
			logging.Field{Key: "source", Value: payload.ObjectAttributes.SourceBranch},
			logging.Field{Key: "target", Value: payload.ObjectAttributes.TargetBranch},
		)
	case "issue", "work_item":
		logging.Info("GitLab issue event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "iid", Value: payload.ObjectAttributes.IID},
			logging.Field{Key: "title", Value: payload.ObjectAttributes.Title},
			logging.Field{Key: "state", Value: payload.ObjectAttributes.State},
			logging.Field{Key: "action", Value: payload.ObjectAttributes.Action},
		)
	case "note":
		logging.Info("GitLab note received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "target", Value: noteTarget(&payload)},
			logging.Field{Key: "note", Value: truncate(payload.ObjectAttributes.Note, 50)},
		)
	case "pipeline":
		logging.Info("GitLab pipeline event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "id", Value: payload.ObjectAttributes.ID},
			logging.Field{Key: "ref", Value: payload.ObjectAttributes.Ref},
			logging.Field{Key: "status", Value: payload.ObjectAttributes.Status},
			logging.Field{Key: "duration", Value: payload.ObjectAttributes.Duration},
		)
	case "build":
		logging.Info("GitLab build event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "name", Value: payload.BuildName},
			logging.Field{Key: "stage", Value: payload.BuildStage},
			logging.Field{Key: "status", Value: payload.BuildStatus},
			logging.Field{Key: "duration", Value: payload.BuildDuration},
		)
	case "wiki_page":
		logging.Info("GitLab wiki page event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "title", Value: payload.ObjectAttributes.Title},
			logging.Field{Key: "action", Value: payload.ObjectAttributes.Action},
			logging.Field{Key: "slug", Value: payload.ObjectAttributes.Slug},
		)
	case "deployment":
		logging.Info("GitLab deployment event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "status", Value: payload.Status},
			logging.Field{Key: "environment", Value: payload.Environment},
			logging.Field{Key: "deployable_url", Value: payload.DeployableURL},
		)
	case "release":
		logging.Info("GitLab release event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "action", Value: payload.Action},
			logging.Field{Key: "name", Value: payload.Name},
			logging.Field{Key: "tag", Value: payload.Tag},
		)
	default:
		logging.Info("GitLab event received",
			logging.Field{Key: "instance", Value: instance},
			logging.Field{Key: "object_kind", Value: payload.ObjectKind},
			logging.Field{Key: "event_uuid", Value: eventUUID},
		)
	}

	return nil
}

// noteTarget names what a note payload is attached to
func noteTarget(payload *gitlabPayload) string {
	switch {
	case payload.MergeRequest.IID != 0:
		return "merge request"
	case payload.Issue.IID != 0:
		return "issue"
	case payload.Commit.ID != "":
		return "commit " + shortHash(payload.Commit.ID)
	default:
		return "unknown"
	}
}

func shortHash(hash string) string {
	return truncate(hash, 8)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
