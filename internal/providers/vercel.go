package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Vercel receives deployment and project events signed with a bare hex
// HMAC-SHA1 of the body.
func Vercel(secret string) Endpoint {
	return Endpoint{
		Name: "vercel",
		Path: "/webhooks/vercel",
		Verifier: &signature.HMAC{
			Header:    "x-vercel-signature",
			Algorithm: signature.AlgorithmSHA1,
			Secret:    secret,
		},
		Dispatch: dispatchVercel,
	}
}

type vercelEvent struct {
	Type    string `json:"type"`
	Payload struct {
		Deployment struct {
			ID       string `json:"id"`
			URL      string `json:"url"`
			Duration int64  `json:"duration"`
			Error    string `json:"error"`
			Target   string `json:"target"`
			Meta     struct {
				GithubCommitRef     string `json:"githubCommitRef"`
				GithubCommitSha     string `json:"githubCommitSha"`
				GithubCommitMessage string `json:"githubCommitMessage"`
			} `json:"meta"`
		} `json:"deployment"`
		Project struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Framework string `json:"framework"`
			OldName   string `json:"oldName"`
		} `json:"project"`
		Team struct {
			Name string `json:"name"`
		} `json:"team"`
		Domain struct {
			Name string `json:"name"`
		} `json:"domain"`
		Configuration struct {
			ID string `json:"id"`
		} `json:"configuration"`
		Integration struct {
			Name string `json:"name"`
		} `json:"integration"`
		Attack struct {
			Type   string `json:"type"`
			Action string `json:"action"`
			IP     string `json:"ip"`
		} `json:"attack"`
	} `json:"payload"`
}

func dispatchVercel(r *http.Request, body []byte) error {
	var event vercelEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	payload := event.Payload
	switch event.Type {
	case "deployment.created":
		logging.Info("Vercel deployment created",
			logging.Field{Key: "deployment", Value: payload.Deployment.ID},
			logging.Field{Key: "project", Value: payload.Project.Name},
			logging.Field{Key: "url", Value: payload.Deployment.URL},
			logging.Field{Key: "commit", Value: payload.Deployment.Meta.GithubCommitSha},
		)
	case "deployment.succeeded":
		logging.Info("Vercel deployment succeeded",
			logging.Field{Key: "deployment", Value: payload.Deployment.ID},
			logging.Field{Key: "url", Value: payload.Deployment.URL},
			logging.Field{Key: "duration_ms", Value: payload.Deployment.Duration},
		)
	case "deployment.ready":
		logging.Info("Vercel deployment ready",
			logging.Field{Key: "deployment", Value: payload.Deployment.ID},
			logging.Field{Key: "url", Value: payload.Deployment.URL},
		)
	case "deployment.error":
		logging.Error("Vercel deployment failed", nil,
			logging.Field{Key: "deployment", Value: payload.Deployment.ID},
			logging.Field{Key: "error", Value: payload.Deployment.Error},
		)
	case "deployment.canceled":
		logging.Info("Vercel deployment canceled",
			logging.Field{Key: "deployment", Value: payload.Deployment.ID},
		)
	case "deployment.promoted":
		logging.Info("Vercel deployment promoted",
			logging.Field{Key: "deployment", Value: payload.Deployment.ID},
			logging.Field{Key: "target", Value: payload.Deployment.Target},
		)
	case "project.created":
		logging.Info("Vercel project created",
			logging.Field{Key: "project", Value: payload.Project.Name},
			logging.Field{Key: "framework", Value: payload.Project.Framework},
		)
	case "project.removed":
		logging.Info("Vercel project removed",
			logging.Field{Key: "project", Value: payload.Project.Name},
		)
	case "project.renamed":
		logging.Info("Vercel project renamed",
			logging.Field{Key: "project", Value: payload.Project.ID},
			logging.Field{Key: "old_name", Value: payload.Project.OldName},
			logging.Field{Key: "new_name", Value: payload.Project.Name},
		)
	case "domain.created":
		logging.Info("Vercel domain created",
			logging.Field{Key: "domain", Value: payload.Domain.Name},
			logging.Field{Key: "project", Value: payload.Project.Name},
		)
	case "integration-configuration.removed":
		logging.Info("Vercel integration removed",
			logging.Field{Key: "integration", Value: payload.Integration.Name},
			logging.Field{Key: "configuration", Value: payload.Configuration.ID},
		)
	case "attack.detected":
		logging.Warn("Vercel attack detected",
			logging.Field{Key: "attack_type", Value: payload.Attack.Type},
			logging.Field{Key: "action", Value: payload.Attack.Action},
			logging.Field{Key: "source_ip", Value: payload.Attack.IP},
		)
	default:
		logging.Info("Vercel event received",
			logging.Field{Key: "type", Value: event.Type},
		)
	}

	return nil
}
