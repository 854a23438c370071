package providers

import (
	"encoding/json"
	"errors"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// OpenClaw receives agent hook deliveries authenticated with a static token,
// sent either in X-OpenClaw-Token or as an Authorization bearer token. Tokens
// offered on the query string are rejected outright.
func OpenClaw(token string) Endpoint {
	return Endpoint{
		Name:     "openclaw",
		Path:     "/webhooks/openclaw",
		Verifier: openclawVerifier(token),
		Dispatch: dispatchOpenClaw,
	}
}

// OpenClawWake receives wake deliveries on a second route guarded by the same
// token.
func OpenClawWake(token string) Endpoint {
	return Endpoint{
		Name:     "openclaw-wake",
		Path:     "/webhooks/openclaw/wake",
		Verifier: openclawVerifier(token),
		Dispatch: dispatchOpenClawWake,
	}
}

func openclawVerifier(token string) *signature.StaticToken {
	return &signature.StaticToken{
		Header:      "X-OpenClaw-Token",
		AllowBearer: true,
		QueryParam:  "token",
		Token:       token,
	}
}

type openclawHook struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	AgentID string `json:"agentId"`
	Model   string `json:"model"`
}

func dispatchOpenClaw(r *http.Request, body []byte) error {
	var hook openclawHook
	if err := json.Unmarshal(body, &hook); err != nil {
		return err
	}
	if hook.Message == "" {
		return errors.New("message is required")
	}
	if hook.Name == "" {
		hook.Name = "OpenClaw"
	}

	logging.Info("OpenClaw agent hook received",
		logging.Field{Key: "hook", Value: hook.Name},
		logging.Field{Key: "agent", Value: hook.AgentID},
		logging.Field{Key: "model", Value: hook.Model},
		logging.Field{Key: "message", Value: hook.Message},
	)
	return nil
}

type openclawWake struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

func dispatchOpenClawWake(r *http.Request, body []byte) error {
	var wake openclawWake
	if err := json.Unmarshal(body, &wake); err != nil {
		return err
	}
	if wake.Text == "" {
		return errors.New("text is required")
	}
	if wake.Mode == "" {
		wake.Mode = "now"
	}

	logging.Info("OpenClaw wake received",
		logging.Field{Key: "text", Value: wake.Text},
		logging.Field{Key: "mode", Value: wake.Mode},
	)
	return nil
}
