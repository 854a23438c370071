package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// OpenAI receives fine-tuning and batch events signed with the Standard
// Webhooks scheme.
func OpenAI(secret string) Endpoint {
	return Endpoint{
		Name:     "openai",
		Path:     "/webhooks/openai",
		Verifier: signature.StandardWebhooks(secret),
		Dispatch: dispatchOpenAI,
	}
}

type openaiEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FineTunedModel string `json:"fine_tuned_model"`
		OutputFileID   string `json:"output_file_id"`
		Error          struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"data"`
}

func dispatchOpenAI(r *http.Request, body []byte) error {
	var event openaiEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	switch event.Type {
	case "fine_tuning.job.succeeded":
		logging.Info("OpenAI fine-tuning job succeeded",
			logging.Field{Key: "job", Value: event.Data.ID},
			logging.Field{Key: "model", Value: event.Data.FineTunedModel},
		)
	case "fine_tuning.job.failed":
		logging.Warn("OpenAI fine-tuning job failed",
			logging.Field{Key: "job", Value: event.Data.ID},
			logging.Field{Key: "error", Value: event.Data.Error.Message},
		)
	case "fine_tuning.job.cancelled":
		logging.Info("OpenAI fine-tuning job cancelled",
			logging.Field{Key: "job", Value: event.Data.ID},
		)
	case "batch.completed":
		logging.Info("OpenAI batch completed",
			logging.Field{Key: "batch", Value: event.Data.ID},
			logging.Field{Key: "output_file", Value: event.Data.OutputFileID},
		)
	case "batch.failed":
		logging.Warn("OpenAI batch failed",
			logging.Field{Key: "batch", Value: event.Data.ID},
		)
	case "batch.cancelled":
		logging.Info("OpenAI batch cancelled",
			logging.Field{Key: "batch", Value: event.Data.ID},
		)
	case "batch.expired":
		logging.Warn("OpenAI batch expired",
			logging.Field{Key: "batch", Value: event.Data.ID},
		)
	case "realtime.call.incoming":
		logging.Info("OpenAI realtime call incoming",
			logging.Field{Key: "call", Value: event.Data.ID},
		)
	default:
		logging.Info("OpenAI event received",
			logging.Field{Key: "type", Value: event.Type},
		)
	}

	return nil
}
