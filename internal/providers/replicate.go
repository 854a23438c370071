package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Replicate receives prediction lifecycle events signed with the Standard
// Webhooks scheme.
func Replicate(secret string) Endpoint {
	return Endpoint{
		Name:     "replicate",
		Path:     "/webhooks/replicate",
		Verifier: signature.StandardWebhooks(secret),
		Dispatch: dispatchReplicate,
	}
}

type replicatePrediction struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Version string `json:"version"`
	Error   string `json:"error"`
	Metrics struct {
		PredictTime float64 `json:"predict_time"`
	} `json:"metrics"`
}

func dispatchReplicate(r *http.Request, body []byte) error {
	var prediction replicatePrediction
	if err := json.Unmarshal(body, &prediction); err != nil {
		return err
	}

	switch prediction.Status {
	case "starting":
		logging.Info("Replicate prediction starting",
			logging.Field{Key: "prediction", Value: prediction.ID},
			logging.Field{Key: "version", Value: prediction.Version},
		)
	case "processing":
		logging.Info("Replicate prediction processing",
			logging.Field{Key: "prediction", Value: prediction.ID},
		)
	case "succeeded":
		logging.Info("Replicate prediction succeeded",
			logging.Field{Key: "prediction", Value: prediction.ID},
			logging.Field{Key: "predict_time", Value: prediction.Metrics.PredictTime},
		)
	case "failed":
		logging.Warn("Replicate prediction failed",
			logging.Field{Key: "prediction", Value: prediction.ID},
			logging.Field{Key: "error", Value: prediction.Error},
		)
	case "canceled":
		logging.Info("Replicate prediction canceled",
			logging.Field{Key: "prediction", Value: prediction.ID},
		)
	default:
		logging.Info("Replicate prediction received",
			logging.Field{Key: "prediction", Value: prediction.ID},
			logging.Field{Key: "status", Value: prediction.Status},
		)
	}

	return nil
}
