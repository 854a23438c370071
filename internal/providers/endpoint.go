package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// DispatchFunc consumes a verified webhook delivery. Returning an error
// means the payload could not be understood and the sender gets a 400.
type DispatchFunc func(r *http.Request, body []byte) error

// Endpoint is one example receiver: a route, the verifier guarding it and
// the dispatcher that runs once the delivery is authentic.
type Endpoint struct {
	Name     string
	Path     string
	Verifier signature.Verifier
	Dispatch DispatchFunc
}

// Handler wires the endpoint into the shared receive flow: read the raw
// body, verify the delivery against it, dispatch the payload and
// acknowledge with a 200. Verification failures answer 401 with a generic
// body, except missing server configuration which answers 500.
func (e Endpoint) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.WithContext(r.Context())

		body, err := signature.PreserveRequestBody(r)
		if err != nil {
			log.Warn("Failed to read webhook body",
				logging.Field{Key: "provider", Value: e.Name},
				logging.Field{Key: "error", Value: err.Error()},
			)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unable to read request body"})
			return
		}

		if err := e.Verifier.Verify(r, body); err != nil {
			if signature.IsConfigurationMissing(err) {
				log.Error("Webhook verification is not configured", err,
					logging.Field{Key: "provider", Value: e.Name},
					logging.Field{Key: "scheme", Value: e.Verifier.Scheme()},
				)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "webhook verification is not configured"})
				return
			}

			// The rejection detail stays in the log, the response body is
			// the same for every client-side failure
			log.Warn("Rejected webhook delivery",
				logging.Field{Key: "provider", Value: e.Name},
				logging.Field{Key: "scheme", Value: e.Verifier.Scheme()},
				logging.Field{Key: "reason", Value: string(signature.ReasonOf(err))},
				logging.Field{Key: "error", Value: err.Error()},
			)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
			return
		}

		if err := e.Dispatch(r, body); err != nil {
			log.Warn("Failed to process webhook payload",
				logging.Field{Key: "provider", Value: e.Name},
				logging.Field{Key: "error", Value: err.Error()},
			)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
