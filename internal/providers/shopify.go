package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// Shopify receives store events. Shopify signs the body with HMAC-SHA256
// keyed by the app's API secret and ships the digest base64 encoded.
func Shopify(apiSecret string) Endpoint {
	return Endpoint{
		Name: "shopify",
		Path: "/webhooks/shopify",
		Verifier: &signature.HMAC{
			Header:   "X-Shopify-Hmac-Sha256",
			Encoding: signature.EncodingBase64,
			Secret:   apiSecret,
		},
		Dispatch: dispatchShopify,
	}
}

// dispatchShopify switches on the X-Shopify-Topic header. The payload is
// the full resource, only its id is interesting here.
func dispatchShopify(r *http.Request, body []byte) error {
	topic := r.Header.Get("X-Shopify-Topic")
	shop := r.Header.Get("X-Shopify-Shop-Domain")

	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}

	switch topic {
	case "orders/create":
		logging.Info("Shopify order created",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "order_id", Value: payload.ID},
		)
	case "orders/updated":
		logging.Info("Shopify order updated",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "order_id", Value: payload.ID},
		)
	case "orders/paid":
		logging.Info("Shopify order paid",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "order_id", Value: payload.ID},
		)
	case "products/create":
		logging.Info("Shopify product created",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "product_id", Value: payload.ID},
		)
	case "products/update":
		logging.Info("Shopify product updated",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "product_id", Value: payload.ID},
		)
	case "customers/create":
		logging.Info("Shopify customer created",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "customer_id", Value: payload.ID},
		)
	case "app/uninstalled":
		logging.Info("Shopify app uninstalled",
			logging.Field{Key: "shop", Value: shop},
		)
	case "customers/data_request", "customers/redact", "shop/redact":
		// GDPR topics are mandatory for public apps
		logging.Info("Shopify compliance request received",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "topic", Value: topic},
		)
	default:
		logging.Info("Shopify webhook received",
			logging.Field{Key: "shop", Value: shop},
			logging.Field{Key: "topic", Value: topic},
		)
	}

	return nil
}
