package providers

import (
	"encoding/json"
	"net/http"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/signature"
)

// WooCommerce receives store events. The scheme matches Shopify, a base64
// HMAC-SHA256 digest of the body, under WooCommerce's own header names.
func WooCommerce(secret string) Endpoint {
	return Endpoint{
		Name: "woocommerce",
		Path: "/webhooks/woocommerce",
		Verifier: &signature.HMAC{
			Header:   "x-wc-webhook-signature",
			Encoding: signature.EncodingBase64,
			Secret:   secret,
		},
		Dispatch: dispatchWooCommerce,
	}
}

type wooCommercePayload struct {
	ID     int64  `json:"id"`
	Total  string `json:"total"`
	Status string `json:"status"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// dispatchWooCommerce switches on the x-wc-webhook-topic header
func dispatchWooCommerce(r *http.Request, body []byte) error {
	topic := r.Header.Get("x-wc-webhook-topic")
	source := r.Header.Get("x-wc-webhook-source")

	var payload wooCommercePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}

	switch topic {
	case "order.created":
		logging.Info("WooCommerce order created",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "order_id", Value: payload.ID},
			logging.Field{Key: "total", Value: payload.Total},
		)
	case "order.updated":
		logging.Info("WooCommerce order updated",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "order_id", Value: payload.ID},
			logging.Field{Key: "status", Value: payload.Status},
		)
	case "product.created":
		logging.Info("WooCommerce product created",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "product_id", Value: payload.ID},
			logging.Field{Key: "name", Value: payload.Name},
		)
	case "product.updated":
		logging.Info("WooCommerce product updated",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "product_id", Value: payload.ID},
			logging.Field{Key: "name", Value: payload.Name},
		)
	case "customer.created":
		logging.Info("WooCommerce customer created",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "customer_id", Value: payload.ID},
			logging.Field{Key: "email", Value: payload.Email},
		)
	case "customer.updated":
		logging.Info("WooCommerce customer updated",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "customer_id", Value: payload.ID},
			logging.Field{Key: "email", Value: payload.Email},
		)
	default:
		logging.Info("WooCommerce webhook received",
			logging.Field{Key: "source", Value: source},
			logging.Field{Key: "topic", Value: topic},
		)
	}

	return nil
}
