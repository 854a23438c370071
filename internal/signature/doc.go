// Package signature verifies the authenticity of webhook deliveries.
//
// Every provider proves authenticity a little differently, but nearly all
// of them are variations on a handful of schemes. This package implements
// each scheme once as a small, stateless Verifier so endpoint handlers
// never touch raw crypto.
//
// # Schemes
//
//   - HMAC: a single header carrying an HMAC digest of the body
//     (GitHub, Shopify, WooCommerce, Vercel, Cursor, Hookdeck)
//   - TimestampedHMAC: a delivery timestamp bound into the signed content
//     with a replay window and rotation candidates
//     (Stripe, Paddle, ElevenLabs, Webflow, Svix, Standard Webhooks)
//   - StaticToken and BasicAuth: pre-shared credentials compared in
//     constant time (GitLab, Deepgram, OpenClaw, Chargebee, Postmark)
//   - ECDSA: an asymmetric P-256 signature over timestamp and body
//     (SendGrid)
//   - JWTBodyHash: a signed JWT whose claims pin a digest of the body
//     (FusionAuth)
//
// # Usage
//
//	verifier := &signature.HMAC{
//	    Header: "X-Hub-Signature-256",
//	    Prefix: "sha256=",
//	    Secret: os.Getenv("GITHUB_WEBHOOK_SECRET"),
//	}
//
//	body, _ := signature.PreserveRequestBody(r)
//	if err := verifier.Verify(r, body); err != nil {
//	    http.Error(w, "Invalid signature", http.StatusUnauthorized)
//	    return
//	}
//
// Failures carry a machine-readable Reason. Every reason except
// ReasonConfigurationMissing describes a problem with the request;
// ReasonConfigurationMissing means the verifier itself has no secret
// material and the caller should answer with a server error instead.
//
// # Security Considerations
//
//   - Verify the exact raw body bytes, never a re-serialized payload
//   - All credential comparisons are constant time
//   - Secrets are injected at construction, verifiers never read the
//     environment
//   - Credentials in query strings are rejected because URLs leak into
//     access logs and proxies
package signature
