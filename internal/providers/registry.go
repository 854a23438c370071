package providers

import (
	"webhook-examples/internal/config"
)

// All returns every example endpoint wired to its credentials from the
// configuration. Endpoints whose credentials are left unset still register
// and answer deliveries with a configuration error until the corresponding
// environment variable is provided.
func All(cfg *config.Config) []Endpoint {
	return []Endpoint{
		GitHub(cfg.GitHubWebhookSecret),
		GitLab(cfg.GitLabWebhookToken),
		Shopify(cfg.ShopifyAPISecret),
		WooCommerce(cfg.WooCommerceWebhookSecret),
		Stripe(cfg.StripeWebhookSecret),
		Paddle(cfg.PaddleWebhookSecret),
		Chargebee(cfg.ChargebeeWebhookUsername, cfg.ChargebeeWebhookPassword),
		Clerk(cfg.ClerkWebhookSecret),
		Resend(cfg.ResendWebhookSecret),
		OpenAI(cfg.OpenAIWebhookSecret),
		Replicate(cfg.ReplicateWebhookSecret),
		ElevenLabs(cfg.ElevenLabsWebhookSecret),
		Webflow(cfg.WebflowWebhookSecret),
		Vercel(cfg.VercelWebhookSecret),
		Cursor(cfg.CursorWebhookSecret),
		Deepgram(cfg.DeepgramAPIKeyID),
		OpenClaw(cfg.OpenClawHookToken),
		OpenClawWake(cfg.OpenClawHookToken),
		Postmark(cfg.PostmarkWebhookUsername, cfg.PostmarkWebhookPassword),
		SendGrid(cfg.SendGridVerificationKey),
		FusionAuth(cfg.FusionAuthWebhookSecret),
		// Hookdeck claims the bare /webhooks path, keep it last so the more
		// specific routes read first.
		Hookdeck(cfg.HookdeckWebhookSecret),
	}
}
