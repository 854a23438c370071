// Package config provides configuration management for the webhook examples
// catalog. It handles loading provider credentials from environment variables
// and validates the configuration so misconfigured endpoints are caught at
// startup instead of on the first delivery.
//
// Credentials are injected into the provider endpoints at construction;
// nothing outside this package reads the environment for secret material.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FILE: Log file path (default: webhook-examples.log)
//   - TLS_CERT_FILE / TLS_KEY_FILE: Serve TLS when both are set
//
// Secret Sealing:
//   - SECRETS_ENCRYPTION_KEY: Passphrase for opening "enc:" sealed
//     credential values (see the crypto package and cmd/sealsecret)
//
// Provider Credentials (each guards one endpoint; endpoints whose variable
// is unset answer deliveries with a server error until it is provided):
//   - GITHUB_WEBHOOK_SECRET, GITLAB_WEBHOOK_TOKEN
//   - SHOPIFY_API_SECRET, WOOCOMMERCE_WEBHOOK_SECRET
//   - STRIPE_WEBHOOK_SECRET, PADDLE_WEBHOOK_SECRET
//   - CHARGEBEE_WEBHOOK_USERNAME, CHARGEBEE_WEBHOOK_PASSWORD
//   - CLERK_WEBHOOK_SECRET, RESEND_WEBHOOK_SECRET (Svix portal form)
//   - OPENAI_WEBHOOK_SECRET, REPLICATE_WEBHOOK_SECRET (Standard Webhooks)
//   - ELEVENLABS_WEBHOOK_SECRET, WEBFLOW_WEBHOOK_SECRET
//   - VERCEL_WEBHOOK_SECRET, CURSOR_WEBHOOK_SECRET
//   - DEEPGRAM_API_KEY_ID, OPENCLAW_HOOK_TOKEN
//   - POSTMARK_WEBHOOK_USERNAME, POSTMARK_WEBHOOK_PASSWORD
//   - SENDGRID_WEBHOOK_VERIFICATION_KEY (base64 or PEM public key)
//   - FUSIONAUTH_WEBHOOK_SECRET
//   - HOOKDECK_WEBHOOK_SECRET
//
// Example usage:
//
//	cfg := config.Load()
//	if err := cfg.Unseal(); err != nil {
//		log.Fatalf("Failed to open sealed credentials: %v", err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid configuration: %v", err)
//	}
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"webhook-examples/internal/crypto"
	"webhook-examples/internal/signature"
)

// Config holds all configuration values for the webhook examples catalog.
// All string fields correspond to environment variables that can be set to
// override the default values.
//
// Load the configuration with Load(), open sealed credentials with Unseal()
// and check it with Validate() before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)
	LogFile  string // Log file path
	TLSCert  string // TLS certificate file, optional
	TLSKey   string // TLS private key file, optional

	// Passphrase for "enc:" sealed credential values
	SecretsEncryptionKey string

	// Plain HMAC providers
	GitHubWebhookSecret      string // Hex digest, "sha256=" prefix
	ShopifyAPISecret         string // Base64 digest
	WooCommerceWebhookSecret string // Base64 digest
	CursorWebhookSecret      string // Hex digest, "sha256=" prefix
	VercelWebhookSecret      string // Hex digest, SHA-1
	HookdeckWebhookSecret    string // Base64 digest

	// Timestamped HMAC providers
	StripeWebhookSecret     string
	PaddleWebhookSecret     string
	ElevenLabsWebhookSecret string
	WebflowWebhookSecret    string

	// Svix and Standard Webhooks providers, portal form "whsec_..."
	ClerkWebhookSecret     string
	ResendWebhookSecret    string
	OpenAIWebhookSecret    string
	ReplicateWebhookSecret string

	// Static token providers
	GitLabWebhookToken string
	DeepgramAPIKeyID   string
	OpenClawHookToken  string

	// Basic auth providers
	ChargebeeWebhookUsername string
	ChargebeeWebhookPassword string
	PostmarkWebhookUsername  string
	PostmarkWebhookPassword  string

	// Asymmetric providers
	SendGridVerificationKey string // ECDSA public key, bare base64 or PEM

	// JWT providers
	FusionAuthWebhookSecret string
}

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding default
// value is used.
//
// This function does not validate the configuration - call Unseal() and then
// Validate() on the returned Config before use.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", "webhook-examples.log"),
		TLSCert:  getEnv("TLS_CERT_FILE", ""),
		TLSKey:   getEnv("TLS_KEY_FILE", ""),

		SecretsEncryptionKey: getEnv("SECRETS_ENCRYPTION_KEY", ""),

		GitHubWebhookSecret:      getEnv("GITHUB_WEBHOOK_SECRET", ""),
		ShopifyAPISecret:         getEnv("SHOPIFY_API_SECRET", ""),
		WooCommerceWebhookSecret: getEnv("WOOCOMMERCE_WEBHOOK_SECRET", ""),
		CursorWebhookSecret:      getEnv("CURSOR_WEBHOOK_SECRET", ""),
		VercelWebhookSecret:      getEnv("VERCEL_WEBHOOK_SECRET", ""),
		HookdeckWebhookSecret:    getEnv("HOOKDECK_WEBHOOK_SECRET", ""),

		StripeWebhookSecret:     getEnv("STRIPE_WEBHOOK_SECRET", ""),
		PaddleWebhookSecret:     getEnv("PADDLE_WEBHOOK_SECRET", ""),
		ElevenLabsWebhookSecret: getEnv("ELEVENLABS_WEBHOOK_SECRET", ""),
		WebflowWebhookSecret:    getEnv("WEBFLOW_WEBHOOK_SECRET", ""),

		ClerkWebhookSecret:     getEnv("CLERK_WEBHOOK_SECRET", ""),
		ResendWebhookSecret:    getEnv("RESEND_WEBHOOK_SECRET", ""),
		OpenAIWebhookSecret:    getEnv("OPENAI_WEBHOOK_SECRET", ""),
		ReplicateWebhookSecret: getEnv("REPLICATE_WEBHOOK_SECRET", ""),

		GitLabWebhookToken: getEnv("GITLAB_WEBHOOK_TOKEN", ""),
		DeepgramAPIKeyID:   getEnv("DEEPGRAM_API_KEY_ID", ""),
		OpenClawHookToken:  getEnv("OPENCLAW_HOOK_TOKEN", ""),

		ChargebeeWebhookUsername: getEnv("CHARGEBEE_WEBHOOK_USERNAME", ""),
		ChargebeeWebhookPassword: getEnv("CHARGEBEE_WEBHOOK_PASSWORD", ""),
		PostmarkWebhookUsername:  getEnv("POSTMARK_WEBHOOK_USERNAME", ""),
		PostmarkWebhookPassword:  getEnv("POSTMARK_WEBHOOK_PASSWORD", ""),

		SendGridVerificationKey: getEnv("SENDGRID_WEBHOOK_VERIFICATION_KEY", ""),

		FusionAuthWebhookSecret: getEnv("FUSIONAUTH_WEBHOOK_SECRET", ""),
	}
}

// getEnv retrieves an environment variable value or returns a default value
// if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// credentials lists every field that may carry a sealed "enc:" value,
// together with the environment variable it came from so errors can name
// the offending variable without printing its value.
func (c *Config) credentials() map[string]*string {
	return map[string]*string{
		"GITHUB_WEBHOOK_SECRET":             &c.GitHubWebhookSecret,
		"SHOPIFY_API_SECRET":                &c.ShopifyAPISecret,
		"WOOCOMMERCE_WEBHOOK_SECRET":        &c.WooCommerceWebhookSecret,
		"CURSOR_WEBHOOK_SECRET":             &c.CursorWebhookSecret,
		"VERCEL_WEBHOOK_SECRET":             &c.VercelWebhookSecret,
		"HOOKDECK_WEBHOOK_SECRET":           &c.HookdeckWebhookSecret,
		"STRIPE_WEBHOOK_SECRET":             &c.StripeWebhookSecret,
		"PADDLE_WEBHOOK_SECRET":             &c.PaddleWebhookSecret,
		"ELEVENLABS_WEBHOOK_SECRET":         &c.ElevenLabsWebhookSecret,
		"WEBFLOW_WEBHOOK_SECRET":            &c.WebflowWebhookSecret,
		"CLERK_WEBHOOK_SECRET":              &c.ClerkWebhookSecret,
		"RESEND_WEBHOOK_SECRET":             &c.ResendWebhookSecret,
		"OPENAI_WEBHOOK_SECRET":             &c.OpenAIWebhookSecret,
		"REPLICATE_WEBHOOK_SECRET":          &c.ReplicateWebhookSecret,
		"GITLAB_WEBHOOK_TOKEN":              &c.GitLabWebhookToken,
		"DEEPGRAM_API_KEY_ID":               &c.DeepgramAPIKeyID,
		"OPENCLAW_HOOK_TOKEN":               &c.OpenClawHookToken,
		"CHARGEBEE_WEBHOOK_USERNAME":        &c.ChargebeeWebhookUsername,
		"CHARGEBEE_WEBHOOK_PASSWORD":        &c.ChargebeeWebhookPassword,
		"POSTMARK_WEBHOOK_USERNAME":         &c.PostmarkWebhookUsername,
		"POSTMARK_WEBHOOK_PASSWORD":         &c.PostmarkWebhookPassword,
		"SENDGRID_WEBHOOK_VERIFICATION_KEY": &c.SendGridVerificationKey,
		"FUSIONAUTH_WEBHOOK_SECRET":         &c.FusionAuthWebhookSecret,
	}
}

// MissingCredentials returns the names of credential environment variables
// that are unset, sorted. Endpoints whose variable appears here answer
// deliveries with a server error until it is provided.
func (c *Config) MissingCredentials() []string {
	var names []string
	for name, value := range c.credentials() {
		if *value == "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Unseal opens every "enc:" prefixed credential in place using the
// SECRETS_ENCRYPTION_KEY passphrase. Plain values pass through untouched.
// Call it after Load() and before Validate(), since Validate checks the
// opened credential shapes.
func (c *Config) Unseal() error {
	creds := c.credentials()

	anySealed := false
	for _, value := range creds {
		if crypto.IsSealed(*value) {
			anySealed = true
			break
		}
	}
	if !anySealed {
		return nil
	}

	if c.SecretsEncryptionKey == "" {
		return fmt.Errorf("SECRETS_ENCRYPTION_KEY is required to open sealed credential values")
	}

	sealer, err := crypto.NewSealer(c.SecretsEncryptionKey)
	if err != nil {
		return fmt.Errorf("SECRETS_ENCRYPTION_KEY is not usable: %w", err)
	}

	for name, value := range creds {
		if !crypto.IsSealed(*value) {
			continue
		}
		opened, err := sealer.Open(*value)
		if err != nil {
			return fmt.Errorf("failed to open sealed value of %s: %w", name, err)
		}
		*value = opened
	}

	return nil
}

// Validate performs validation on the configuration to ensure all values
// that are present are well formed. Unset provider credentials are not an
// error here; the corresponding endpoint reports missing configuration when
// a delivery arrives.
//
// This method checks:
//   - Port range
//   - TLS certificate and key are set together
//   - Svix-style secrets decode from their portal form
//   - The SendGrid verification key parses as a P-256 public key
//   - Basic auth providers have both halves of their credential pair
//
// Returns a descriptive error naming the offending environment variable,
// never its value.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	// Svix and Standard Webhooks secrets must be in portal form so the
	// signing key decodes. A typo here would otherwise reject every
	// delivery with a generic mismatch.
	portalSecrets := map[string]string{
		"CLERK_WEBHOOK_SECRET":     c.ClerkWebhookSecret,
		"RESEND_WEBHOOK_SECRET":    c.ResendWebhookSecret,
		"OPENAI_WEBHOOK_SECRET":    c.OpenAIWebhookSecret,
		"REPLICATE_WEBHOOK_SECRET": c.ReplicateWebhookSecret,
	}
	for name, secret := range portalSecrets {
		if secret == "" {
			continue
		}
		if signature.DecodeSigningSecret(secret) == nil {
			return fmt.Errorf("%s must be a portal form secret, \"whsec_\" followed by base64 key material", name)
		}
	}

	if c.SendGridVerificationKey != "" {
		if _, err := signature.ParsePublicKey(c.SendGridVerificationKey); err != nil {
			return fmt.Errorf("SENDGRID_WEBHOOK_VERIFICATION_KEY is not a valid public key: %w", err)
		}
	}

	if (c.ChargebeeWebhookUsername == "") != (c.ChargebeeWebhookPassword == "") {
		return fmt.Errorf("CHARGEBEE_WEBHOOK_USERNAME and CHARGEBEE_WEBHOOK_PASSWORD must be set together")
	}
	if (c.PostmarkWebhookUsername == "") != (c.PostmarkWebhookPassword == "") {
		return fmt.Errorf("POSTMARK_WEBHOOK_USERNAME and POSTMARK_WEBHOOK_PASSWORD must be set together")
	}

	return nil
}
