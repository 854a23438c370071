// Package crypto provides AES-256-GCM sealing and opening of webhook
// credentials so that .env files and deployment manifests never carry them in
// the clear.
//
// A sealed value is base64(nonce || ciphertext) behind the "enc:" marker.
// Each Seal call uses a fresh random nonce, so sealing the same secret twice
// produces different outputs. The key material is derived from a passphrase
// with PBKDF2, which keeps short or long passphrases equally usable.
//
// Example usage:
//
//	sealer, err := crypto.NewSealer(os.Getenv("SECRETS_ENCRYPTION_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sealed, err := sealer.Seal("whsec_c2VjcmV0")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// Put the sealed string in .env, it opens again at startup.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"webhook-examples/internal/common/errors"
)

// SealedPrefix marks configuration values that hold sealed ciphertext rather
// than a plain credential.
const SealedPrefix = "enc:"

// Sealer encrypts and decrypts credential strings with AES-256-GCM. It is
// safe for concurrent use by multiple goroutines.
type Sealer struct {
	key []byte // 32-byte AES-256 key derived from the passphrase
}

// NewSealer creates a Sealer from a passphrase.
//
// The passphrase is stretched with PBKDF2-SHA256 into a 32-byte AES-256 key,
// so any non-empty passphrase works regardless of length.
//
// Parameters:
//   - passphrase: The sealing passphrase. Must not be empty.
//
// Returns:
//   - *Sealer: A new sealer instance
//   - error: An error if the passphrase is empty
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, errors.ValidationError("sealing passphrase cannot be empty")
	}

	// Static salt keeps derivation deterministic across restarts
	salt := []byte("webhook-examples-salt")
	key := pbkdf2.Key([]byte(passphrase), salt, 10000, 32, sha256.New)

	return &Sealer{key: key}, nil
}

// IsSealed reports whether a configuration value carries the sealed marker.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, SealedPrefix)
}

// Seal encrypts a credential and returns it in the "enc:" form ready to be
// pasted into an .env file.
//
// Empty strings are returned as empty strings without sealing. Each call
// produces a different ciphertext for the same input because the nonce is
// random.
//
// Parameters:
//   - plaintext: The credential to seal. Can be empty.
//
// Returns:
//   - string: "enc:" followed by base64 ciphertext, or empty for empty input
//   - error: An error if encryption fails
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", errors.InternalError("failed to create cipher", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.InternalError("failed to create GCM", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.InternalError("failed to create nonce", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return SealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a sealed value produced by Seal and returns the original
// credential. The "enc:" marker is optional on input.
//
// GCM authenticates the ciphertext during decryption, so a tampered value or
// a wrong passphrase surfaces as an error instead of garbage output.
//
// Parameters:
//   - sealed: The sealed value, with or without the "enc:" marker. Can be empty.
//
// Returns:
//   - string: The original credential, or empty for empty input
//   - error: An error on invalid format, wrong passphrase, or tampering
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	sealed = strings.TrimPrefix(sealed, SealedPrefix)

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.ValidationError("sealed value is not valid base64")
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", errors.InternalError("failed to create cipher", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.InternalError("failed to create GCM", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.ValidationError("sealed value too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.InternalError("failed to decrypt sealed value", err)
	}

	return string(plaintext), nil
}
