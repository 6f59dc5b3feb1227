// Package vault encrypts PINs for at-rest storage using AES-256-GCM
// with a random nonce prepended to the ciphertext. Encrypting the same
// PIN twice therefore yields different blobs, and any tampering with a
// stored blob fails authentication on decrypt.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

// Vault holds the process-wide symmetric key. The key is deployment
// configuration, not a design constant; it never appears in source.
type Vault struct {
	key []byte
}

// New builds a vault from a raw 32-byte key.
func New(key []byte) (*Vault, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", domain.ErrCrypto, KeySize, len(key))
	}
	v := &Vault{key: make([]byte, KeySize)}
	copy(v.key, key)
	return v, nil
}

// NewFromBase64 builds a vault from a base64-encoded key, the form the
// key takes in environment configuration.
func NewFromBase64(encoded string) (*Vault, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not valid base64: %v", domain.ErrCrypto, err)
	}
	return New(key)
}

// GenerateKey returns a random base64-encoded 32-byte key, for
// provisioning new deployments.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Encrypt seals a plaintext PIN and returns a base64 blob with the
// nonce prepended.
func (v *Vault) Encrypt(plain string) (string, error) {
	gcm, err := v.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", domain.ErrCrypto, err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. A malformed, truncated or
// tampered blob fails with domain.ErrCrypto; callers treat that as an
// integrity failure, never as a wrong-PIN outcome.
func (v *Vault) Decrypt(blob string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: blob is not valid base64: %v", domain.ErrCrypto, err)
	}
	gcm, err := v.aead()
	if err != nil {
		return "", err
	}
	if len(decoded) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: blob too short", domain.ErrCrypto)
	}
	nonce, sealed := decoded[:gcm.NonceSize()], decoded[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: decryption failed: %v", domain.ErrCrypto, err)
	}
	return string(plain), nil
}

func (v *Vault) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create cipher: %v", domain.ErrCrypto, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", domain.ErrCrypto, err)
	}
	return gcm, nil
}
