// Package secrets encrypts credentials at rest. Stored provider tokens are
// fernet tokens; the key comes from configuration and never touches the
// database.
package secrets

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrNoKey indicates that no encryption key is configured.
var ErrNoKey = errors.New("no secret key configured")

// Cipher wraps a fernet key for encrypting and decrypting short secrets.
type Cipher struct {
	key *fernet.Key
}

// NewCipher parses a base64url-encoded fernet key. An empty key string
// returns ErrNoKey, letting callers treat encryption as disabled.
func NewCipher(encodedKey string) (*Cipher, error) {
	if encodedKey == "" {
		return nil, ErrNoKey
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret key: %w", err)
	}
	return &Cipher{key: key}, nil
}

// Encrypt returns the fernet token for a plaintext secret.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a stored fernet token. Tokens do not expire;
// rotation happens by re-saving the secret.
func (c *Cipher) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return "", errors.New("failed to decrypt secret: invalid token or wrong key")
	}
	return string(plaintext), nil
}
