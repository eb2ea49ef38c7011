// Package cryptox provides the symmetric cipher used to protect journal
// fields at rest.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPassphrase is used when ENCRYPTION_KEY is unset. It must not
	// reach production; callers should warn when PassphraseFromEnv falls
	// back to it.
	DefaultPassphrase = "TheraMind_DefaultSecretKey"

	pbkdf2Iterations = 100000
	keyLength        = 32
)

// fixedSalt keeps key derivation deterministic across restarts so existing
// documents stay readable. Known weakness: a static salt gives up
// precomputation resistance. Kept intentionally for data compatibility.
var fixedSalt = []byte("TheraMind_salt")

var errMalformedToken = errors.New("malformed ciphertext token")

// Cipher encrypts and decrypts short text fields with AES-GCM under a key
// derived from a passphrase. It is stateless after construction and safe
// for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// PassphraseFromEnv resolves the encryption passphrase from ENCRYPTION_KEY.
// The second return reports whether the hardcoded fallback was used.
func PassphraseFromEnv() (string, bool) {
	if v := os.Getenv("ENCRYPTION_KEY"); v != "" {
		return v, false
	}
	return DefaultPassphrase, true
}

// NewCipher derives a 256-bit key from the passphrase with
// PBKDF2-SHA256 over the fixed salt and prepares an AES-GCM AEAD.
func NewCipher(passphrase string) (*Cipher, error) {
	key := pbkdf2.Key([]byte(passphrase), fixedSalt, pbkdf2Iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext into a base64 token of nonce||ciphertext||tag.
// A fresh random nonce is generated per call, so encrypting the same
// plaintext twice yields different tokens. Empty input returns an empty
// token.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptResult carries the outcome of a decrypt attempt. When Degraded is
// set the token could not be authenticated (wrong key, pre-encryption data
// or corruption) and Text holds the raw input unchanged. Callers must not
// treat degraded text as plaintext without logging the condition.
type DecryptResult struct {
	Text     string
	Degraded bool
}

// Decrypt opens a token produced by Encrypt. It never fails: on a
// malformed token or authentication error it returns the input as-is with
// Degraded set, so data written before encryption was enabled (or under a
// different key) still surfaces to the caller.
func (c *Cipher) Decrypt(token string) DecryptResult {
	if token == "" {
		return DecryptResult{}
	}

	plaintext, err := c.open(token)
	if err != nil {
		return DecryptResult{Text: token, Degraded: true}
	}
	return DecryptResult{Text: plaintext}
}

func (c *Cipher) open(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	if len(raw) < c.aead.NonceSize() {
		return "", errMalformedToken
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
