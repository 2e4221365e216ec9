// Package encryption seals short secrets (admin tokens) with AES-256-GCM.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// sealed values are "gcm1" + hex(nonce || ciphertext)
const gcmPrefix = "gcm1"

var (
	ErrNotSealed = errors.New("value is not a sealed secret")
	// randReader is swapped in tests.
	randReader io.Reader = rand.Reader
)

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts value with key and returns a printable string.
func Seal(value string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := gcm.Seal(nonce, nonce, []byte(value), nil)
	return gcmPrefix + hex.EncodeToString(out), nil
}

// Open reverses Seal.
func Open(sealed string, key []byte) (string, error) {
	if !strings.HasPrefix(sealed, gcmPrefix) {
		return "", ErrNotSealed
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(sealed, gcmPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSealed, err)
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}
	plaintext, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
