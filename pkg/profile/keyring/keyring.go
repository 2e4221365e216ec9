// Package keyring stores the key that seals saved admin tokens. The OS
// keyring is preferred; a 0600 file in the config directory is the fallback.
package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyLen = 32

// KeyStore gets or creates the sealing key.
type KeyStore interface {
	GetKey() ([]byte, error)
	SetKey() ([]byte, error)
	DeleteKey() error
}

// Warner receives fallback notices.
type Warner interface {
	Warning(format string, args ...interface{})
}

// SystemKeyring keeps the key in the OS keyring (Secret Service, Keychain,
// Windows Credential Manager).
type SystemKeyring struct {
	Service string
	User    string
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
	randRead      = rand.Read
)

func NewSystemKeyring() *SystemKeyring {
	return &SystemKeyring{
		Service: "nebula-tools",
		User:    "profiles",
	}
}

func (k *SystemKeyring) SetKey() ([]byte, error) {
	key := make([]byte, keyLen)
	if _, err := randRead(key); err != nil {
		return nil, err
	}
	if err := keyringSet(k.Service, k.User, hex.EncodeToString(key)); err != nil {
		return nil, err
	}
	return key, nil
}

func (k *SystemKeyring) GetKey() ([]byte, error) {
	stored, err := keyringGet(k.Service, k.User)
	if err != nil {
		return nil, err
	}
	return decodeKey(stored)
}

func (k *SystemKeyring) DeleteKey() error {
	return keyringDelete(k.Service, k.User)
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	if len(key) != keyLen {
		return nil, fmt.Errorf("invalid key length: expected %d, got %d", keyLen, len(key))
	}
	return key, nil
}

// Load returns the existing key or creates one. The system keyring is tried
// first; when it is unavailable the file store takes over and w is told.
func Load(system, file KeyStore, w Warner) ([]byte, error) {
	if key, err := system.GetKey(); err == nil {
		return key, nil
	}
	if key, err := file.GetKey(); err == nil {
		return key, nil
	}
	key, err := system.SetKey()
	if err == nil {
		return key, nil
	}
	if w != nil {
		w.Warning("system keyring unavailable (%v), storing profile key on disk", err)
	}
	return file.SetKey()
}
