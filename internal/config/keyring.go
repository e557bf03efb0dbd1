// internal/config/keyring.go
package config

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "ezchart"

// allowedBackends excludes the encrypted-file backend, which would prompt on the TTY the TUI owns
var allowedBackends = []keyring.BackendType{
	keyring.KeychainBackend,
	keyring.SecretServiceBackend,
	keyring.KWalletBackend,
	keyring.WinCredBackend,
	keyring.PassBackend,
}

// KeyringStore manages secret storage in system keyring
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore creates a new keyring store instance
func NewKeyringStore() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:     serviceName,
		AllowedBackends: allowedBackends,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

// SetPassword stores a secret under key
func (k *KeyringStore) SetPassword(key, password string) error {
	return k.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(password),
	})
}

// GetPassword retrieves the secret stored under key
func (k *KeyringStore) GetPassword(key string) (string, error) {
	item, err := k.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("secret not found: %s", key)
	}
	return string(item.Data), nil
}

// DeletePassword removes the secret stored under key
func (k *KeyringStore) DeletePassword(key string) error {
	return k.ring.Remove(key)
}
