package store

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
)

// KeyringService is the service name entries are filed under in the OS
// keychain.
const KeyringService = "gitdash"

// KeyringStore keeps values in the OS keychain (Keychain on macOS,
// Credential Manager on Windows, Secret Service on Linux).
type KeyringStore struct {
	service string
	logger  *logrus.Entry
}

func NewKeyring(service string, logger *logrus.Entry) *KeyringStore {
	return &KeyringStore{service: service, logger: logger}
}

func (k *KeyringStore) Get(key string) (string, error) {
	value, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		k.logger.WithError(err).WithField("key", key).Error("failed to read from keychain")
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}
	return value, nil
}

func (k *KeyringStore) Set(key, value string) error {
	if value == "" {
		return fmt.Errorf("refusing to store empty value for %q", key)
	}
	if err := keyring.Set(k.service, key, value); err != nil {
		k.logger.WithError(err).WithField("key", key).Error("failed to save to keychain")
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}
	k.logger.WithField("key", key).Debug("saved to keychain")
	return nil
}

func (k *KeyringStore) Delete(key string) error {
	err := keyring.Delete(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		k.logger.WithError(err).WithField("key", key).Error("failed to delete from keychain")
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	k.logger.WithField("key", key).Debug("deleted from keychain")
	return nil
}

func (k *KeyringStore) Close() error { return nil }
