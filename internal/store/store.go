// Package store persists the few values that outlive a dashboard session.
// Today that is only the identity saved on login.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnomegl/gitdash/internal/logging"
	"github.com/sirupsen/logrus"
)

// KeyIdentity holds the username saved by a successful login.
const KeyIdentity = "identity"

const (
	BackendKeyring = "keyring"
	BackendBolt    = "bolt"
	BackendMemory  = "memory"
)

// Store is a small durable key-value store. Get returns "" and no error for
// missing keys, and Delete of a missing key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open returns the store for backend. path is only used by the bolt backend;
// when empty it defaults to DefaultBoltPath.
func Open(backend, path string, logger *logrus.Logger) (Store, error) {
	log := logging.Component(logger, "store")

	switch backend {
	case "", BackendKeyring:
		return NewKeyring(KeyringService, log), nil
	case BackendBolt:
		if path == "" {
			p, err := DefaultBoltPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenBolt(path, log)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// DefaultBoltPath is <user config dir>/gitdash/session.db.
func DefaultBoltPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(configDir, "gitdash", "session.db"), nil
}
