package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/boardprep/internal/constants"
)

var (
	// ErrNotFound is returned when the requested secret is not in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(user, what, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func remove(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the PostgreSQL connection string.
// Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, "connection string", connStr)
}

func DeleteConnectionString() error {
	return remove(constants.DefaultKeyringUser, "connection string")
}

// GetAPIKey retrieves the Gemini API key. Returns ErrNotFound if none is stored.
func GetAPIKey() (string, error) {
	return get(constants.APIKeyKeyringUser)
}

func SetAPIKey(key string) error {
	return set(constants.APIKeyKeyringUser, "API key", key)
}

func DeleteAPIKey() error {
	return remove(constants.APIKeyKeyringUser, "API key")
}

// IsAvailable reports whether the OS keyring answers a read. A missing entry
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
