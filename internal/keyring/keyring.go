// Package keyring stores API secret keys in the system keyring, with
// environment-variable overrides for CI and headless use. The alpaca
// client library never touches this package; only the CLI does.
package keyring

import (
	"errors"
	"os"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	// ServiceName is the keyring service name for storing secrets.
	ServiceName = "markets.alpaca.alp"

	// KeyLiveSecret and KeyPaperSecret are the keyring keys for the two
	// environments' secret keys.
	KeyLiveSecret  = "live_secret_key"
	KeyPaperSecret = "paper_secret_key"

	// EnvLiveSecret and EnvPaperSecret override keyring lookups when set.
	EnvLiveSecret  = "ALP_LIVE_SECRET_KEY"
	EnvPaperSecret = "ALP_PAPER_SECRET_KEY"
)

// ErrNotFound is returned when a secret is not found in the keyring.
var ErrNotFound = errors.New("secret not found")

// Store provides an interface for secure secret storage.
type Store interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// SystemStore implements Store using the system keyring.
type SystemStore struct{}

// NewSystemStore creates a new system keyring store.
func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Get retrieves a secret from the system keyring.
func (s *SystemStore) Get(service, key string) (string, error) {
	secret, err := gokeyring.Get(service, key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

// Set stores a secret in the system keyring.
func (s *SystemStore) Set(service, key, value string) error {
	return gokeyring.Set(service, key, value)
}

// Delete removes a secret from the system keyring. Deleting a missing key
// is not an error.
func (s *SystemStore) Delete(service, key string) error {
	err := gokeyring.Delete(service, key)
	if err != nil && errors.Is(err, gokeyring.ErrNotFound) {
		return nil
	}
	return err
}

// envOverrides maps secret keys to the env vars that can supply them.
var envOverrides = map[string]string{
	KeyLiveSecret:  EnvLiveSecret,
	KeyPaperSecret: EnvPaperSecret,
}

// EnvStore wraps another Store and checks environment variables first.
type EnvStore struct {
	underlying Store
}

// NewEnvStore creates a new EnvStore wrapping the given store.
func NewEnvStore(underlying Store) *EnvStore {
	return &EnvStore{underlying: underlying}
}

// Get retrieves a secret, preferring the matching env var when set.
func (e *EnvStore) Get(service, key string) (string, error) {
	if envName, ok := envOverrides[key]; ok {
		if envVal := os.Getenv(envName); envVal != "" {
			return envVal, nil
		}
	}
	return e.underlying.Get(service, key)
}

// Set stores a secret in the underlying store.
func (e *EnvStore) Set(service, key, value string) error {
	return e.underlying.Set(service, key, value)
}

// Delete removes a secret from the underlying store.
func (e *EnvStore) Delete(service, key string) error {
	return e.underlying.Delete(service, key)
}
