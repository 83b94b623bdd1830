package auth

import (
	"fmt"

	"github.com/99designs/keyring"

	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
)

const (
	serviceName = "ticket-frota-console"
	tokenKey    = "access_token"
	emailKey    = "user_email"
)

// openRing is swapped for an in-memory keyring in tests.
var openRing = openKeyring

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/ticket-frota-console/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("ticket-frota-console-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// SaveSession stores the access token and the email it belongs to in the
// system keyring so the console can reconnect without asking for the
// password again.
func SaveSession(token, email string) error {
	ring, err := openRing()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: tokenKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("saving access token: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: emailKey, Data: []byte(email)}); err != nil {
		return fmt.Errorf("saving user email: %w", err)
	}
	return nil
}

// LoadSession retrieves a previously saved token and email. When nothing
// was saved it returns ErrNoSession, which callers treat as "log in from
// scratch" rather than a failure to surface.
func LoadSession() (token, email string, err error) {
	ring, err := openRing()
	if err != nil {
		return "", "", err
	}

	tokenItem, err := ring.Get(tokenKey)
	if err == keyring.ErrKeyNotFound {
		return "", "", apperrors.ErrNoSession
	}
	if err != nil {
		return "", "", fmt.Errorf("loading access token: %w", err)
	}
	emailItem, err := ring.Get(emailKey)
	if err == keyring.ErrKeyNotFound {
		return "", "", apperrors.ErrNoSession
	}
	if err != nil {
		return "", "", fmt.Errorf("loading user email: %w", err)
	}
	return string(tokenItem.Data), string(emailItem.Data), nil
}

// ClearSession removes the saved session, if any.
func ClearSession() error {
	ring, err := openRing()
	if err != nil {
		return err
	}
	if err := ring.Remove(tokenKey); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing access token: %w", err)
	}
	if err := ring.Remove(emailKey); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing user email: %w", err)
	}
	return nil
}
