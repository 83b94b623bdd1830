package auth

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
)

func useArrayKeyring(t *testing.T) {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	restore := openRing
	openRing = func() (keyring.Keyring, error) { return ring, nil }
	t.Cleanup(func() { openRing = restore })
}

func TestLoadSession_NothingSaved(t *testing.T) {
	useArrayKeyring(t)

	_, _, err := LoadSession()
	require.ErrorIs(t, err, apperrors.ErrNoSession)
}

func TestSaveAndLoadSession_RoundTrip(t *testing.T) {
	useArrayKeyring(t)

	require.NoError(t, SaveSession("the-token", "admin@example.com"))

	token, email, err := LoadSession()
	require.NoError(t, err)
	require.Equal(t, "the-token", token)
	require.Equal(t, "admin@example.com", email)
}

func TestClearSession_RemovesSavedSession(t *testing.T) {
	useArrayKeyring(t)

	require.NoError(t, SaveSession("the-token", "admin@example.com"))
	require.NoError(t, ClearSession())

	_, _, err := LoadSession()
	require.ErrorIs(t, err, apperrors.ErrNoSession)

	// Clearing an already-empty session is not an error.
	require.NoError(t, ClearSession())
}
