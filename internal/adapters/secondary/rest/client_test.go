package rest_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/secondary/rest"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newClient(t *testing.T, baseURL string) *rest.Client {
	t.Helper()
	client, err := rest.NewClient(rest.Config{BaseURL: baseURL}, testLogger())
	require.NoError(t, err)
	return client
}

func TestClient_LoginStoresToken(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newClient(t, backend.URL())

	token, err := client.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)
	require.Equal(t, "admin@example.com", token.UserEmail)
	require.Equal(t, token.AccessToken, client.Token())
}

func TestClient_LoginFailureMapsToUnauthorized(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newClient(t, backend.URL())

	_, err := client.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Incorrect email or password", apiErr.Detail)
	require.Empty(t, client.Token())
}

func TestClient_SendsAuthAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	client.SetToken("token-123")

	_, err := client.UnreadNotifications(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Bearer token-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestClient_UnreadNotifications(t *testing.T) {
	msg := "Nova mensagem"
	backend := testutil.NewBackend(t)
	backend.SeedUnread([]domain.NotificationRecord{
		{ID: 1, UserID: 7, TicketID: 42, Message: &msg, NotificationType: "ticket_message"},
		{ID: 2, UserID: 9, TicketID: 50, NotificationType: "ticket_created"},
	})

	client := newClient(t, backend.URL())
	client.SetToken(backend.Token())

	records, err := client.UnreadNotifications(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 1, "only the requested user's records")
	require.Equal(t, int64(1), records[0].ID)
	require.Equal(t, "ticket_message", records[0].NotificationType)
}

func TestClient_MarkNotificationRead(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SeedUnread([]domain.NotificationRecord{
		{ID: 5, UserID: 7, TicketID: 42, NotificationType: "ticket_created"},
	})

	client := newClient(t, backend.URL())
	client.SetToken(backend.Token())

	require.NoError(t, client.MarkNotificationRead(context.Background(), 5))
	require.Equal(t, []int64{5}, backend.ReadIDs())

	records, err := client.UnreadNotifications(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestClient_MarkNotificationReadFailure(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.FailMarkRead(5, http.StatusNotFound)

	client := newClient(t, backend.URL())
	client.SetToken(backend.Token())

	err := client.MarkNotificationRead(context.Background(), 5)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Empty(t, backend.ReadIDs())
}

func TestClient_Me(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newClient(t, backend.URL())
	client.SetToken(backend.Token())

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "admin@example.com", user.Email)
	require.True(t, user.IsAdmin)
}

func TestClient_UnauthenticatedRequestFails(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newClient(t, backend.URL())

	_, err := client.Me(context.Background())
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.True(t, apperrors.IsAuthFailure(err))
}
