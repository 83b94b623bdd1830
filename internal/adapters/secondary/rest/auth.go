package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// Login authenticates with the backend's form-encoded login endpoint. On
// success the session cookie lands in the client's jar, and the returned
// access token is stored for the Authorization header and the WebSocket
// handshake.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token domain.Token
	if err := c.doForm(ctx, "/auth/login", form, &token); err != nil {
		return nil, err
	}

	c.SetToken(token.AccessToken)
	c.logger.Info("logged in", "user_email", token.UserEmail)
	return &token, nil
}

// Logout clears the backend session and drops the local token regardless of
// the call outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.ClearToken()
	if err != nil {
		c.logger.Warn("logout call failed", "error", err)
		return err
	}
	c.logger.Info("logged out")
	return nil
}
