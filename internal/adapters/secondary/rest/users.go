package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// Me returns the session user for the current cookie/token.
func (c *Client) Me(ctx context.Context) (*domain.SessionUser, error) {
	var user domain.SessionUser
	if err := c.doJSON(ctx, http.MethodGet, "/ticket/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	body := map[string]string{"email": email, "password": password}
	var user domain.SessionUser
	if err := c.doJSON(ctx, http.MethodPost, "/ticket/users/", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user. Admin only; the backend enforces it.
func (c *Client) ListUsers(ctx context.Context) ([]domain.SessionUser, error) {
	var users []domain.SessionUser
	if err := c.doJSON(ctx, http.MethodGet, "/ticket/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one user by id.
func (c *Client) GetUser(ctx context.Context, userID int64) (*domain.SessionUser, error) {
	var user domain.SessionUser
	path := fmt.Sprintf("/ticket/users/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, userID int64, update domain.UserUpdate) (*domain.SessionUser, error) {
	var user domain.SessionUser
	path := fmt.Sprintf("/ticket/users/%d", userID)
	if err := c.doJSON(ctx, http.MethodPut, path, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/ticket/users/%d", userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// AssignableUsers lists the technicians a ticket can be assigned to.
func (c *Client) AssignableUsers(ctx context.Context) ([]domain.SessionUser, error) {
	var users []domain.SessionUser
	if err := c.doJSON(ctx, http.MethodGet, "/ticket/users/assignable/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
