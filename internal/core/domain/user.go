package domain

import "time"

// SessionUser is the backend's view of the logged-in user, as returned by
// GET /ticket/users/me/. The admin flags drive conditional rendering and
// route guarding only; no business rules are computed client-side.
type SessionUser struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	IsActive     bool       `json:"is_active"`
	IsAdmin      bool       `json:"is_admin"`
	IsSuperAdmin bool       `json:"is_super_admin"`
	LastSeen     *time.Time `json:"lastSeen"`
}

// CanAssign reports whether the user may see technician views (assigned
// ticket queues, fleet administration).
func (u SessionUser) CanAssign() bool {
	return u.IsAdmin || u.IsSuperAdmin
}

// Token is the response body of POST /auth/login. The backend also sets an
// HttpOnly session cookie; the access token is what the WebSocket handshake
// consumes.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserEmail   string `json:"user_e"`
}

// UserUpdate carries the optional fields of PUT /ticket/users/{id}.
type UserUpdate struct {
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsAdmin      *bool   `json:"is_admin,omitempty"`
	IsSuperAdmin *bool   `json:"is_super_admin,omitempty"`
}
