package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
)

// Ensure Client satisfies the notification store's port.
var _ ports.NotificationAPI = (*Client)(nil)

// UnreadNotifications fetches the user's current unread notification
// records.
func (c *Client) UnreadNotifications(ctx context.Context, userID int64) ([]domain.NotificationRecord, error) {
	var records []domain.NotificationRecord
	path := fmt.Sprintf("/ticket/notifications/unread/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkNotificationRead acknowledges a single notification. There is no
// batch endpoint; mark-all fans out over this call.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	path := fmt.Sprintf("/ticket/notifications/read/%d", notificationID)
	return c.doJSON(ctx, http.MethodPatch, path, nil, nil)
}
