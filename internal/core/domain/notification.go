package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind is the discriminator the backend puts on every realtime event.
// The set is closed: the ticket module emits the first three, the fleet
// ("frota") module the rest.
type EventKind string

const (
	KindTicketCreated EventKind = "ticket_created"
	KindTicketMessage EventKind = "ticket_message"
	KindTicketFinish  EventKind = "ticket_finish"
	KindFleetCheckout EventKind = "frota_checkout"
	KindFleetReturn   EventKind = "frota_return"
	KindFleetRequest  EventKind = "frota_solicitation"
)

// Kinds lists every recognized event kind.
func Kinds() []EventKind {
	return []EventKind{
		KindTicketCreated,
		KindTicketMessage,
		KindTicketFinish,
		KindFleetCheckout,
		KindFleetReturn,
		KindFleetRequest,
	}
}

// IsTicket reports whether the kind belongs to the ticket module.
func (k EventKind) IsTicket() bool {
	switch k {
	case KindTicketCreated, KindTicketMessage, KindTicketFinish:
		return true
	}
	return false
}

// IsFleet reports whether the kind belongs to the fleet module.
func (k EventKind) IsFleet() bool {
	switch k {
	case KindFleetCheckout, KindFleetReturn, KindFleetRequest:
		return true
	}
	return false
}

// Notification is the uniform client-side shape every recognized event is
// reduced to. ID is the server-assigned identifier used for dedup; SubjectID
// is the ticket or vehicle the event refers to.
type Notification struct {
	ID          int64
	Kind        EventKind
	SubjectID   int64
	DisplayText string
	TargetRoute string
	ReceivedAt  time.Time
}

// ArchivedNotification is a notification as kept in the local history
// archive, with its acknowledgement time once read.
type ArchivedNotification struct {
	Notification
	ReadAt *time.Time
}

// PushFrame is the wire envelope of every server-pushed WebSocket message:
// a discriminator plus a kind-specific payload.
type PushFrame struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

// PushPayload is the union of the fields the six payload shapes carry. The
// backend sends only the fields relevant to each kind; the rest decode to
// their zero values.
type PushPayload struct {
	ID        int64  `json:"id"`
	TicketID  int64  `json:"ticket_id"`
	VehicleID int64  `json:"vehicle_id"`
	Message   string `json:"message"`
}

// NotificationRecord matches the REST shape returned by
// GET /ticket/notifications/unread/{userId}. It carries the same data as a
// push payload but flattened and keyed by notification_type.
type NotificationRecord struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	TicketID         int64      `json:"ticket_id"`
	VehicleID        int64      `json:"vehicle_id"`
	Message          *string    `json:"message"`
	NotificationType string     `json:"notification_type"`
	IsRead           bool       `json:"is_read"`
	CreatedAt        *time.Time `json:"created_at"`
}

// Client-side navigation routes, one per event kind.
const (
	RouteFleetAdmin      = "/frotas/admin"
	RouteFleet           = "/frotas"
	RouteFleetMyVehicles = "/frotas/meus-veiculos"
)

// TicketRoute returns the navigation path for a ticket detail view.
func TicketRoute(ticketID int64) string {
	return fmt.Sprintf("/tickets/tickets/%d", ticketID)
}
