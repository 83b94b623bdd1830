package notify

import (
	"encoding/json"
	"fmt"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// Normalize reduces a push frame to the uniform notification shape. It is a
// pure mapping: the same frame always yields the same notification, so
// dedup by id at the store layer is safe. Frames whose type is not one of
// the six recognized kinds yield ok=false and are ignored by the
// notification subsystem; other listeners on the connection may still
// consume them.
func Normalize(frame domain.PushFrame) (domain.Notification, bool) {
	var payload domain.PushPayload
	if err := json.Unmarshal(frame.Message, &payload); err != nil {
		return domain.Notification{}, false
	}
	return fromPayload(domain.EventKind(frame.Type), payload)
}

// NormalizeRecord maps the REST unread-list shape, keyed by
// notification_type rather than type, through the same per-kind mapping.
func NormalizeRecord(rec domain.NotificationRecord) (domain.Notification, bool) {
	payload := domain.PushPayload{
		ID:        rec.ID,
		TicketID:  rec.TicketID,
		VehicleID: rec.VehicleID,
	}
	if rec.Message != nil {
		payload.Message = *rec.Message
	}

	n, ok := fromPayload(domain.EventKind(rec.NotificationType), payload)
	if ok && rec.CreatedAt != nil {
		n.ReceivedAt = *rec.CreatedAt
	}
	return n, ok
}

// fromPayload is the single exhaustive mapping over the event kinds. Each
// kind fixes which payload field names the subject and which route the
// notification navigates to.
func fromPayload(kind domain.EventKind, p domain.PushPayload) (domain.Notification, bool) {
	n := domain.Notification{ID: p.ID, Kind: kind}

	switch kind {
	case domain.KindTicketCreated, domain.KindTicketMessage:
		n.SubjectID = p.TicketID
		n.DisplayText = p.Message
		n.TargetRoute = domain.TicketRoute(p.TicketID)

	case domain.KindTicketFinish:
		// The backend sends no usable message for closed tickets; the text
		// is synthesized from the ticket id.
		n.SubjectID = p.TicketID
		n.DisplayText = fmt.Sprintf("Ticket encerrado: %d", p.TicketID)
		n.TargetRoute = domain.TicketRoute(p.TicketID)

	case domain.KindFleetCheckout:
		// Checkout frames carry the vehicle id in the ticket_id field.
		n.SubjectID = p.TicketID
		n.DisplayText = p.Message
		n.TargetRoute = domain.RouteFleetAdmin

	case domain.KindFleetReturn:
		n.SubjectID = p.VehicleID
		n.DisplayText = p.Message
		n.TargetRoute = domain.RouteFleet

	case domain.KindFleetRequest:
		n.SubjectID = p.VehicleID
		n.DisplayText = p.Message
		n.TargetRoute = domain.RouteFleetMyVehicles

	default:
		return domain.Notification{}, false
	}

	return n, true
}
