package tui

import (
	"fmt"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// NotificationItem adapts a domain.Notification for the bubbles list.
type NotificationItem struct {
	domain.Notification
}

func (i NotificationItem) Title() string {
	return i.DisplayText
}

func (i NotificationItem) Description() string {
	return fmt.Sprintf("%s · %s · %s",
		kindLabel(i.Kind),
		i.TargetRoute,
		i.ReceivedAt.Format("15:04:05"),
	)
}

func (i NotificationItem) FilterValue() string {
	return i.DisplayText
}

// HistoryItem adapts an archived notification for the history view.
type HistoryItem struct {
	domain.ArchivedNotification
}

func (i HistoryItem) Title() string {
	if i.ReadAt != nil {
		return i.DisplayText + " ✓"
	}
	return i.DisplayText
}

func (i HistoryItem) Description() string {
	return fmt.Sprintf("%s · %s",
		kindLabel(i.Kind),
		i.ReceivedAt.Format("02/01 15:04"),
	)
}

func (i HistoryItem) FilterValue() string {
	return i.DisplayText
}

func kindLabel(kind domain.EventKind) string {
	switch kind {
	case domain.KindTicketCreated:
		return "novo ticket"
	case domain.KindTicketMessage:
		return "mensagem"
	case domain.KindTicketFinish:
		return "ticket encerrado"
	case domain.KindFleetCheckout:
		return "retirada de veículo"
	case domain.KindFleetReturn:
		return "devolução de veículo"
	case domain.KindFleetRequest:
		return "solicitação de agendamento"
	default:
		return string(kind)
	}
}
