package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

func frame(t *testing.T, frameType string, payload any) domain.PushFrame {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return domain.PushFrame{Type: frameType, Message: raw}
}

func TestNormalize_MapsEveryKind(t *testing.T) {
	tests := []struct {
		name  string
		frame domain.PushFrame
		want  domain.Notification
	}{
		{
			name: "ticket created",
			frame: frame(t, "ticket_created", map[string]any{
				"id": 5, "ticket_id": 42, "message": "Novo ticket: impressora",
			}),
			want: domain.Notification{
				ID:          5,
				Kind:        domain.KindTicketCreated,
				SubjectID:   42,
				DisplayText: "Novo ticket: impressora",
				TargetRoute: "/tickets/tickets/42",
			},
		},
		{
			name: "ticket message",
			frame: frame(t, "ticket_message", map[string]any{
				"id": 6, "ticket_id": 42, "message": "Nova mensagem",
			}),
			want: domain.Notification{
				ID:          6,
				Kind:        domain.KindTicketMessage,
				SubjectID:   42,
				DisplayText: "Nova mensagem",
				TargetRoute: "/tickets/tickets/42",
			},
		},
		{
			name: "ticket finish synthesizes its text",
			frame: frame(t, "ticket_finish", map[string]any{
				"id": 7, "ticket_id": 42, "message": "ignored",
			}),
			want: domain.Notification{
				ID:          7,
				Kind:        domain.KindTicketFinish,
				SubjectID:   42,
				DisplayText: "Ticket encerrado: 42",
				TargetRoute: "/tickets/tickets/42",
			},
		},
		{
			name: "fleet checkout reads the subject from ticket_id",
			frame: frame(t, "frota_checkout", map[string]any{
				"id": 8, "ticket_id": 3, "message": "Veículo retirado",
			}),
			want: domain.Notification{
				ID:          8,
				Kind:        domain.KindFleetCheckout,
				SubjectID:   3,
				DisplayText: "Veículo retirado",
				TargetRoute: "/frotas/admin",
			},
		},
		{
			name: "fleet return",
			frame: frame(t, "frota_return", map[string]any{
				"id": 9, "vehicle_id": 3, "message": "Veículo devolvido",
			}),
			want: domain.Notification{
				ID:          9,
				Kind:        domain.KindFleetReturn,
				SubjectID:   3,
				DisplayText: "Veículo devolvido",
				TargetRoute: "/frotas",
			},
		},
		{
			name: "fleet solicitation",
			frame: frame(t, "frota_solicitation", map[string]any{
				"id": 10, "vehicle_id": 3, "message": "Agendamento aprovado",
			}),
			want: domain.Notification{
				ID:          10,
				Kind:        domain.KindFleetRequest,
				SubjectID:   3,
				DisplayText: "Agendamento aprovado",
				TargetRoute: "/frotas/meus-veiculos",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.frame)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_IsDeterministic(t *testing.T) {
	f := frame(t, "ticket_created", map[string]any{
		"id": 5, "ticket_id": 42, "message": "Novo ticket",
	})

	first, ok := Normalize(f)
	require.True(t, ok)
	second, ok := Normalize(f)
	require.True(t, ok)
	require.Equal(t, first, second)
}

func TestNormalize_RejectsUnknownType(t *testing.T) {
	_, ok := Normalize(frame(t, "ticket_reopened", map[string]any{"id": 1}))
	require.False(t, ok)
}

func TestNormalize_RejectsMalformedPayload(t *testing.T) {
	_, ok := Normalize(domain.PushFrame{
		Type:    "ticket_created",
		Message: json.RawMessage(`"not an object"`),
	})
	require.False(t, ok)
}

func TestNormalizeRecord_FlattensRestShape(t *testing.T) {
	msg := "Nova mensagem"
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	n, ok := NormalizeRecord(domain.NotificationRecord{
		ID:               6,
		UserID:           7,
		TicketID:         42,
		Message:          &msg,
		NotificationType: "ticket_message",
		CreatedAt:        &created,
	})
	require.True(t, ok)
	require.Equal(t, int64(6), n.ID)
	require.Equal(t, int64(42), n.SubjectID)
	require.Equal(t, "Nova mensagem", n.DisplayText)
	require.Equal(t, "/tickets/tickets/42", n.TargetRoute)
	require.Equal(t, created, n.ReceivedAt)
}

func TestNormalizeRecord_RejectsUnknownType(t *testing.T) {
	_, ok := NormalizeRecord(domain.NotificationRecord{
		ID:               1,
		NotificationType: "something_else",
	})
	require.False(t, ok)
}

func TestNormalize_RecognizesEveryKind(t *testing.T) {
	for _, kind := range domain.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			// Every kind belongs to exactly one module.
			require.NotEqual(t, kind.IsTicket(), kind.IsFleet())

			n, ok := Normalize(frame(t, string(kind), map[string]any{
				"id": 9, "ticket_id": 4, "vehicle_id": 6, "message": "m",
			}))
			require.True(t, ok)
			require.Equal(t, kind, n.Kind)
			require.NotZero(t, n.SubjectID)
			require.NotEmpty(t, n.TargetRoute)
		})
	}
}
