package domain

import "time"

// TicketStatus mirrors the backend's ticket state enum. The client never
// enforces transitions; the values exist for display and filtering.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "aberto"
	StatusInProgress TicketStatus = "em_atendimento"
	StatusClosed     TicketStatus = "fechado"
)

// Ticket matches the REST response shape of the ticket module.
type Ticket struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Priority      string       `json:"priority"`
	Status        TicketStatus `json:"status"`
	RequesterID   int64        `json:"requester_id"`
	AssigneeID    *int64       `json:"assignee_id"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     *time.Time   `json:"updated_at"`
	AttachmentURL *string      `json:"attachment_url"`
	Observation   *string      `json:"observation"`
}

// TicketPage is the paginated envelope the list endpoints return.
type TicketPage struct {
	Items        []Ticket `json:"items"`
	TotalTickets int64    `json:"total_tickets"`
	Skip         int      `json:"skip"`
	Limit        int      `json:"limit"`
}

// TicketCreate is the request body for POST /ticket/tickets/.
type TicketCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	AssigneeID  *int64 `json:"assignee_id,omitempty"`
}

// TicketUpdate is the request body for PUT /ticket/tickets/{id}; every field
// is optional.
type TicketUpdate struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Priority    *string       `json:"priority,omitempty"`
	Status      *TicketStatus `json:"status,omitempty"`
	AssigneeID  *int64        `json:"assignee_id,omitempty"`
}

// Message is one chat entry on a ticket.
type Message struct {
	ID          int64     `json:"id"`
	TicketID    int64     `json:"ticket_id"`
	SenderID    int64     `json:"sender_id"`
	SenderEmail *string   `json:"sender_email"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sent_at"`
}

// TicketStats is the dashboard summary for the logged-in user.
type TicketStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Closed     int64 `json:"closed"`
}
