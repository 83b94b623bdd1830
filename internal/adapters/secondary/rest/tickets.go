package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// TicketScope selects which list endpoint a ticket query hits.
type TicketScope string

const (
	// ScopeMine lists tickets the user requested.
	ScopeMine TicketScope = "my-tickets"
	// ScopeAssigned lists tickets assigned to the user or unassigned, for
	// technicians.
	ScopeAssigned TicketScope = "assigned-to-me-or-unassigned"
	// ScopeAll lists everything. Super admin only.
	ScopeAll TicketScope = "all"
)

// ListTicketsParams are the query parameters understood by the ticket list
// endpoints.
type ListTicketsParams struct {
	Scope                  TicketScope
	Status                 []domain.TicketStatus
	IncludeClosedOrResolve bool
	Skip                   int
	Limit                  int
}

// ListTickets fetches one page of tickets for the given scope.
func (c *Client) ListTickets(ctx context.Context, params ListTicketsParams) (*domain.TicketPage, error) {
	scope := params.Scope
	if scope == "" {
		scope = ScopeMine
	}

	limit := params.Limit
	if limit == 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("skip", strconv.Itoa(params.Skip))
	query.Set("limit", strconv.Itoa(limit))
	for _, s := range params.Status {
		query.Add("status", string(s))
	}
	if scope != ScopeMine && params.IncludeClosedOrResolve {
		query.Set("include_closed_or_resolved", "true")
	}

	path := fmt.Sprintf("/ticket/tickets/%s/?%s", scope, query.Encode())

	var page domain.TicketPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTicket fetches one ticket by id.
func (c *Client) GetTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	path := fmt.Sprintf("/ticket/tickets/%d", ticketID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket opens a new ticket.
func (c *Client) CreateTicket(ctx context.Context, create domain.TicketCreate) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := c.doJSON(ctx, http.MethodPost, "/ticket/tickets/", create, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicket applies a partial update to a ticket.
func (c *Client) UpdateTicket(ctx context.Context, ticketID int64, update domain.TicketUpdate) (*domain.Ticket, error) {
	var ticket domain.Ticket
	path := fmt.Sprintf("/ticket/tickets/%d", ticketID)
	if err := c.doJSON(ctx, http.MethodPut, path, update, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, ticketID int64) error {
	path := fmt.Sprintf("/ticket/tickets/%d", ticketID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// AcceptTicket claims a ticket for the current technician.
func (c *Client) AcceptTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	path := fmt.Sprintf("/ticket/tickets/%d/accept", ticketID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CloseTicket closes a ticket with an optional observation.
func (c *Client) CloseTicket(ctx context.Context, ticketID int64, observation string) (*domain.Ticket, error) {
	body := map[string]string{}
	if observation != "" {
		body["observation"] = observation
	}

	var ticket domain.Ticket
	path := fmt.Sprintf("/ticket/tickets/%d/close", ticketID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListMessages fetches the chat history of a ticket.
func (c *Client) ListMessages(ctx context.Context, ticketID int64) ([]domain.Message, error) {
	var messages []domain.Message
	path := fmt.Sprintf("/ticket/tickets/%d/messages/", ticketID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a chat message on a ticket.
func (c *Client) SendMessage(ctx context.Context, ticketID, senderID int64, content string) (*domain.Message, error) {
	body := map[string]any{
		"ticket_id": ticketID,
		"sender_id": senderID,
		"content":   content,
	}

	var message domain.Message
	path := fmt.Sprintf("/ticket/tickets/%d/messages/", ticketID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// TicketStats fetches the dashboard counters for the logged-in user.
func (c *Client) TicketStats(ctx context.Context) (*domain.TicketStats, error) {
	var stats domain.TicketStats
	if err := c.doJSON(ctx, http.MethodGet, "/ticket/tickets/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
