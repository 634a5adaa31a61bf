// Package connector abstracts the external ticketing/timesheet backends the
// ledger reconciles against. The core never talks to a backend directly; it
// consumes this contract and degrades gracefully when a lookup fails.
package connector

import (
	"context"
	"errors"

	"github.com/alexanderramin/tally/internal/domain"
)

var (
	// ErrLookupFailed wraps backend failures. Aggregate views classify the
	// affected ticket as unknown instead of aborting.
	ErrLookupFailed = errors.New("connector lookup failed")

	// ErrUnknownConnector is returned when no implementation is registered
	// for the requested connector id.
	ErrUnknownConnector = errors.New("unknown connector")
)

// TicketDetails is the backend's view of a ticket.
type TicketDetails struct {
	Title     string
	ProjectID string
	Billable  bool
}

// Connector is implemented once per ticketing backend.
type Connector interface {
	// TicketDetails resolves title, project and billability for a ticket.
	TicketDetails(ctx context.Context, ticketID string) (*TicketDetails, error)

	// FetchCategories returns the backend's activity categories, id to name.
	FetchCategories(ctx context.Context) (map[string]string, error)

	// SendEntry transmits a slot and returns the remote entry id, or "" when
	// the backend accepted it without assigning one.
	SendEntry(ctx context.Context, slot *domain.Slot) (string, error)

	// TicketURL returns a browser link for the ticket.
	TicketURL(ticketID string) string

	// ProjectNames returns the backend's projects, id to name.
	ProjectNames(ctx context.Context) (map[string]string, error)

	// LoadAlias resolves a backend-side ticket alias to its canonical id.
	LoadAlias(ctx context.Context, ticketID string) (string, error)
}
