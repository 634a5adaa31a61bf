package testutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/domain"
)

// FakeConnector is an in-memory connector.Connector for tests. Tickets
// absent from Details fail lookups with connector.ErrLookupFailed.
type FakeConnector struct {
	Details    map[string]connector.TicketDetails
	Categories map[string]string
	Projects   map[string]string
	Aliases    map[string]string

	// SendErr, when set, makes every SendEntry fail.
	SendErr error

	// FailAfter, when positive, makes SendEntry fail once that many calls
	// have succeeded. Useful for partial-failure scenarios.
	FailAfter int

	SentSlots []*domain.Slot
	sendSeq   atomic.Int64
}

// NewFakeConnector returns an empty fake ready for per-test setup.
func NewFakeConnector() *FakeConnector {
	return &FakeConnector{
		Details:    make(map[string]connector.TicketDetails),
		Categories: make(map[string]string),
		Projects:   make(map[string]string),
		Aliases:    make(map[string]string),
	}
}

func (f *FakeConnector) TicketDetails(ctx context.Context, ticketID string) (*connector.TicketDetails, error) {
	d, ok := f.Details[ticketID]
	if !ok {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, connector.ErrLookupFailed)
	}
	return &d, nil
}

func (f *FakeConnector) FetchCategories(ctx context.Context) (map[string]string, error) {
	return f.Categories, nil
}

func (f *FakeConnector) SendEntry(ctx context.Context, slot *domain.Slot) (string, error) {
	if f.SendErr != nil {
		return "", f.SendErr
	}
	if f.FailAfter > 0 && f.sendSeq.Load() >= int64(f.FailAfter) {
		return "", fmt.Errorf("send rejected after %d entries", f.FailAfter)
	}
	f.SentSlots = append(f.SentSlots, slot)
	return fmt.Sprintf("remote-%d", f.sendSeq.Add(1)), nil
}

func (f *FakeConnector) TicketURL(ticketID string) string {
	return "https://tickets.test/" + ticketID
}

func (f *FakeConnector) ProjectNames(ctx context.Context) (map[string]string, error) {
	return f.Projects, nil
}

func (f *FakeConnector) LoadAlias(ctx context.Context, ticketID string) (string, error) {
	if canonical, ok := f.Aliases[ticketID]; ok {
		return canonical, nil
	}
	return ticketID, nil
}

var _ connector.Connector = (*FakeConnector)(nil)
