package connector

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
)

// Manager forwards calls to the implementation registered for a connector
// id. Backends are selected by configuration, not by inheritance.
type Manager struct {
	connectors map[string]Connector
}

// NewManager creates a Manager over the given connector registry.
func NewManager(connectors map[string]Connector) *Manager {
	return &Manager{connectors: connectors}
}

// Get returns the connector registered under id.
func (m *Manager) Get(connectorID string) (Connector, error) {
	c, ok := m.connectors[connectorID]
	if !ok {
		return nil, fmt.Errorf("connector %q: %w", connectorID, ErrUnknownConnector)
	}
	return c, nil
}

func (m *Manager) TicketDetails(ctx context.Context, ticketID, connectorID string) (*TicketDetails, error) {
	c, err := m.Get(connectorID)
	if err != nil {
		return nil, err
	}
	return c.TicketDetails(ctx, ticketID)
}

func (m *Manager) FetchCategories(ctx context.Context, connectorID string) (map[string]string, error) {
	c, err := m.Get(connectorID)
	if err != nil {
		return nil, err
	}
	return c.FetchCategories(ctx)
}

func (m *Manager) SendEntry(ctx context.Context, slot *domain.Slot) (string, error) {
	c, err := m.Get(slot.ConnectorID)
	if err != nil {
		return "", err
	}
	return c.SendEntry(ctx, slot)
}

func (m *Manager) TicketURL(ticketID, connectorID string) (string, error) {
	c, err := m.Get(connectorID)
	if err != nil {
		return "", err
	}
	return c.TicketURL(ticketID), nil
}

func (m *Manager) ProjectNames(ctx context.Context, connectorID string) (map[string]string, error) {
	c, err := m.Get(connectorID)
	if err != nil {
		return nil, err
	}
	return c.ProjectNames(ctx)
}

func (m *Manager) LoadAlias(ctx context.Context, ticketID, connectorID string) (string, error) {
	c, err := m.Get(connectorID)
	if err != nil {
		return "", err
	}
	return c.LoadAlias(ctx, ticketID)
}
