package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/repository"
)

// SentEntry records one transmitted slot and its remote entry id.
type SentEntry struct {
	SlotID        string
	TicketID      string
	RemoteEntryID string
	Seconds       int64
}

// FailedEntry records a slot the connector refused. It stays un-sent.
type FailedEntry struct {
	SlotID   string
	TicketID string
	Err      error
}

type SendResult struct {
	Sent   []SentEntry
	Failed []FailedEntry
}

type sendService struct {
	slots      repository.SlotRepo
	connectors *connector.Manager
	now        func() time.Time
}

// NewSendService creates the service draining the un-sent backlog through
// the connectors. Network calls happen outside any transaction; only the
// remote ids of successful tickets are stored.
func NewSendService(slots repository.SlotRepo, connectors *connector.Manager) SendService {
	return &sendService{slots: slots, connectors: connectors, now: time.Now}
}

func (s *sendService) Send(ctx context.Context) (*SendResult, error) {
	backlog, err := s.slots.Send(ctx)
	if err != nil {
		return nil, err
	}
	if len(backlog) == 0 {
		return nil, ErrNothingToReview
	}

	result := &SendResult{}
	remoteIDs := map[string]string{}
	failedTickets := map[string]bool{}
	for _, slot := range backlog {
		remoteID, err := s.connectors.SendEntry(ctx, slot)
		if err != nil {
			result.Failed = append(result.Failed, FailedEntry{SlotID: slot.ID, TicketID: slot.TicketID, Err: err})
			failedTickets[slot.TicketID] = true
			continue
		}
		remoteIDs[slot.TicketID] = remoteID
		result.Sent = append(result.Sent, SentEntry{
			SlotID:        slot.ID,
			TicketID:      slot.TicketID,
			RemoteEntryID: remoteID,
			Seconds:       int64(slot.RoundedDuration(s.now()) / time.Second),
		})
	}

	// Store stamps every un-sent slot of a ticket, so a ticket with any
	// failed slot must not be stored: its failed hours would silently
	// disappear from the backlog.
	for ticketID := range failedTickets {
		delete(remoteIDs, ticketID)
	}

	if len(remoteIDs) > 0 {
		if err := s.slots.Store(ctx, remoteIDs); err != nil {
			return result, err
		}
	}
	return result, nil
}
