package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// TicketTotal is the aggregated duration of one ticket within a window.
// Seconds is the sum of per-slot durations, each rounded to the nearest
// quarter hour before summation.
type TicketTotal struct {
	TicketID    string
	ConnectorID string
	Seconds     int64
}

// TicketFrequency ranks a ticket by how many slots were recorded for it.
type TicketFrequency struct {
	TicketID    string
	ConnectorID string
	Slots       int
}

type SlotRepo interface {
	// GetActive returns the slot with a currently open chunk, nil if none.
	// A non-empty slotID scopes the lookup to that slot.
	GetActive(ctx context.Context, slotID string) (*domain.Slot, error)

	// Latest returns the slot whose most recent chunk end (open chunks
	// counting as now) is maximal, nil if the ledger is empty.
	Latest(ctx context.Context) (*domain.Slot, error)

	// Start opens a new chunk. With continueSlotID it resumes that slot
	// (ErrNotFound / ErrSlotSent / ErrSlotOpen on violation). With an empty
	// comment it resumes an un-sent, uncommented, uncategorised slot of the
	// same ticket when one exists; otherwise it creates a fresh slot.
	Start(ctx context.Context, ticketID, connectorID, comment, continueSlotID string) (*domain.Slot, error)

	// Stop closes the open chunk of the active (optionally specified) slot.
	// Returns nil without error when nothing is running.
	Stop(ctx context.Context, slotID string) (*domain.Slot, error)

	// Edit adjusts the slot's total duration to target by extending the last
	// chunk or trimming chunks from the tail.
	Edit(ctx context.Context, slotID string, target time.Duration) (*domain.Slot, error)

	// Combine moves all chunks of slot2 into slot1 and deletes slot2. Both
	// slots must reference the same ticket and neither may be sent.
	Combine(ctx context.Context, slot1ID, slot2ID string) (*domain.Slot, error)

	// Delete removes an un-sent slot and its chunks. Reports whether a row
	// was removed; sent or unknown slots are left untouched.
	Delete(ctx context.Context, slotID string) (bool, error)

	// Tag overwrites the category of the given slot, or of every un-sent
	// slot when slotID is empty.
	Tag(ctx context.Context, categoryID, slotID string) (bool, error)

	// Comment records the comment only when none is set yet. Reports whether
	// the write was applied.
	Comment(ctx context.Context, slotID, text string) (bool, error)

	// Review returns un-sent slots with at least one chunk starting after
	// since; incompleteOnly restricts to slots missing a comment or category.
	Review(ctx context.Context, since time.Time, incompleteOnly bool) ([]*domain.Slot, error)

	// Send returns the entire un-sent backlog.
	Send(ctx context.Context) ([]*domain.Slot, error)

	// Store marks all un-sent slots of each ticket with its remote entry id.
	Store(ctx context.Context, remoteIDs map[string]string) error

	// TotalByTicket aggregates rounded slot durations per ticket and
	// connector for chunks overlapping [start, end). A zero end defaults to
	// now plus one day so the still-open chunk is captured.
	TotalByTicket(ctx context.Context, start, end time.Time) ([]TicketTotal, error)

	// Frequent returns the ten most recorded tickets, by slot count.
	Frequent(ctx context.Context) ([]TicketFrequency, error)
}

type AliasRepo interface {
	Add(ctx context.Context, ticketID, alias string) error
	Remove(ctx context.Context, alias string) (bool, error)
	// Load returns the first ticket id registered for alias, "" if unknown.
	Load(ctx context.Context, alias string) (string, error)
	// List returns aliases, optionally restricted to one ticket.
	List(ctx context.Context, ticketID string) ([]domain.Alias, error)
}
