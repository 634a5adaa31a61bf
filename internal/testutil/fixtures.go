package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

// Slot options
type SlotOption func(*domain.Slot)

func WithConnector(id string) SlotOption {
	return func(s *domain.Slot) {
		s.ConnectorID = id
	}
}

func WithComment(text string) SlotOption {
	return func(s *domain.Slot) {
		s.Comment = &text
	}
}

func WithCategory(id string) SlotOption {
	return func(s *domain.Slot) {
		s.Category = &id
	}
}

func WithRemoteEntryID(teid string) SlotOption {
	return func(s *domain.Slot) {
		s.RemoteEntryID = &teid
	}
}

// WithChunk appends a closed chunk.
func WithChunk(start, end time.Time) SlotOption {
	return func(s *domain.Slot) {
		s.Chunks = append(s.Chunks, domain.Chunk{ID: uuid.New().String(), Start: start, End: &end})
	}
}

// WithOpenChunk appends a running chunk.
func WithOpenChunk(start time.Time) SlotOption {
	return func(s *domain.Slot) {
		s.Chunks = append(s.Chunks, domain.Chunk{ID: uuid.New().String(), Start: start})
	}
}

// NewTestSlot builds a slot snapshot for the given ticket. Without chunk
// options the slot gets one closed one-hour chunk ending now.
func NewTestSlot(ticketID string, opts ...SlotOption) *domain.Slot {
	s := &domain.Slot{
		ID:          uuid.New().String(),
		TicketID:    ticketID,
		ConnectorID: "test",
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.Chunks) == 0 {
		end := time.Now().UTC().Truncate(time.Second)
		start := end.Add(-time.Hour)
		s.Chunks = []domain.Chunk{{ID: uuid.New().String(), Start: start, End: &end}}
	}
	for i := range s.Chunks {
		s.Chunks[i].SlotID = s.ID
	}
	return s
}

// SeedSlot persists a slot snapshot directly, bypassing the repository's
// lifecycle rules so tests can stage arbitrary ledger states.
func SeedSlot(t *testing.T, database *sql.DB, s *domain.Slot) {
	t.Helper()

	_, err := database.Exec(
		`INSERT INTO slots (id, tid, connector_id, comment, category, teid) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.TicketID, s.ConnectorID, nullable(s.Comment), nullable(s.Category), nullable(s.RemoteEntryID),
	)
	if err != nil {
		t.Fatalf("seeding slot: %v", err)
	}

	for _, c := range s.Chunks {
		var end interface{}
		if c.End != nil {
			end = c.End.UTC().Format(time.RFC3339)
		}
		_, err := database.Exec(
			`INSERT INTO chunks (id, sid, start, "end") VALUES (?, ?, ?, ?)`,
			c.ID, s.ID, c.Start.UTC().Format(time.RFC3339), end,
		)
		if err != nil {
			t.Fatalf("seeding chunk: %v", err)
		}
	}
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
