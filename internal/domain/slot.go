package domain

import "time"

// RoundingUnit is the bucket every read path rounds slot durations to.
const RoundingUnit = 15 * time.Minute

// Slot is one logical work session against a ticket, possibly spanning
// several non-contiguous chunks. Instances returned by the repository are
// snapshots: mutating one has no persisted effect.
type Slot struct {
	ID          string
	TicketID    string
	ConnectorID string

	// Comment and Category are nil until set. Comment is write-once,
	// Category may be overwritten; the repository enforces the asymmetry.
	Comment  *string
	Category *string

	// RemoteEntryID is assigned once the slot has been transmitted to the
	// ticketing backend. Its presence makes the slot immutable.
	RemoteEntryID *string

	// Chunks ordered by start, never empty for a persisted slot.
	Chunks []Chunk
}

// IsSent reports whether the slot has been transmitted to the backend.
func (s *Slot) IsSent() bool {
	return s.RemoteEntryID != nil
}

// IsOpen reports whether the slot's most recent chunk is still running.
func (s *Slot) IsOpen() bool {
	last := s.LastChunk()
	return last != nil && last.IsOpen()
}

// OpenChunk returns the currently running chunk, or nil. At most one chunk
// per slot may be open at a time.
func (s *Slot) OpenChunk() *Chunk {
	for i := range s.Chunks {
		if s.Chunks[i].IsOpen() {
			return &s.Chunks[i]
		}
	}
	return nil
}

// LastChunk returns the chunk with the latest start, or nil.
func (s *Slot) LastChunk() *Chunk {
	if len(s.Chunks) == 0 {
		return nil
	}
	return &s.Chunks[len(s.Chunks)-1]
}

// Duration is the exact summed duration of all chunks, open ones measured
// against now.
func (s *Slot) Duration(now time.Time) time.Duration {
	var total time.Duration
	for i := range s.Chunks {
		total += s.Chunks[i].Duration(now)
	}
	return total
}

// RoundedDuration is Duration rounded to the nearest quarter hour. Billing
// views sum rounded slot durations, never exact ones.
func (s *Slot) RoundedDuration(now time.Time) time.Duration {
	return s.Duration(now).Round(RoundingUnit)
}

// HasComment reports whether a comment has been recorded.
func (s *Slot) HasComment() bool {
	return s.Comment != nil
}

// HasCategory reports whether a category has been recorded.
func (s *Slot) HasCategory() bool {
	return s.Category != nil
}
