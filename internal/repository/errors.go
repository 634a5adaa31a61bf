package repository

import "errors"

var (
	// ErrNotFound is returned when the requested slot or alias does not exist
	// and the operation documents a hard error rather than a none result.
	ErrNotFound = errors.New("not found")

	// ErrSlotSent is returned when mutating a slot that already has a remote
	// entry id. Sent slots are immutable.
	ErrSlotSent = errors.New("slot already sent")

	// ErrSlotOpen is returned when continuing a slot that already has an
	// open chunk.
	ErrSlotOpen = errors.New("slot already open")

	// ErrTicketMismatch is returned when combining slots bound to different
	// tickets.
	ErrTicketMismatch = errors.New("slots belong to different tickets")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
