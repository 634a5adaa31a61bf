package domain

import "time"

// Chunk is one contiguous time interval within a Slot. A nil End means the
// chunk is still running; "open" is unrepresentable as an invalid timestamp.
type Chunk struct {
	ID     string
	SlotID string
	Start  time.Time
	End    *time.Time
}

// IsOpen reports whether the chunk is still running.
func (c *Chunk) IsOpen() bool {
	return c.End == nil
}

// Duration returns the elapsed time of the chunk. Open chunks are measured
// against the supplied now.
func (c *Chunk) Duration(now time.Time) time.Duration {
	end := now
	if c.End != nil {
		end = *c.End
	}
	return end.Sub(c.Start)
}

// EndOr returns the chunk end, or fallback when the chunk is open.
func (c *Chunk) EndOr(fallback time.Time) time.Time {
	if c.End != nil {
		return *c.End
	}
	return fallback
}
