package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

// SQLiteSlotRepo implements SlotRepo using a SQLite database. It works on a
// db.DBTX so the same implementation serves both direct and transactional
// callers.
type SQLiteSlotRepo struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteSlotRepo creates a new SQLiteSlotRepo.
func NewSQLiteSlotRepo(conn db.DBTX) *SQLiteSlotRepo {
	return &SQLiteSlotRepo{db: conn, now: time.Now}
}

// WithClock replaces the repository's time source. Used by tests.
func (r *SQLiteSlotRepo) WithClock(now func() time.Time) *SQLiteSlotRepo {
	r.now = now
	return r
}

// nowUTC returns the current instant truncated to whole seconds, matching
// the RFC3339 storage resolution.
func (r *SQLiteSlotRepo) nowUTC() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

const slotColumns = `id, tid, connector_id, comment, category, teid`

func (r *SQLiteSlotRepo) GetActive(ctx context.Context, slotID string) (*domain.Slot, error) {
	query := `SELECT DISTINCT s.id FROM slots s
		JOIN chunks c ON c.sid = s.id
		WHERE c."end" IS NULL`
	args := []any{}
	if slotID != "" {
		query += ` AND s.id = ?`
		args = append(args, slotID)
	}
	query += ` LIMIT 1`

	var id string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding active slot: %w", err)
	}
	return r.loadSlot(ctx, id)
}

func (r *SQLiteSlotRepo) Latest(ctx context.Context) (*domain.Slot, error) {
	query := `SELECT s.id FROM slots s
		JOIN chunks c ON c.sid = s.id
		GROUP BY s.id
		ORDER BY MAX(COALESCE(c."end", ?)) DESC
		LIMIT 1`

	var id string
	err := r.db.QueryRowContext(ctx, query, r.nowUTC().Format(time.RFC3339)).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding latest slot: %w", err)
	}
	return r.loadSlot(ctx, id)
}

func (r *SQLiteSlotRepo) Start(ctx context.Context, ticketID, connectorID, comment, continueSlotID string) (*domain.Slot, error) {
	now := r.nowUTC()

	if continueSlotID != "" {
		slot, err := r.loadSlot(ctx, continueSlotID)
		if err != nil {
			return nil, err
		}
		if slot.IsSent() {
			return nil, fmt.Errorf("continuing slot %s: %w", continueSlotID, ErrSlotSent)
		}
		if slot.IsOpen() {
			return nil, fmt.Errorf("continuing slot %s: %w", continueSlotID, ErrSlotOpen)
		}
		if err := r.appendChunk(ctx, slot.ID, now); err != nil {
			return nil, err
		}
		return r.loadSlot(ctx, slot.ID)
	}

	if comment == "" {
		// Implicit continuation: an un-sent slot for the same ticket with no
		// comment and no category absorbs the new chunk.
		query := `SELECT id FROM slots
			WHERE tid = ? AND connector_id = ? AND teid IS NULL
			  AND comment IS NULL AND category IS NULL
			LIMIT 1`
		var id string
		err := r.db.QueryRowContext(ctx, query, ticketID, connectorID).Scan(&id)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("finding continuation candidate: %w", err)
		}
		if err == nil {
			slot, err := r.loadSlot(ctx, id)
			if err != nil {
				return nil, err
			}
			if slot.IsOpen() {
				// Already running; nothing to append.
				return slot, nil
			}
			if err := r.appendChunk(ctx, slot.ID, now); err != nil {
				return nil, err
			}
			return r.loadSlot(ctx, slot.ID)
		}
	}

	id := uuid.New().String()
	query := `INSERT INTO slots (id, tid, connector_id, comment, category, teid)
		VALUES (?, ?, ?, ?, NULL, NULL)`
	if _, err := r.db.ExecContext(ctx, query, id, ticketID, connectorID, emptyToNull(comment)); err != nil {
		return nil, fmt.Errorf("inserting slot: %w", err)
	}
	if err := r.appendChunk(ctx, id, now); err != nil {
		return nil, err
	}
	return r.loadSlot(ctx, id)
}

func (r *SQLiteSlotRepo) Stop(ctx context.Context, slotID string) (*domain.Slot, error) {
	active, err := r.GetActive(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	query := `UPDATE chunks SET "end" = ? WHERE sid = ? AND "end" IS NULL`
	if _, err := r.db.ExecContext(ctx, query, r.nowUTC().Format(time.RFC3339), active.ID); err != nil {
		return nil, fmt.Errorf("closing open chunk: %w", err)
	}
	return r.loadSlot(ctx, active.ID)
}

func (r *SQLiteSlotRepo) Edit(ctx context.Context, slotID string, target time.Duration) (*domain.Slot, error) {
	slot, err := r.loadSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.IsSent() {
		return nil, fmt.Errorf("editing slot %s: %w", slotID, ErrSlotSent)
	}

	now := r.nowUTC()
	delta := target - slot.Duration(now)

	if delta >= 0 {
		// Extend the last chunk; an open chunk is closed at now+delta.
		last := slot.LastChunk()
		if last == nil {
			return slot, nil
		}
		newEnd := last.EndOr(now).Add(delta)
		if err := r.setChunkEnd(ctx, last.ID, newEnd); err != nil {
			return nil, err
		}
		return r.loadSlot(ctx, slotID)
	}

	// Shrink: drop whole trailing chunks, then shorten the chunk at the trim
	// point. Chunks before it stay untouched. The first chunk is never
	// deleted: a slot always keeps at least one chunk, shortened to zero
	// length when the trim consumes it entirely.
	remaining := -delta
	for i := len(slot.Chunks) - 1; i >= 0 && remaining > 0; i-- {
		chunk := &slot.Chunks[i]
		d := chunk.Duration(now)
		if d <= remaining && i > 0 {
			if _, err := r.db.ExecContext(ctx, `DELETE FROM chunks WHERE id = ?`, chunk.ID); err != nil {
				return nil, fmt.Errorf("removing trailing chunk: %w", err)
			}
			remaining -= d
			continue
		}
		newEnd := chunk.EndOr(now).Add(-remaining)
		if newEnd.Before(chunk.Start) {
			newEnd = chunk.Start
		}
		if err := r.setChunkEnd(ctx, chunk.ID, newEnd); err != nil {
			return nil, err
		}
		break
	}
	return r.loadSlot(ctx, slotID)
}

func (r *SQLiteSlotRepo) Combine(ctx context.Context, slot1ID, slot2ID string) (*domain.Slot, error) {
	s1, err := r.loadSlot(ctx, slot1ID)
	if err != nil {
		return nil, err
	}
	s2, err := r.loadSlot(ctx, slot2ID)
	if err != nil {
		return nil, err
	}

	if s1.TicketID != s2.TicketID {
		return nil, fmt.Errorf("combining %s and %s: %w", slot1ID, slot2ID, ErrTicketMismatch)
	}
	if s1.IsSent() || s2.IsSent() {
		return nil, fmt.Errorf("combining %s and %s: %w", slot1ID, slot2ID, ErrSlotSent)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE chunks SET sid = ? WHERE sid = ?`, s1.ID, s2.ID); err != nil {
		return nil, fmt.Errorf("reassigning chunks: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, s2.ID); err != nil {
		return nil, fmt.Errorf("deleting combined slot: %w", err)
	}
	return r.loadSlot(ctx, s1.ID)
}

func (r *SQLiteSlotRepo) Delete(ctx context.Context, slotID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE id = ? AND teid IS NULL`, slotID)
	if err != nil {
		return false, fmt.Errorf("deleting slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting slot: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteSlotRepo) Tag(ctx context.Context, categoryID, slotID string) (bool, error) {
	if slotID == "" {
		// Bulk re-tag of the entire un-sent backlog.
		if _, err := r.db.ExecContext(ctx, `UPDATE slots SET category = ? WHERE teid IS NULL`, categoryID); err != nil {
			return false, fmt.Errorf("tagging slots: %w", err)
		}
		return true, nil
	}

	slot, err := r.findSlot(ctx, slotID)
	if err != nil {
		return false, err
	}
	if slot == nil {
		return false, nil
	}
	if slot.IsSent() {
		return false, fmt.Errorf("tagging slot %s: %w", slotID, ErrSlotSent)
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE slots SET category = ? WHERE id = ?`, categoryID, slotID); err != nil {
		return false, fmt.Errorf("tagging slot: %w", err)
	}
	return true, nil
}

func (r *SQLiteSlotRepo) Comment(ctx context.Context, slotID, text string) (bool, error) {
	slot, err := r.findSlot(ctx, slotID)
	if err != nil {
		return false, err
	}
	if slot == nil {
		return false, nil
	}
	if slot.IsSent() {
		return false, fmt.Errorf("commenting slot %s: %w", slotID, ErrSlotSent)
	}

	// First write wins; re-commenting needs an explicit override elsewhere.
	res, err := r.db.ExecContext(ctx, `UPDATE slots SET comment = ? WHERE id = ? AND comment IS NULL`, text, slotID)
	if err != nil {
		return false, fmt.Errorf("commenting slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("commenting slot: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteSlotRepo) Review(ctx context.Context, since time.Time, incompleteOnly bool) ([]*domain.Slot, error) {
	query := `SELECT s.id FROM slots s
		JOIN chunks c ON c.sid = s.id
		WHERE s.teid IS NULL AND c.start > ?`
	if incompleteOnly {
		query += ` AND (s.comment IS NULL OR s.category IS NULL)`
	}
	query += ` GROUP BY s.id ORDER BY MIN(c.start)`

	rows, err := r.db.QueryContext(ctx, query, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing review slots: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning review slot id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review slots: %w", err)
	}

	slots := make([]*domain.Slot, 0, len(ids))
	for _, id := range ids {
		slot, err := r.loadSlot(ctx, id)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (r *SQLiteSlotRepo) Send(ctx context.Context) ([]*domain.Slot, error) {
	return r.Review(ctx, time.Unix(0, 0), false)
}

func (r *SQLiteSlotRepo) Store(ctx context.Context, remoteIDs map[string]string) error {
	for ticketID, remoteID := range remoteIDs {
		query := `UPDATE slots SET teid = ? WHERE tid = ? AND teid IS NULL`
		if _, err := r.db.ExecContext(ctx, query, remoteID, ticketID); err != nil {
			return fmt.Errorf("storing remote entry id for %s: %w", ticketID, err)
		}
	}
	return nil
}

func (r *SQLiteSlotRepo) TotalByTicket(ctx context.Context, start, end time.Time) ([]TicketTotal, error) {
	now := r.nowUTC()
	if end.IsZero() {
		// Default window end captures the still-open chunk.
		end = now.Add(24 * time.Hour)
	}

	query := `SELECT s.id, s.tid, s.connector_id, c.start, c."end"
		FROM slots s
		JOIN chunks c ON c.sid = s.id
		WHERE c.start < ? AND COALESCE(c."end", ?) > ?
		ORDER BY s.id, c.start`
	rows, err := r.db.QueryContext(ctx, query,
		end.UTC().Format(time.RFC3339),
		now.Format(time.RFC3339),
		start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("querying ticket totals: %w", err)
	}
	defer rows.Close()

	type slotAgg struct {
		ticketID    string
		connectorID string
		duration    time.Duration
	}
	perSlot := make(map[string]*slotAgg)
	var slotOrder []string

	for rows.Next() {
		var slotID, tid, connectorID, startStr string
		var endStr sql.NullString
		if err := rows.Scan(&slotID, &tid, &connectorID, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		chunkStart, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing chunk start: %w", err)
		}
		chunk := domain.Chunk{Start: chunkStart, End: parseNullableTime(endStr)}

		agg, ok := perSlot[slotID]
		if !ok {
			agg = &slotAgg{ticketID: tid, connectorID: connectorID}
			perSlot[slotID] = agg
			slotOrder = append(slotOrder, slotID)
		}
		agg.duration += chunk.Duration(now)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
	}

	// Round each slot to the nearest quarter hour before summing into its
	// ticket total.
	type key struct{ tid, connectorID string }
	totals := make(map[key]int64)
	var keyOrder []key
	for _, slotID := range slotOrder {
		agg := perSlot[slotID]
		k := key{agg.ticketID, agg.connectorID}
		if _, ok := totals[k]; !ok {
			keyOrder = append(keyOrder, k)
		}
		totals[k] += int64(agg.duration.Round(domain.RoundingUnit).Seconds())
	}

	result := make([]TicketTotal, 0, len(keyOrder))
	for _, k := range keyOrder {
		result = append(result, TicketTotal{TicketID: k.tid, ConnectorID: k.connectorID, Seconds: totals[k]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Seconds != result[j].Seconds {
			return result[i].Seconds > result[j].Seconds
		}
		return result[i].TicketID < result[j].TicketID
	})
	return result, nil
}

func (r *SQLiteSlotRepo) Frequent(ctx context.Context) ([]TicketFrequency, error) {
	query := `SELECT tid, connector_id, COUNT(*) AS n
		FROM slots
		GROUP BY tid, connector_id
		ORDER BY n DESC, tid
		LIMIT 10`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying frequent tickets: %w", err)
	}
	defer rows.Close()

	var result []TicketFrequency
	for rows.Next() {
		var f TicketFrequency
		if err := rows.Scan(&f.TicketID, &f.ConnectorID, &f.Slots); err != nil {
			return nil, fmt.Errorf("scanning frequent ticket: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating frequent tickets: %w", err)
	}
	return result, nil
}

// appendChunk inserts a new open chunk starting at start.
func (r *SQLiteSlotRepo) appendChunk(ctx context.Context, slotID string, start time.Time) error {
	query := `INSERT INTO chunks (id, sid, start, "end") VALUES (?, ?, ?, NULL)`
	if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), slotID, start.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting chunk: %w", err)
	}
	return nil
}

func (r *SQLiteSlotRepo) setChunkEnd(ctx context.Context, chunkID string, end time.Time) error {
	query := `UPDATE chunks SET "end" = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, end.UTC().Format(time.RFC3339), chunkID); err != nil {
		return fmt.Errorf("updating chunk end: %w", err)
	}
	return nil
}

// findSlot loads a slot, returning nil instead of an error when it does not
// exist.
func (r *SQLiteSlotRepo) findSlot(ctx context.Context, id string) (*domain.Slot, error) {
	slot, err := r.loadSlot(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return slot, nil
}

// loadSlot reads a slot snapshot with its chunks ordered by start.
func (r *SQLiteSlotRepo) loadSlot(ctx context.Context, id string) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.Slot
	var comment, category, teid sql.NullString
	if err := row.Scan(&s.ID, &s.TicketID, &s.ConnectorID, &comment, &category, &teid); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("slot %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning slot: %w", err)
	}
	s.Comment = parseNullableString(comment)
	s.Category = parseNullableString(category)
	s.RemoteEntryID = parseNullableString(teid)

	chunkQuery := `SELECT id, sid, start, "end" FROM chunks WHERE sid = ? ORDER BY start`
	rows, err := r.db.QueryContext(ctx, chunkQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Chunk
		var startStr string
		var endStr sql.NullString
		if err := rows.Scan(&c.ID, &c.SlotID, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.Start, err = time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing chunk start: %w", err)
		}
		c.End = parseNullableTime(endStr)
		s.Chunks = append(s.Chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return &s, nil
}
