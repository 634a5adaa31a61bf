package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slotTestSetup returns a repo with a controllable clock. Advancing the
// returned time pointer moves the repository's notion of now.
func slotTestSetup(t *testing.T) (*SQLiteSlotRepo, *sql.DB, *time.Time) {
	t.Helper()
	database := testutil.NewTestDB(t)
	current := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := NewSQLiteSlotRepo(database).WithClock(func() time.Time { return current })
	return repo, database, &current
}

func TestSlotRepo_StartCreatesOpenSlot(t *testing.T) {
	repo, _, _ := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	assert.Equal(t, "T-1", slot.TicketID)
	assert.Equal(t, "jira", slot.ConnectorID)
	assert.True(t, slot.IsOpen())
	assert.Len(t, slot.Chunks, 1)
	assert.Nil(t, slot.Comment)
	assert.Nil(t, slot.Category)
	assert.False(t, slot.IsSent())
}

func TestSlotRepo_StartThenStop_Duration(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	started, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)
	stopped, err := repo.Stop(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, stopped)
	assert.Equal(t, started.ID, stopped.ID)
	assert.False(t, stopped.IsOpen())
	assert.Equal(t, 30*time.Minute, stopped.Duration(*now))
}

func TestSlotRepo_Stop_NothingRunning(t *testing.T) {
	repo, _, _ := slotTestSetup(t)

	slot, err := repo.Stop(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestSlotRepo_ImplicitContinuation(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	first, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)

	*now = now.Add(20 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	second, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "uncommented start should continue the existing slot")
	assert.Len(t, second.Chunks, 2)
	assert.True(t, second.IsOpen())
}

func TestSlotRepo_Start_WithCommentOpensNewSlot(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	first, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(10 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	second, err := repo.Start(ctx, "T-1", "jira", "wrote the report", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	require.NotNil(t, second.Comment)
	assert.Equal(t, "wrote the report", *second.Comment)
}

func TestSlotRepo_ImplicitContinuation_SkipsCommented(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	commented, err := repo.Start(ctx, "T-1", "jira", "already described", "")
	require.NoError(t, err)
	*now = now.Add(5 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	fresh, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, commented.ID, fresh.ID, "commented slots must not absorb new chunks")
}

func TestSlotRepo_ImplicitContinuation_SkipsSent(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	sent := testutil.NewTestSlot("T-1", testutil.WithConnector("jira"), testutil.WithRemoteEntryID("r-1"))
	testutil.SeedSlot(t, database, sent)

	fresh, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, sent.ID, fresh.ID)
	assert.False(t, fresh.IsSent())
}

func TestSlotRepo_ContinueByID(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "with comment", "")
	require.NoError(t, err)
	*now = now.Add(15 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	resumed, err := repo.Start(ctx, "", "", "", slot.ID)
	require.NoError(t, err)
	assert.Equal(t, slot.ID, resumed.ID)
	assert.Len(t, resumed.Chunks, 2)
	assert.True(t, resumed.IsOpen())
}

func TestSlotRepo_ContinueByID_Errors(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	_, err := repo.Start(ctx, "", "", "", "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	open, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	_, err = repo.Start(ctx, "", "", "", open.ID)
	assert.ErrorIs(t, err, ErrSlotOpen)

	sent := testutil.NewTestSlot("T-2", testutil.WithRemoteEntryID("r-1"))
	testutil.SeedSlot(t, database, sent)
	_, err = repo.Start(ctx, "", "", "", sent.ID)
	assert.ErrorIs(t, err, ErrSlotSent)
}

func TestSlotRepo_GetActive_Scoped(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	running, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)

	active, err := repo.GetActive(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, running.ID, active.ID)

	scoped, err := repo.GetActive(ctx, running.ID)
	require.NoError(t, err)
	require.NotNil(t, scoped)

	*now = now.Add(time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	closed, err := repo.GetActive(ctx, running.ID)
	require.NoError(t, err)
	assert.Nil(t, closed, "a stopped slot is no longer active")
}

func TestSlotRepo_Latest(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	older, err := repo.Start(ctx, "T-1", "jira", "first", "")
	require.NoError(t, err)
	*now = now.Add(10 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	*now = now.Add(10 * time.Minute)
	newer, err := repo.Start(ctx, "T-2", "jira", "second", "")
	require.NoError(t, err)
	*now = now.Add(10 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.ID, latest.ID)
	assert.NotEqual(t, older.ID, latest.ID)
}

func TestSlotRepo_Edit_ShrinkSingleChunk(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	start := slot.Chunks[0].Start
	*now = now.Add(time.Hour)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	edited, err := repo.Edit(ctx, slot.ID, 15*time.Minute)
	require.NoError(t, err)
	require.Len(t, edited.Chunks, 1)
	require.NotNil(t, edited.Chunks[0].End)
	assert.Equal(t, start.Add(900*time.Second), *edited.Chunks[0].End)
	assert.Equal(t, 15*time.Minute, edited.Duration(*now))
}

func TestSlotRepo_Edit_Extend(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	edited, err := repo.Edit(ctx, slot.ID, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, edited.Duration(*now))
}

func TestSlotRepo_Edit_TrimsTrailingChunks(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	// First chunk: one hour.
	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	// Second chunk: thirty minutes.
	*now = now.Add(time.Hour)
	_, err = repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(30 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	// Target 45m: the 30m chunk is removed entirely, then the first chunk
	// is shortened by the remaining 15m.
	edited, err := repo.Edit(ctx, slot.ID, 45*time.Minute)
	require.NoError(t, err)
	require.Len(t, edited.Chunks, 1)
	assert.Equal(t, 45*time.Minute, edited.Duration(*now))
}

func TestSlotRepo_Edit_ToZeroKeepsOneChunk(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	start := slot.Chunks[0].Start
	*now = now.Add(time.Hour)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	// Shrinking to zero keeps the first chunk, collapsed to zero length,
	// so the slot never ends up without chunks.
	edited, err := repo.Edit(ctx, slot.ID, 0)
	require.NoError(t, err)
	require.Len(t, edited.Chunks, 1)
	require.NotNil(t, edited.Chunks[0].End)
	assert.Equal(t, start, edited.Chunks[0].Start)
	assert.Equal(t, start, *edited.Chunks[0].End)
	assert.Equal(t, time.Duration(0), edited.Duration(*now))

	// A later edit picks the zero-length chunk back up.
	restored, err := repo.Edit(ctx, slot.ID, time.Hour)
	require.NoError(t, err)
	require.Len(t, restored.Chunks, 1)
	assert.Equal(t, time.Hour, restored.Duration(*now))
}

func TestSlotRepo_Edit_MultiChunkToZero(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	_, err = repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(30 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	// The trailing chunk is deleted, the first one survives at zero length.
	edited, err := repo.Edit(ctx, slot.ID, 0)
	require.NoError(t, err)
	require.Len(t, edited.Chunks, 1)
	assert.Equal(t, time.Duration(0), edited.Duration(*now))
}

func TestSlotRepo_Edit_OpenChunkMeasuredFromNow(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	slot, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(30 * time.Minute)

	edited, err := repo.Edit(ctx, slot.ID, time.Hour)
	require.NoError(t, err)
	assert.False(t, edited.IsOpen(), "editing an open slot closes its chunk")
	assert.Equal(t, time.Hour, edited.Duration(*now))
}

func TestSlotRepo_Edit_SentSlotFails(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	sent := testutil.NewTestSlot("T-1", testutil.WithRemoteEntryID("r-1"))
	testutil.SeedSlot(t, database, sent)

	_, err := repo.Edit(ctx, sent.ID, time.Hour)
	assert.ErrorIs(t, err, ErrSlotSent)
}

func TestSlotRepo_Combine(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	a, err := repo.Start(ctx, "T-1", "jira", "morning", "")
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	b, err := repo.Start(ctx, "T-1", "jira", "afternoon", "")
	require.NoError(t, err)
	*now = now.Add(30 * time.Minute)
	_, err = repo.Stop(ctx, "")
	require.NoError(t, err)

	combined, err := repo.Combine(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, combined.ID)
	assert.Len(t, combined.Chunks, 2)
	assert.Equal(t, 90*time.Minute, combined.Duration(*now))

	_, err = repo.Edit(ctx, b.ID, time.Hour)
	assert.ErrorIs(t, err, ErrNotFound, "combined-away slot should be gone")
}

func TestSlotRepo_Combine_TicketMismatch(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	a := testutil.NewTestSlot("T-1")
	b := testutil.NewTestSlot("T-2")
	testutil.SeedSlot(t, database, a)
	testutil.SeedSlot(t, database, b)

	_, err := repo.Combine(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrTicketMismatch)
}

func TestSlotRepo_Combine_SentSlotFails(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	a := testutil.NewTestSlot("T-1")
	b := testutil.NewTestSlot("T-1", testutil.WithRemoteEntryID("r-9"))
	testutil.SeedSlot(t, database, a)
	testutil.SeedSlot(t, database, b)

	_, err := repo.Combine(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrSlotSent)
}

func TestSlotRepo_Delete(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	slot := testutil.NewTestSlot("T-1")
	testutil.SeedSlot(t, database, slot)

	deleted, err := repo.Delete(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var chunks int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&chunks))
	assert.Zero(t, chunks)

	// Unknown id is a no-op, not an error.
	deleted, err = repo.Delete(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSlotRepo_Delete_SentSlotRefused(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	sent := testutil.NewTestSlot("T-1", testutil.WithRemoteEntryID("r-1"))
	testutil.SeedSlot(t, database, sent)

	deleted, err := repo.Delete(ctx, sent.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSlotRepo_Comment_FirstWriteWins(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	slot := testutil.NewTestSlot("T-1")
	testutil.SeedSlot(t, database, slot)

	applied, err := repo.Comment(ctx, slot.ID, "first")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.Comment(ctx, slot.ID, "second")
	require.NoError(t, err)
	assert.False(t, applied, "existing comment must not be overwritten")

	reloaded, err := repo.loadSlot(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Comment)
	assert.Equal(t, "first", *reloaded.Comment)

	applied, err = repo.Comment(ctx, "nonexistent", "text")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestSlotRepo_Tag_Overwrites(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	slot := testutil.NewTestSlot("T-1", testutil.WithCategory("dev"))
	testutil.SeedSlot(t, database, slot)

	tagged, err := repo.Tag(ctx, "support", slot.ID)
	require.NoError(t, err)
	assert.True(t, tagged)

	reloaded, err := repo.loadSlot(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Category)
	assert.Equal(t, "support", *reloaded.Category, "tag always overwrites")
}

func TestSlotRepo_Tag_Unscoped(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	unsent := testutil.NewTestSlot("T-1")
	sent := testutil.NewTestSlot("T-2", testutil.WithRemoteEntryID("r-1"), testutil.WithCategory("old"))
	testutil.SeedSlot(t, database, unsent)
	testutil.SeedSlot(t, database, sent)

	_, err := repo.Tag(ctx, "ops", "")
	require.NoError(t, err)

	reloaded, err := repo.loadSlot(ctx, unsent.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Category)
	assert.Equal(t, "ops", *reloaded.Category)

	sentReloaded, err := repo.loadSlot(ctx, sent.ID)
	require.NoError(t, err)
	require.NotNil(t, sentReloaded.Category)
	assert.Equal(t, "old", *sentReloaded.Category, "sent slots stay immutable")
}

func TestSlotRepo_Tag_SentSlotFails(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	sent := testutil.NewTestSlot("T-1", testutil.WithRemoteEntryID("r-1"))
	testutil.SeedSlot(t, database, sent)

	_, err := repo.Tag(ctx, "dev", sent.ID)
	assert.ErrorIs(t, err, ErrSlotSent)
}

func TestSlotRepo_Review_ExcludesSentSlots(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	unsent := testutil.NewTestSlot("T-1")
	sent := testutil.NewTestSlot("T-2", testutil.WithRemoteEntryID("r-1"))
	testutil.SeedSlot(t, database, unsent)
	testutil.SeedSlot(t, database, sent)

	slots, err := repo.Review(ctx, time.Unix(0, 0), false)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, unsent.ID, slots[0].ID)
	for _, s := range slots {
		assert.False(t, s.IsSent())
	}
}

func TestSlotRepo_Review_SinceAndIncomplete(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	old := testutil.NewTestSlot("T-old", testutil.WithChunk(
		time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
	))
	complete := testutil.NewTestSlot("T-done",
		testutil.WithComment("done"), testutil.WithCategory("dev"),
		testutil.WithChunk(
			time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
		))
	incomplete := testutil.NewTestSlot("T-todo", testutil.WithChunk(
		time.Date(2023, 5, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC),
	))
	testutil.SeedSlot(t, database, old)
	testutil.SeedSlot(t, database, complete)
	testutil.SeedSlot(t, database, incomplete)

	since := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	all, err := repo.Review(ctx, since, false)
	require.NoError(t, err)
	assert.Len(t, all, 2, "slots before since are excluded")

	missing, err := repo.Review(ctx, since, true)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, incomplete.ID, missing[0].ID)
}

func TestSlotRepo_SendReturnsEntireBacklog(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	a := testutil.NewTestSlot("T-1", testutil.WithChunk(
		time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC),
	))
	b := testutil.NewTestSlot("T-2")
	testutil.SeedSlot(t, database, a)
	testutil.SeedSlot(t, database, b)

	slots, err := repo.Send(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 2, "send covers the whole un-sent backlog")
}

func TestSlotRepo_Store(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	s1 := testutil.NewTestSlot("T-1")
	s2 := testutil.NewTestSlot("T-1")
	already := testutil.NewTestSlot("T-1", testutil.WithRemoteEntryID("r-old"))
	testutil.SeedSlot(t, database, s1)
	testutil.SeedSlot(t, database, s2)
	testutil.SeedSlot(t, database, already)

	require.NoError(t, repo.Store(ctx, map[string]string{"T-1": "r-new"}))

	for _, id := range []string{s1.ID, s2.ID} {
		slot, err := repo.loadSlot(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, slot.RemoteEntryID)
		assert.Equal(t, "r-new", *slot.RemoteEntryID)
	}

	untouched, err := repo.loadSlot(ctx, already.ID)
	require.NoError(t, err)
	assert.Equal(t, "r-old", *untouched.RemoteEntryID)
}

func TestSlotRepo_TotalByTicket_RoundsPerSlot(t *testing.T) {
	repo, database, now := slotTestSetup(t)
	ctx := context.Background()

	base := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	// Two 8-minute slots: each rounds up to 15 minutes, so the ticket total
	// is 1800s, not the 900s that rounding the 16-minute sum would give.
	s1 := testutil.NewTestSlot("T-1", testutil.WithChunk(base, base.Add(8*time.Minute)))
	s2 := testutil.NewTestSlot("T-1", testutil.WithChunk(base.Add(20*time.Minute), base.Add(28*time.Minute)))
	testutil.SeedSlot(t, database, s1)
	testutil.SeedSlot(t, database, s2)

	totals, err := repo.TotalByTicket(ctx, base.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "T-1", totals[0].TicketID)
	assert.Equal(t, int64(1800), totals[0].Seconds)
}

func TestSlotRepo_TotalByTicket_DefaultEndCapturesOpenChunk(t *testing.T) {
	repo, _, now := slotTestSetup(t)
	ctx := context.Background()

	_, err := repo.Start(ctx, "T-1", "jira", "", "")
	require.NoError(t, err)
	*now = now.Add(30 * time.Minute)

	totals, err := repo.TotalByTicket(ctx, now.Add(-2*time.Hour), time.Time{})
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, int64(1800), totals[0].Seconds)
}

func TestSlotRepo_TotalByTicket_WindowExcludesOutside(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	inside := testutil.NewTestSlot("T-in", testutil.WithChunk(
		time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 1, 11, 0, 0, 0, time.UTC),
	))
	outside := testutil.NewTestSlot("T-out", testutil.WithChunk(
		time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2023, 5, 1, 11, 0, 0, 0, time.UTC),
	))
	testutil.SeedSlot(t, database, inside)
	testutil.SeedSlot(t, database, outside)

	totals, err := repo.TotalByTicket(ctx,
		time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "T-in", totals[0].TicketID)
}

func TestSlotRepo_Frequent(t *testing.T) {
	repo, database, _ := slotTestSetup(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		testutil.SeedSlot(t, database, testutil.NewTestSlot("T-big"))
	}
	testutil.SeedSlot(t, database, testutil.NewTestSlot("T-small"))

	freq, err := repo.Frequent(ctx)
	require.NoError(t, err)
	require.Len(t, freq, 2)
	assert.Equal(t, "T-big", freq[0].TicketID)
	assert.Equal(t, 3, freq[0].Slots)
	assert.Equal(t, "T-small", freq[1].TicketID)
}
