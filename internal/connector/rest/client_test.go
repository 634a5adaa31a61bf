package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(srv.URL, "https://browse.test", "token-1", nil)
	// No sleeping between retries in tests.
	c.httpClient.Timeout = 5 * time.Second
	return c
}

func TestClient_TicketDetails(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/tickets/T-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"title": "Fix login", "project_id": "P1", "billable": true})
	}))

	details, err := client.TicketDetails(context.Background(), "T-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, "Fix login", details.Title)
	assert.Equal(t, "P1", details.ProjectID)
	assert.True(t, details.Billable)
}

func TestClient_TicketDetails_NotFoundWrapsLookupError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	_, err := client.TicketDetails(context.Background(), "T-404")
	assert.ErrorIs(t, err, connector.ErrLookupFailed)
}

func TestClient_FetchCategories(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "dev", "name": "Development"},
			{"id": "ops", "name": "Operations"},
		})
	}))

	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"dev": "Development", "ops": "Operations"}, categories)
}

func TestClient_SendEntry_RoundsDuration(t *testing.T) {
	var got entryRequest
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entries", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"id": "remote-7"})
	}))

	comment := "login fix"
	start := time.Now().UTC().Add(-time.Hour)
	end := start.Add(8 * time.Minute)
	slot := &domain.Slot{
		ID:       "slot-1",
		TicketID: "T-1",
		Comment:  &comment,
		Chunks:   []domain.Chunk{{Start: start, End: &end}},
	}

	remoteID, err := client.SendEntry(context.Background(), slot)
	require.NoError(t, err)

	assert.Equal(t, "remote-7", remoteID)
	assert.Equal(t, "T-1", got.TicketID)
	assert.Equal(t, int64(900), got.Seconds)
	assert.Equal(t, "login fix", got.Comment)
}

func TestClient_SendEntry_RetriesWithBody(t *testing.T) {
	var attempts atomic.Int64
	var got entryRequest
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"id": "remote-1"})
	}))

	end := time.Now().UTC()
	start := end.Add(-time.Hour)
	slot := &domain.Slot{ID: "slot-1", TicketID: "T-1", Chunks: []domain.Chunk{{Start: start, End: &end}}}

	remoteID, err := client.SendEntry(context.Background(), slot)
	require.NoError(t, err)

	assert.Equal(t, int64(2), attempts.Load())
	assert.Equal(t, "remote-1", remoteID)
	// The retried request carried the full body again.
	assert.Equal(t, "T-1", got.TicketID)
}

func TestClient_TicketURL(t *testing.T) {
	client := New("https://api.test", "https://browse.test", "t", nil)
	assert.Equal(t, "https://browse.test/tickets/T-1", client.TicketURL("T-1"))
}

func TestClient_LoadAlias(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aliases/OLD-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"ticket_id": "T-1"})
	}))

	canonical, err := client.LoadAlias(context.Background(), "OLD-1")
	require.NoError(t, err)
	assert.Equal(t, "T-1", canonical)
}
