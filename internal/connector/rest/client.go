// Package rest implements the connector contract against a generic JSON
// ticketing API. Backend-specific connectors follow the same shape.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/domain"
)

const maxRetries = 3

// Client talks to a ticketing backend over HTTP. Requests are retried with
// exponential backoff on 429 and 5xx responses.
type Client struct {
	token      string
	baseURL    string
	browseURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client for the backend at baseURL. browseURL is the prefix
// for user-facing ticket links; it defaults to baseURL when empty.
func New(baseURL, browseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if browseURL == "" {
		browseURL = baseURL
	}
	return &Client{
		token:     token,
		baseURL:   strings.TrimRight(baseURL, "/"),
		browseURL: strings.TrimRight(browseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	var resp *http.Response
	for attempt := 0; attempt <= maxRetries; attempt++ {
		// The body reader is consumed per attempt, so the request is
		// rebuilt for every retry.
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return nil, fmt.Errorf("sending request: %w", err)
			}
			c.logger.Debug("transport error, retrying", "path", path, "attempt", attempt+1, "error", err)
			time.Sleep(backoff(attempt))
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return nil, fmt.Errorf("backend returned status %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.logger.Debug("retryable status", "path", path, "status", resp.StatusCode, "attempt", attempt+1)
			time.Sleep(backoff(attempt))
			continue
		}
		break
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("backend request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

type ticketResponse struct {
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
	Billable  bool   `json:"billable"`
}

func (c *Client) TicketDetails(ctx context.Context, ticketID string) (*connector.TicketDetails, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/tickets/"+ticketID, nil)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w: %w", ticketID, connector.ErrLookupFailed, err)
	}
	var t ticketResponse
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("ticket %s: %w: %w", ticketID, connector.ErrLookupFailed, err)
	}
	return &connector.TicketDetails{Title: t.Title, ProjectID: t.ProjectID, Billable: t.Billable}, nil
}

type namedResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) FetchCategories(ctx context.Context) (map[string]string, error) {
	return c.fetchNamed(ctx, "/categories")
}

func (c *Client) ProjectNames(ctx context.Context) (map[string]string, error) {
	return c.fetchNamed(ctx, "/projects")
}

func (c *Client) fetchNamed(ctx context.Context, path string) (map[string]string, error) {
	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, connector.ErrLookupFailed, err)
	}
	var items []namedResource
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, connector.ErrLookupFailed, err)
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}

type entryRequest struct {
	TicketID string `json:"ticket_id"`
	Seconds  int64  `json:"seconds"`
	Comment  string `json:"comment,omitempty"`
	Category string `json:"category,omitempty"`
}

type entryResponse struct {
	ID string `json:"id"`
}

func (c *Client) SendEntry(ctx context.Context, slot *domain.Slot) (string, error) {
	req := entryRequest{
		TicketID: slot.TicketID,
		Seconds:  int64(slot.RoundedDuration(time.Now()).Seconds()),
	}
	if slot.Comment != nil {
		req.Comment = *slot.Comment
	}
	if slot.Category != nil {
		req.Category = *slot.Category
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/entries", req)
	if err != nil {
		return "", fmt.Errorf("sending entry for %s: %w", slot.TicketID, err)
	}
	var e entryResponse
	if err := json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("decoding entry response: %w", err)
	}
	c.logger.Info("entry sent", "ticket", slot.TicketID, "remote_id", e.ID)
	return e.ID, nil
}

func (c *Client) TicketURL(ticketID string) string {
	return c.browseURL + "/tickets/" + ticketID
}

type aliasResponse struct {
	TicketID string `json:"ticket_id"`
}

func (c *Client) LoadAlias(ctx context.Context, ticketID string) (string, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/aliases/"+ticketID, nil)
	if err != nil {
		return "", fmt.Errorf("alias %s: %w: %w", ticketID, connector.ErrLookupFailed, err)
	}
	var a aliasResponse
	if err := json.Unmarshal(data, &a); err != nil {
		return "", fmt.Errorf("alias %s: %w: %w", ticketID, connector.ErrLookupFailed, err)
	}
	return a.TicketID, nil
}

var _ connector.Connector = (*Client)(nil)
