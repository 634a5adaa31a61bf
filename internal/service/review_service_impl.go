package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
)

// ErrNothingToReview signals an empty review set. A user-facing condition,
// not a system fault.
var ErrNothingToReview = errors.New("nothing to review")

// UnknownTitle stands in for tickets the connector cannot resolve.
const UnknownTitle = "unknown"

// ReviewRow is one slot joined with its ticket metadata.
type ReviewRow struct {
	SlotID      string
	TicketID    string
	ConnectorID string
	Seconds     int64
	Title       string
	Category    string
	Comment     string
}

type ReviewSummary struct {
	Rows         []ReviewRow
	TotalSeconds int64
}

type reviewService struct {
	slots      repository.SlotRepo
	connectors *connector.Manager
	now        func() time.Time
}

// NewReviewService creates the service joining un-sent slots with ticket
// titles and category names from the connectors.
func NewReviewService(slots repository.SlotRepo, connectors *connector.Manager) ReviewService {
	return &reviewService{slots: slots, connectors: connectors, now: time.Now}
}

func (s *reviewService) GetSummary(ctx context.Context, since time.Time, incompleteOnly bool) (*ReviewSummary, error) {
	slots, err := s.slots.Review(ctx, since, incompleteOnly)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 && !incompleteOnly {
		return nil, ErrNothingToReview
	}
	return s.summarize(ctx, slots)
}

// summarize resolves titles and category names per slot. A failed lookup
// degrades that row to an unknown title instead of aborting the summary.
func (s *reviewService) summarize(ctx context.Context, slots []*domain.Slot) (*ReviewSummary, error) {
	summary := &ReviewSummary{Rows: make([]ReviewRow, 0, len(slots))}
	categories := map[string]map[string]string{}
	for _, slot := range slots {
		row := ReviewRow{
			SlotID:      slot.ID,
			TicketID:    slot.TicketID,
			ConnectorID: slot.ConnectorID,
			Seconds:     int64(slot.RoundedDuration(s.now()) / time.Second),
			Title:       UnknownTitle,
		}
		if details, err := s.connectors.TicketDetails(ctx, slot.TicketID, slot.ConnectorID); err == nil {
			row.Title = details.Title
		}
		if slot.Comment != nil {
			row.Comment = *slot.Comment
		}
		if slot.Category != nil {
			row.Category = s.categoryName(ctx, categories, slot.ConnectorID, *slot.Category)
		}
		summary.Rows = append(summary.Rows, row)
		summary.TotalSeconds += row.Seconds
	}
	return summary, nil
}

// categoryName fetches each connector's category map at most once per call.
func (s *reviewService) categoryName(ctx context.Context, cache map[string]map[string]string, connectorID, categoryID string) string {
	names, ok := cache[connectorID]
	if !ok {
		names, _ = s.connectors.FetchCategories(ctx, connectorID)
		if names == nil {
			names = map[string]string{}
		}
		cache[connectorID] = names
	}
	if name, ok := names[categoryID]; ok {
		return name
	}
	return categoryID
}
