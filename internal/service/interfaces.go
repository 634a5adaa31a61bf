package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
)

type TrackingService interface {
	Start(ctx context.Context, ticketID, connectorID, comment, continueSlotID string) (*domain.Slot, error)
	Stop(ctx context.Context, slotID string) (*domain.Slot, error)
	Active(ctx context.Context, slotID string) (*domain.Slot, error)
	Latest(ctx context.Context) (*domain.Slot, error)
	Edit(ctx context.Context, slotID string, target time.Duration) (*domain.Slot, error)
	Combine(ctx context.Context, slot1ID, slot2ID string) (*domain.Slot, error)
	Delete(ctx context.Context, slotID string) (bool, error)
	Tag(ctx context.Context, categoryID, slotID string) (bool, error)
	Comment(ctx context.Context, slotID, text string) (bool, error)
	Status(ctx context.Context, date time.Time) ([]repository.TicketTotal, error)
	TotalByTicket(ctx context.Context, start, end time.Time) ([]repository.TicketTotal, error)
	Frequent(ctx context.Context) ([]repository.TicketFrequency, error)
}

type AliasService interface {
	Add(ctx context.Context, ticketID, alias string) error
	Remove(ctx context.Context, alias string) (bool, error)
	// Resolve maps an alias to its ticket id, returning the input unchanged
	// when no alias is registered.
	Resolve(ctx context.Context, ref string) (string, error)
	List(ctx context.Context, ticketID string) ([]domain.Alias, error)
}

type ReviewService interface {
	GetSummary(ctx context.Context, since time.Time, incompleteOnly bool) (*ReviewSummary, error)
}

type BillingService interface {
	GetBillableSummary(ctx context.Context, period Period, start time.Time) (*BillableSummary, error)
	MonthStats(ctx context.Context, date time.Time) (*MonthStats, error)
	WriteTarget(value string, date time.Time) error
}

type SendService interface {
	Send(ctx context.Context) (*SendResult, error)
}
