package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
)

type trackingService struct {
	slots repository.SlotRepo
	uow   db.UnitOfWork
	now   func() time.Time
}

// NewTrackingService creates the service orchestrating slot lifecycle
// operations. Multi-statement mutations run inside a unit of work.
func NewTrackingService(slots repository.SlotRepo, uow db.UnitOfWork) TrackingService {
	return &trackingService{slots: slots, uow: uow, now: time.Now}
}

func (s *trackingService) Start(ctx context.Context, ticketID, connectorID, comment, continueSlotID string) (*domain.Slot, error) {
	var slot *domain.Slot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		slot, err = repository.NewSQLiteSlotRepo(tx).WithClock(s.now).Start(ctx, ticketID, connectorID, comment, continueSlotID)
		return err
	})
	return slot, err
}

func (s *trackingService) Stop(ctx context.Context, slotID string) (*domain.Slot, error) {
	return s.slots.Stop(ctx, slotID)
}

func (s *trackingService) Active(ctx context.Context, slotID string) (*domain.Slot, error) {
	return s.slots.GetActive(ctx, slotID)
}

func (s *trackingService) Latest(ctx context.Context) (*domain.Slot, error) {
	return s.slots.Latest(ctx)
}

func (s *trackingService) Edit(ctx context.Context, slotID string, target time.Duration) (*domain.Slot, error) {
	var slot *domain.Slot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		slot, err = repository.NewSQLiteSlotRepo(tx).WithClock(s.now).Edit(ctx, slotID, target)
		return err
	})
	return slot, err
}

func (s *trackingService) Combine(ctx context.Context, slot1ID, slot2ID string) (*domain.Slot, error) {
	var slot *domain.Slot
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		slot, err = repository.NewSQLiteSlotRepo(tx).WithClock(s.now).Combine(ctx, slot1ID, slot2ID)
		return err
	})
	return slot, err
}

func (s *trackingService) Delete(ctx context.Context, slotID string) (bool, error) {
	return s.slots.Delete(ctx, slotID)
}

func (s *trackingService) Tag(ctx context.Context, categoryID, slotID string) (bool, error) {
	return s.slots.Tag(ctx, categoryID, slotID)
}

func (s *trackingService) Comment(ctx context.Context, slotID, text string) (bool, error) {
	return s.slots.Comment(ctx, slotID, text)
}

// Status aggregates one calendar day in the date's own location.
func (s *trackingService) Status(ctx context.Context, date time.Time) ([]repository.TicketTotal, error) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.slots.TotalByTicket(ctx, midnight, midnight.Add(24*time.Hour))
}

func (s *trackingService) TotalByTicket(ctx context.Context, start, end time.Time) ([]repository.TicketTotal, error) {
	return s.slots.TotalByTicket(ctx, start, end)
}

func (s *trackingService) Frequent(ctx context.Context) ([]repository.TicketFrequency, error) {
	return s.slots.Frequent(ctx)
}
