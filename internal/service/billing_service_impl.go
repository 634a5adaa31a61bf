package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/repository"
)

// TargetStore persists per-month weekday overrides. The billing service
// requests the write but does not own the configuration file.
type TargetStore interface {
	// DaysOverride returns the stored override for a "YYYY-MM" key, either a
	// plain count or a comma-separated list of day-of-month values.
	DaysOverride(month string) (string, bool)
	SetDaysOverride(month, value string) error
}

// WeekdayPolicy estimates the number of working days in a month. The
// default has no holiday awareness and is replaceable for callers that
// track a real calendar.
type WeekdayPolicy func(year int, month time.Month) int

// DefaultWeekdayPolicy assumes a flat twenty working days in the first four
// weeks and counts Monday to Friday over whatever days 29 and up exist.
func DefaultWeekdayPolicy(year int, month time.Month) int {
	days := 20
	last := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
	for d := 29; d <= last; d++ {
		if isWeekday(time.Date(year, month, d, 0, 0, 0, 0, time.Local)) {
			days++
		}
	}
	return days
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ProjectSubtotal is the aggregated duration of one project in a window.
type ProjectSubtotal struct {
	ProjectID   string
	ProjectName string
	Seconds     int64
}

// BillableSummary buckets a period's tracked time by billability. Tickets
// the connector cannot resolve land in the unknown bucket.
type BillableSummary struct {
	Period             Period
	Start              time.Time
	End                time.Time
	BillableSeconds    int64
	NonBillableSeconds int64
	UnknownSeconds     int64
	Projects           []ProjectSubtotal
	BillablePercent    float64
	Target             float64
	Failing            bool
}

func (s *BillableSummary) TotalSeconds() int64 {
	return s.BillableSeconds + s.NonBillableSeconds + s.UnknownSeconds
}

// MonthStats reports progress against the month's working-day target.
type MonthStats struct {
	WeekdaysInMonth int
	DaysPassed      int
	HoursPerDay     int
	TargetHours     int
}

type billingService struct {
	slots       repository.SlotRepo
	connectors  *connector.Manager
	targets     TargetStore
	target      float64
	hoursPerDay int
	weekdays    WeekdayPolicy
	now         func() time.Time
}

// NewBillingService creates the period calculator. billablePercentage is
// the failing threshold, hoursPerDay scales weekdays into target hours.
func NewBillingService(slots repository.SlotRepo, connectors *connector.Manager, targets TargetStore, billablePercentage float64, hoursPerDay int) BillingService {
	return &billingService{
		slots:       slots,
		connectors:  connectors,
		targets:     targets,
		target:      billablePercentage,
		hoursPerDay: hoursPerDay,
		weekdays:    DefaultWeekdayPolicy,
		now:         time.Now,
	}
}

func (s *billingService) GetBillableSummary(ctx context.Context, period Period, start time.Time) (*BillableSummary, error) {
	from, to := PeriodBounds(period, start)
	totals, err := s.slots.TotalByTicket(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &BillableSummary{Period: period, Start: from, End: to, Target: s.target}
	projectSeconds := map[string]int64{}
	projectConnector := map[string]string{}
	for _, total := range totals {
		details, err := s.connectors.TicketDetails(ctx, total.TicketID, total.ConnectorID)
		if err != nil {
			summary.UnknownSeconds += total.Seconds
			continue
		}
		if details.Billable {
			summary.BillableSeconds += total.Seconds
		} else {
			summary.NonBillableSeconds += total.Seconds
		}
		projectSeconds[details.ProjectID] += total.Seconds
		projectConnector[details.ProjectID] = total.ConnectorID
	}

	for projectID, seconds := range projectSeconds {
		sub := ProjectSubtotal{ProjectID: projectID, ProjectName: projectID, Seconds: seconds}
		if names, err := s.connectors.ProjectNames(ctx, projectConnector[projectID]); err == nil {
			if name, ok := names[projectID]; ok {
				sub.ProjectName = name
			}
		}
		summary.Projects = append(summary.Projects, sub)
	}
	sort.Slice(summary.Projects, func(i, j int) bool {
		if summary.Projects[i].Seconds != summary.Projects[j].Seconds {
			return summary.Projects[i].Seconds > summary.Projects[j].Seconds
		}
		return summary.Projects[i].ProjectID < summary.Projects[j].ProjectID
	})

	if total := summary.TotalSeconds(); total > 0 {
		summary.BillablePercent = float64(summary.BillableSeconds) / float64(total)
		summary.Failing = summary.BillablePercent < s.target
	}
	return summary, nil
}

func (s *billingService) MonthStats(_ context.Context, date time.Time) (*MonthStats, error) {
	stats := &MonthStats{HoursPerDay: s.hoursPerDay}

	override, hasOverride := "", false
	if s.targets != nil {
		override, hasOverride = s.targets.DaysOverride(date.Format("2006-01"))
	}

	if hasOverride {
		if count, err := strconv.Atoi(strings.TrimSpace(override)); err == nil {
			stats.WeekdaysInMonth = count
			stats.DaysPassed = s.daysPassed(date)
		} else {
			days := parseDayList(override)
			stats.WeekdaysInMonth = len(days)
			stats.DaysPassed = s.daysPassedFromList(days, date)
		}
	} else {
		stats.WeekdaysInMonth = s.weekdays(date.Year(), date.Month())
		stats.DaysPassed = s.daysPassed(date)
	}

	stats.TargetHours = stats.WeekdaysInMonth * s.hoursPerDay
	return stats, nil
}

// daysPassed counts the weekdays elapsed this month, withholding today's
// credit until mid-afternoon.
func (s *billingService) daysPassed(date time.Time) int {
	now := s.now()
	passed := 0
	for d := 1; d <= date.Day(); d++ {
		if isWeekday(time.Date(date.Year(), date.Month(), d, 0, 0, 0, 0, date.Location())) {
			passed++
		}
	}
	// Today is only withheld if it was counted at all; a weekend check must
	// not un-credit the preceding weekday.
	if now.Hour() < 15 && passed > 0 && isWeekday(date) {
		passed--
	}
	return passed
}

func (s *billingService) daysPassedFromList(days []int, date time.Time) int {
	now := s.now()
	passed := 0
	for _, d := range days {
		if d < date.Day() {
			passed++
		} else if d == date.Day() && now.Hour() >= 15 {
			passed++
		}
	}
	return passed
}

func parseDayList(value string) []int {
	var days []int
	for _, part := range strings.Split(value, ",") {
		if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			days = append(days, d)
		}
	}
	return days
}

func (s *billingService) WriteTarget(value string, date time.Time) error {
	if s.targets == nil {
		return fmt.Errorf("no target store configured")
	}
	return s.targets.SetDaysOverride(date.Format("2006-01"), value)
}
