package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/interval"
	"github.com/alexanderramin/tally/internal/service"
)

// FormatBillableSummary renders a period's billable breakdown with a
// progress bar against the configured target.
func FormatBillableSummary(summary *service.BillableSummary) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Billable %s  %s – %s",
		summary.Period,
		summary.Start.Format("2006-01-02"),
		summary.End.Format("2006-01-02"))))
	b.WriteString("\n")

	if summary.TotalSeconds() == 0 {
		b.WriteString(Dim("nothing tracked in this period\n"))
		return b.String()
	}

	rows := [][]string{
		{"billable", interval.Format(summary.BillableSeconds)},
		{"non-billable", interval.Format(summary.NonBillableSeconds)},
	}
	if summary.UnknownSeconds > 0 {
		rows = append(rows, []string{Dim("unknown"), interval.Format(summary.UnknownSeconds)})
	}
	rows = append(rows, []string{Bold("total"), interval.Format(summary.TotalSeconds())})
	b.WriteString(RenderTable([]string{"BUCKET", "TIME"}, rows))

	b.WriteString("\n")
	b.WriteString(ProgressBar(summary.BillablePercent, summary.Target, 30))
	fmt.Fprintf(&b, " %s\n", Dim(fmt.Sprintf("(target %.0f%%)", summary.Target*100)))
	if summary.Failing {
		b.WriteString(render(StyleRed, "below target") + "\n")
	}

	if len(summary.Projects) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Projects"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(summary.Projects))
		for _, p := range summary.Projects {
			rows = append(rows, []string{p.ProjectName, interval.Format(p.Seconds)})
		}
		b.WriteString(RenderTable([]string{"PROJECT", "TIME"}, rows))
	}

	return b.String()
}

// FormatMonthStats renders month progress: days worked vs working days and
// the tracked hours against the month's target.
func FormatMonthStats(stats *service.MonthStats, trackedSeconds int64) string {
	var b strings.Builder

	b.WriteString(Header("Month"))
	b.WriteString("\n")

	targetSeconds := int64(stats.TargetHours) * 3600
	fmt.Fprintf(&b, "%s %d of %d working days\n", Bold("Days:"), stats.DaysPassed, stats.WeekdaysInMonth)
	fmt.Fprintf(&b, "%s %s of %dh target\n", Bold("Hours:"), interval.Format(trackedSeconds), stats.TargetHours)

	if targetSeconds > 0 {
		expected := float64(stats.DaysPassed) / float64(stats.WeekdaysInMonth)
		b.WriteString(ProgressBar(float64(trackedSeconds)/float64(targetSeconds), expected, 30))
		b.WriteString("\n")
	}
	return b.String()
}
