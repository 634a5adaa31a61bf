package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/interval"
	"github.com/alexanderramin/tally/internal/repository"
)

// FormatStatus renders the per-ticket totals of one day.
func FormatStatus(date time.Time, totals []repository.TicketTotal) string {
	var b strings.Builder

	b.WriteString(Header("Status " + date.Format("2006-01-02")))
	b.WriteString("\n")

	if len(totals) == 0 {
		b.WriteString(Dim("nothing tracked\n"))
		return b.String()
	}

	var sum int64
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{t.TicketID, t.ConnectorID, interval.Format(t.Seconds)})
		sum += t.Seconds
	}
	b.WriteString(RenderTable([]string{"TICKET", "CONNECTOR", "TIME"}, rows))

	fmt.Fprintf(&b, "\n%s %s\n", Bold("Total:"), interval.Format(sum))
	return b.String()
}

// FormatFrequent renders the most recorded tickets.
func FormatFrequent(frequencies []repository.TicketFrequency) string {
	var b strings.Builder

	b.WriteString(Header("Frequent tickets"))
	b.WriteString("\n")

	if len(frequencies) == 0 {
		b.WriteString(Dim("nothing tracked yet\n"))
		return b.String()
	}

	rows := make([][]string, 0, len(frequencies))
	for _, f := range frequencies {
		rows = append(rows, []string{f.TicketID, f.ConnectorID, strconv.Itoa(f.Slots)})
	}
	b.WriteString(RenderTable([]string{"TICKET", "CONNECTOR", "SLOTS"}, rows))
	return b.String()
}
