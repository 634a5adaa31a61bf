package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/interval"
	"github.com/alexanderramin/tally/internal/service"
)

// FormatReview renders the review summary as a table plus a total line.
func FormatReview(summary *service.ReviewSummary) string {
	var b strings.Builder

	b.WriteString(Header("Review"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		title := row.Title
		if title == service.UnknownTitle {
			title = Dim(title)
		}
		rows = append(rows, []string{
			shortID(row.SlotID),
			row.TicketID,
			title,
			interval.Format(row.Seconds),
			row.Category,
			row.Comment,
		})
	}
	b.WriteString(RenderTable([]string{"SLOT", "TICKET", "TITLE", "TIME", "CATEGORY", "COMMENT"}, rows))

	fmt.Fprintf(&b, "\n%s %s\n", Bold("Total:"), interval.Format(summary.TotalSeconds))
	return b.String()
}

// FormatSendResult renders sent and failed entries after a send run.
func FormatSendResult(result *service.SendResult) string {
	var b strings.Builder

	if len(result.Sent) > 0 {
		b.WriteString(Header("Sent"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(result.Sent))
		for _, e := range result.Sent {
			rows = append(rows, []string{e.TicketID, interval.Format(e.Seconds), e.RemoteEntryID})
		}
		b.WriteString(RenderTable([]string{"TICKET", "TIME", "REMOTE ID"}, rows))
	}

	if len(result.Failed) > 0 {
		b.WriteString(Header("Failed"))
		b.WriteString("\n")
		for _, e := range result.Failed {
			fmt.Fprintf(&b, "%s %s: %v\n", render(StyleRed, "✗"), e.TicketID, e.Err)
		}
		b.WriteString(Dim("Failed slots stay in the backlog for the next send.\n"))
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
