package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/interval"
)

// FormatSlot renders one slot with its state, tracked time and metadata.
func FormatSlot(s *domain.Slot) string {
	var b strings.Builder

	seconds := int64(s.Duration(time.Now()) / time.Second)
	fmt.Fprintf(&b, "%s  %s  %s\n", RunningIndicator(s.IsOpen()), Bold(s.TicketID), interval.Format(seconds))
	fmt.Fprintf(&b, "  %s %s\n", Dim("slot"), s.ID)

	if s.Comment != nil {
		fmt.Fprintf(&b, "  %s %s\n", Dim("comment"), *s.Comment)
	}
	if s.Category != nil {
		fmt.Fprintf(&b, "  %s %s\n", Dim("category"), *s.Category)
	}
	if s.IsSent() {
		fmt.Fprintf(&b, "  %s %s\n", Dim("sent as"), *s.RemoteEntryID)
	}

	return b.String()
}
