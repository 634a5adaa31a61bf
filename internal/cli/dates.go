package cli

import (
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// parseDate accepts natural language ("yesterday", "last monday") as well
// as plain dates, resolving into the past relative to now.
func parseDate(words []string) (time.Time, error) {
	text := strings.TrimSpace(strings.Join(words, " "))
	if text == "" {
		return time.Now(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", text, time.Local); err == nil {
		return t, nil
	}
	return naturaldate.Parse(text, time.Now(), naturaldate.WithDirection(naturaldate.Past))
}
