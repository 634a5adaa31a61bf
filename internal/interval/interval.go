// Package interval converts between user-entered duration text and seconds.
// Every command that accepts or shows a duration goes through this codec.
package interval

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidInterval is wrapped by all parse failures.
var ErrInvalidInterval = errors.New("invalid interval")

var (
	minutesRe = regexp.MustCompile(`^:(\d+)$`)
	decimalRe = regexp.MustCompile(`^\d*\.\d+$`)
	unitsRe   = regexp.MustCompile(`^(\d+[smh])+$`)
	unitRe    = regexp.MustCompile(`(\d+)([smh])`)
)

var unitSeconds = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
}

// Parse converts duration text to seconds. The text is split on whitespace
// and the parsed tokens are summed. Each token is one of:
//
//   - ":NN" minutes; a single digit is right-padded (":5" means 50 minutes)
//   - a bare decimal number of hours (".25" is a quarter hour)
//   - concatenated "<int><unit>" groups with s/m/h units ("1h30m", "40s1m")
func Parse(text string) (int64, error) {
	var total int64
	for _, token := range strings.Fields(text) {
		secs, err := parseToken(token)
		if err != nil {
			return 0, err
		}
		total += secs
	}
	return total, nil
}

func parseToken(token string) (int64, error) {
	if strings.HasPrefix(token, ":") {
		m := minutesRe.FindStringSubmatch(token)
		if m == nil {
			return 0, fmt.Errorf("could not parse minutes %q: %w", token, ErrInvalidInterval)
		}
		digits := m[1]
		if len(digits) == 1 {
			digits += "0"
		}
		minutes, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse minutes %q: %w", token, ErrInvalidInterval)
		}
		return minutes * 60, nil
	}

	if decimalRe.MatchString(token) {
		hours, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, fmt.Errorf("unable to parse interval %q: %w", token, ErrInvalidInterval)
		}
		return int64(math.Round(hours * 3600)), nil
	}

	if unitsRe.MatchString(token) {
		var secs int64
		for _, group := range unitRe.FindAllStringSubmatch(token, -1) {
			n, err := strconv.ParseInt(group[1], 10, 64)
			if err != nil {
				return 0, fmt.Errorf("unable to parse interval %q: %w", token, ErrInvalidInterval)
			}
			secs += n * unitSeconds[group[2]]
		}
		return secs, nil
	}

	return 0, fmt.Errorf("unable to parse interval %q: %w", token, ErrInvalidInterval)
}

// Format renders seconds for humans: "SS secs" under a minute, "MM:SS m"
// under an hour, "H:MM:SS" beyond.
func Format(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%02d secs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%02d:%02d m", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
}

// FormatISO renders seconds as an ISO-8601 duration for machine consumers.
func FormatISO(seconds int64) string {
	if seconds == 0 {
		return "PT0S"
	}
	var b strings.Builder
	b.WriteString("PT")
	if h := seconds / 3600; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
	}
	if m := (seconds % 3600) / 60; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if s := seconds % 60; s > 0 {
		fmt.Fprintf(&b, "%dS", s)
	}
	return b.String()
}
