package formatter

import (
	"fmt"
	"strings"
)

// ProgressBar renders a fixed-width bar such as "████████░░░░ 67%", colored
// against the target fraction. Fractions above 1 fill the bar completely.
func ProgressBar(fraction, target float64, width int) string {
	if width <= 0 {
		width = 20
	}
	clamped := fraction
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	filled := int(clamped * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	label := fmt.Sprintf("%3.0f%%", fraction*100)

	return render(PercentStyle(fraction, target), bar) + " " + label
}
