package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"day", "week", "fortnight", "month"} {
		p, err := ParsePeriod(valid)
		require.NoError(t, err)
		assert.Equal(t, Period(valid), p)
	}

	_, err := ParsePeriod("quarter")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestPeriodBounds_Day(t *testing.T) {
	at := time.Date(2023, time.January, 4, 13, 45, 0, 0, time.UTC)

	start, end := PeriodBounds(PeriodDay, at)

	assert.Equal(t, date(2023, time.January, 4), start)
	assert.Equal(t, date(2023, time.January, 5), end)
}

func TestPeriodBounds_Week_MidWeek(t *testing.T) {
	// 2023-01-04 is a Wednesday.
	start, end := PeriodBounds(PeriodWeek, date(2023, time.January, 4))

	assert.Equal(t, date(2023, time.January, 2), start)
	assert.Equal(t, date(2023, time.January, 9), end)
}

func TestPeriodBounds_Week_Sunday(t *testing.T) {
	// A Sunday belongs to the week that started six days earlier.
	start, end := PeriodBounds(PeriodWeek, date(2023, time.January, 8))

	assert.Equal(t, date(2023, time.January, 2), start)
	assert.Equal(t, date(2023, time.January, 9), end)
}

func TestPeriodBounds_Week_Monday(t *testing.T) {
	start, end := PeriodBounds(PeriodWeek, date(2023, time.January, 2))

	assert.Equal(t, date(2023, time.January, 2), start)
	assert.Equal(t, date(2023, time.January, 9), end)
}

func TestPeriodBounds_Fortnight(t *testing.T) {
	start, end := PeriodBounds(PeriodFortnight, date(2023, time.January, 4))

	assert.Equal(t, date(2022, time.December, 26), start)
	assert.Equal(t, date(2023, time.January, 9), end)
}

func TestPeriodBounds_Month(t *testing.T) {
	start, end := PeriodBounds(PeriodMonth, date(2023, time.January, 17))

	assert.Equal(t, date(2023, time.January, 1), start)
	assert.Equal(t, date(2023, time.February, 1).Add(-time.Second), end)
}
