package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/rota"
	"github.com/blopes/rota-scheduler/internal/stats"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAggregateConservation(t *testing.T) {
	// Two weekday days and one weekend day: A+B on every day, D only on
	// the weekday. Total A+B+D must equal 3*weekdays + 2*weekend_days.
	consultants := []rota.Consultant{
		{Name: "Alice", WTE: 1.0},
		{Name: "Bob", WTE: 1.0},
		{Name: "Carol", WTE: 1.0},
	}
	days := []rota.DayAssignment{
		{Date: date("2025-01-06"), A: "Alice", B: "Carol", D: "Bob"}, // Monday
		{Date: date("2025-01-07"), A: "Bob", B: "Alice", D: "Carol"}, // Tuesday
		{Date: date("2025-01-11"), A: "Carol", B: "Bob"},             // Saturday, no D
	}

	rows := stats.Aggregate(days, rota.BankHolidays{}, consultants)
	require.Len(t, rows, 3)

	total := 0
	for _, r := range rows {
		total += r.A + r.B + r.D
	}
	assert.Equal(t, 3*2+2*1, total)
}

func TestAggregateSortedByName(t *testing.T) {
	consultants := []rota.Consultant{{Name: "Zara", WTE: 1.0}, {Name: "Amy", WTE: 1.0}}
	rows := stats.Aggregate(nil, rota.BankHolidays{}, consultants)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amy", rows[0].Name)
	assert.Equal(t, "Zara", rows[1].Name)
}

func TestAggregateConsecutiveWeekendPairs(t *testing.T) {
	consultants := []rota.Consultant{{Name: "Alice", WTE: 1.0}}
	days := []rota.DayAssignment{
		{Date: date("2025-01-10"), A: "Alice"}, // Friday, week 1
		{Date: date("2025-01-17"), A: "Alice"}, // Friday, week 2 (consecutive)
		{Date: date("2025-01-31"), A: "Alice"}, // Friday, week 4 (not consecutive with week 2)
	}
	rows := stats.Aggregate(days, rota.BankHolidays{}, consultants)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].WeekendBlocks)
	assert.Equal(t, 1, rows[0].ConsecutiveWeekendPairs)
}
