package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/calendar"
	"github.com/blopes/rota-scheduler/internal/rota"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeeksAnchorsOnMonday(t *testing.T) {
	// 2025-01-06 is already a Monday, so it must be the first anchor.
	start := date("2025-01-06")
	end := date("2025-02-02")

	weeks := calendar.Weeks(start, end)
	require.Len(t, weeks, 4)
	assert.Equal(t, start, weeks[0])
	for i, w := range weeks {
		assert.Equal(t, time.Monday, w.Weekday(), "week %d", i)
	}
	assert.Equal(t, date("2025-01-27"), weeks[3])
}

func TestWeeksStartsMidWeek(t *testing.T) {
	// 2025-03-05 is a Wednesday; the first anchor must be the following Monday.
	start := date("2025-03-05")
	end := date("2025-03-31")

	weeks := calendar.Weeks(start, end)
	require.NotEmpty(t, weeks)
	assert.Equal(t, date("2025-03-10"), weeks[0])
}

func TestDaysIsDenseInclusive(t *testing.T) {
	days := calendar.Days(date("2025-01-01"), date("2025-01-03"))
	require.Len(t, days, 3)
	assert.Equal(t, date("2025-01-01"), days[0])
	assert.Equal(t, date("2025-01-03"), days[2])
}

func TestBlockDaysWeekendABSpansIntoNextWeek(t *testing.T) {
	monday := date("2025-01-06")
	days := calendar.BlockDays(monday, rota.WeekendAB)
	require.Len(t, days, 4)
	assert.Equal(t, date("2025-01-10"), days[0]) // Fri
	assert.Equal(t, date("2025-01-13"), days[3]) // the following Monday
}

func TestWeekMonday(t *testing.T) {
	assert.Equal(t, date("2025-01-06"), calendar.WeekMonday(date("2025-01-06")))
	assert.Equal(t, date("2025-01-06"), calendar.WeekMonday(date("2025-01-12")))
	assert.Equal(t, date("2024-12-30"), calendar.WeekMonday(date("2025-01-01")))
}
