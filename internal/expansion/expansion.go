// Package expansion turns a solved weekly block assignment into the
// per-day A/B/D rota with diagnostic flags (spec.md §4.4).
package expansion

import (
	"time"

	"github.com/blopes/rota-scheduler/internal/calendar"
	"github.com/blopes/rota-scheduler/internal/rota"
)

// Expand produces one rota.DayAssignment per day in [cycle.Start,
// cycle.End], deterministically, from the solved block assignment.
// Expansion never fails: on an empty or partial result it leaves roles
// blank and lets the flags surface the problem.
func Expand(cycle rota.Cycle, result rota.SolveResult, leave rota.LeaveSet, bh rota.BankHolidays, consultants []rota.Consultant) []rota.DayAssignment {
	cardiac := make(map[string]bool, len(consultants))
	for _, c := range consultants {
		cardiac[c.Name] = c.Cardiac
	}

	days := calendar.Days(cycle.Start, cycle.End)
	out := make([]rota.DayAssignment, 0, len(days))

	prevA := ""
	for _, d := range days {
		week := calendar.WeekMonday(d)

		a := aRoleFor(result, week, d.Weekday())
		var b string
		if d.Equal(cycle.Start) {
			b = cycle.PreCycleA
		} else {
			b = prevA
		}
		role := dRoleFor(result, week, d.Weekday())

		day := rota.DayAssignment{
			Date:    d,
			Weekday: d.Format("Mon"),
			A:       a,
			B:       b,
			D:       role,
			Flags:   flagsFor(d, a, b, role, leave, bh, cardiac),
		}
		out = append(out, day)

		prevA = a
	}

	return out
}

func aRoleFor(result rota.SolveResult, week time.Time, weekday time.Weekday) string {
	switch weekday {
	case time.Monday, time.Wednesday:
		return result.AssigneeOf(week, rota.AB1)
	case time.Tuesday, time.Thursday:
		return result.AssigneeOf(week, rota.AB2)
	case time.Friday, time.Sunday:
		return result.AssigneeOf(week, rota.WeekendAB)
	case time.Saturday:
		return result.AssigneeOf(week, rota.WeekendMixed)
	}
	return ""
}

func dRoleFor(result rota.SolveResult, week time.Time, weekday time.Weekday) string {
	switch weekday {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return result.AssigneeOf(week, rota.DMonThu)
	case time.Friday:
		return result.AssigneeOf(week, rota.WeekendMixed)
	default: // Saturday, Sunday
		return ""
	}
}

func flagsFor(d time.Time, a, b, role string, leave rota.LeaveSet, bh rota.BankHolidays, cardiac map[string]bool) []string {
	var flags []string
	weekday := d.Weekday()
	isWeekday := weekday >= time.Monday && weekday <= time.Friday
	isWeekend := weekday == time.Saturday || weekday == time.Sunday

	if a == "" {
		flags = append(flags, "MISSING_A")
	}
	if b == "" {
		flags = append(flags, "MISSING_B")
	}
	if isWeekday && role == "" {
		flags = append(flags, "MISSING_D")
	}
	if isWeekend && role != "" {
		flags = append(flags, "D_SHOULD_BE_BLANK_WEEKEND")
	}
	if a != "" && leave.On(a, d) {
		flags = append(flags, "A_ON_LEAVE")
	}
	if b != "" && leave.On(b, d) {
		flags = append(flags, "B_ON_LEAVE")
	}
	if role != "" && leave.On(role, d) {
		flags = append(flags, "D_ON_LEAVE")
	}
	if isWeekday && (cardiac[a] == cardiac[role]) {
		flags = append(flags, "CARDIAC_XOR_BREACH")
	}
	if bh[d] {
		flags = append(flags, "BANK_HOLIDAY")
	}

	return flags
}
