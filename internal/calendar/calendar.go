// Package calendar computes the dense day and week-anchor sequences a
// cycle spans, and the day layout of each weekly duty block.
package calendar

import (
	"time"

	"github.com/blopes/rota-scheduler/internal/rota"
)

// Days returns the dense, inclusive day sequence for [start, end].
func Days(start, end time.Time) []time.Time {
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Weeks returns the ordered week-anchor Mondays for [start, end]: the
// first anchor is the earliest Monday on or after start (start itself,
// if it is already a Monday); subsequent anchors step by 7 days and
// stop once they exceed end.
func Weeks(start, end time.Time) []time.Time {
	first := firstMondayOnOrAfter(start)

	var out []time.Time
	for w := first; !w.After(end); w = w.AddDate(0, 0, 7) {
		out = append(out, w)
	}
	return out
}

func firstMondayOnOrAfter(d time.Time) time.Time {
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// WeekMonday returns the Monday of the ISO week containing d.
func WeekMonday(d time.Time) time.Time {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}

// BlockDays returns the days occupied by a block kind anchored at the
// given week Monday. Days may fall outside the cycle window — that is
// expected; they still count for leave and bank-holiday collisions.
func BlockDays(monday time.Time, kind rota.BlockKind) []time.Time {
	offsets := blockOffsets(kind)
	out := make([]time.Time, len(offsets))
	for i, k := range offsets {
		out[i] = monday.AddDate(0, 0, k)
	}
	return out
}

func blockOffsets(kind rota.BlockKind) []int {
	switch kind {
	case rota.AB1:
		return []int{0, 1, 2, 3} // Mon Tue Wed Thu
	case rota.AB2:
		return []int{1, 2, 3, 4} // Tue Wed Thu Fri
	case rota.DMonThu:
		return []int{0, 1, 2, 3} // Mon Tue Wed Thu
	case rota.WeekendAB:
		return []int{4, 5, 6, 7} // Fri Sat Sun Mon(next)
	case rota.WeekendMixed:
		return []int{4, 5, 6} // Fri Sat Sun
	default:
		return nil
	}
}
