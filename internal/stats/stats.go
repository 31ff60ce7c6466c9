// Package stats aggregates a solved rota into the per-consultant
// fairness dashboard spec.md §4.5 describes.
package stats

import (
	"sort"
	"time"

	"github.com/blopes/rota-scheduler/internal/calendar"
	"github.com/blopes/rota-scheduler/internal/rota"
)

type counts struct {
	a, b, d, bh int
	weekendWeeks []time.Time
}

// Aggregate accumulates per-consultant totals across every day in the
// expanded rota and compares them against each consultant's
// WTE-proportional expected share. Output rows are sorted by name for
// reproducibility, per spec.md §5's ordering guarantee.
func Aggregate(days []rota.DayAssignment, bh rota.BankHolidays, consultants []rota.Consultant) []rota.ConsultantStats {
	byName := map[string]*counts{}
	wteOf := map[string]float64{}
	sumWTE := 0.0
	for _, c := range consultants {
		byName[c.Name] = &counts{}
		wteOf[c.Name] = c.WTE
		sumWTE += c.WTE
	}
	if sumWTE <= 0 {
		sumWTE = 1.0
	}

	weekendABHolder := map[time.Time]string{}    // week monday -> WeekendAB holder (A on Friday)
	weekendMixedHolder := map[time.Time]string{} // week monday -> WeekendMixed holder (D on Friday)

	for _, d := range days {
		isWeekday := d.Date.Weekday() >= time.Monday && d.Date.Weekday() <= time.Friday
		isBH := bh[d.Date]

		if c := byName[d.A]; c != nil {
			c.a++
			if isBH {
				c.bh++
			}
		}
		if c := byName[d.B]; c != nil {
			c.b++
			if isBH {
				c.bh++
			}
		}
		if d.D != "" && isWeekday {
			if c := byName[d.D]; c != nil {
				c.d++
				if isBH {
					c.bh++
				}
			}
		}

		if d.Date.Weekday() == time.Friday {
			week := calendar.WeekMonday(d.Date)
			weekendABHolder[week] = d.A
			weekendMixedHolder[week] = d.D
		}
	}

	for week, holder := range weekendABHolder {
		recordWeekend(byName, holder, week)
	}
	for week, holder := range weekendMixedHolder {
		recordWeekend(byName, holder, week)
	}

	for _, c := range byName {
		sort.Slice(c.weekendWeeks, func(i, j int) bool { return c.weekendWeeks[i].Before(c.weekendWeeks[j]) })
	}

	totalAll, bhAll := 0, 0
	for _, c := range byName {
		totalAll += c.a + c.b + c.d
		bhAll += c.bh
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]rota.ConsultantStats, 0, len(names))
	for _, name := range names {
		c := byName[name]
		wte := wteOf[name]
		total := c.a + c.b + c.d
		expectedTotal := float64(totalAll) * wte / sumWTE
		expectedBH := float64(bhAll) * wte / sumWTE

		out = append(out, rota.ConsultantStats{
			Name:                    name,
			WTE:                     wte,
			A:                       c.a,
			B:                       c.b,
			D:                       c.d,
			Total:                   total,
			ExpectedTotal:           expectedTotal,
			DeltaTotal:              float64(total) - expectedTotal,
			BH:                      c.bh,
			ExpectedBH:              expectedBH,
			DeltaBH:                 float64(c.bh) - expectedBH,
			WeekendBlocks:           len(c.weekendWeeks),
			ConsecutiveWeekendPairs: consecutivePairs(c.weekendWeeks),
		})
	}

	return out
}

func recordWeekend(byName map[string]*counts, holder string, week time.Time) {
	if holder == "" {
		return
	}
	c, ok := byName[holder]
	if !ok {
		return
	}
	c.weekendWeeks = append(c.weekendWeeks, week)
}

func consecutivePairs(weeks []time.Time) int {
	pairs := 0
	for i := 0; i < len(weeks)-1; i++ {
		if weeks[i+1].Sub(weeks[i]) == 7*24*time.Hour {
			pairs++
		}
	}
	return pairs
}
