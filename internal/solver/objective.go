package solver

import (
	"math"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/blopes/rota-scheduler/internal/calendar"
	"github.com/blopes/rota-scheduler/internal/rota"
)

// addFairnessObjective builds the WTE-weighted fairness objective from
// spec.md §4.2: minimize Σ dev_T + 3·Σ dev_B + 2·Σ dev_W, where each
// dev_* is the fixed-point absolute deviation of a consultant's actual
// load from their WTE-proportional expected share.
//
// mip has no CP-SAT-style AddAbsEquality, so each |actual - expected|
// is linearized the standard MIP way: a non-negative variable bounded
// below by both (actual-expected) and (expected-actual), which the
// minimizing objective pins to the true absolute value since dev only
// ever appears with a positive objective coefficient.
func addFairnessObjective(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant, bh rota.BankHolidays) error {
	bhCountByBlock := make(map[time.Time]map[rota.BlockKind]int, len(weeks))
	totalWeight, totalBH := 0, 0
	for _, week := range weeks {
		bhCountByBlock[week] = map[rota.BlockKind]int{}
		for _, kind := range rota.BlockKinds {
			totalWeight += kind.Weight()
			count := 0
			for _, d := range calendar.BlockDays(week, kind) {
				if bh[d] {
					count++
				}
			}
			bhCountByBlock[week][kind] = count
			totalBH += count
		}
	}
	totalWeekendUnits := 2 * len(weeks)

	sumWTE := 0.0
	for _, c := range consultants {
		sumWTE += c.WTE
	}
	if sumWTE <= 0 {
		sumWTE = 1.0
	}

	for _, c := range consultants {
		totalDuty := m.NewInt(0, devUpperBound)
		bhDuty := m.NewInt(0, devUpperBound)
		weekendBlocks := m.NewInt(0, devUpperBound)

		totalCon := m.NewConstraint(mip.Equal, 0.0)
		totalCon.NewTerm(1.0, totalDuty)
		bhCon := m.NewConstraint(mip.Equal, 0.0)
		bhCon.NewTerm(1.0, bhDuty)
		weekendCon := m.NewConstraint(mip.Equal, 0.0)
		weekendCon.NewTerm(1.0, weekendBlocks)

		for _, week := range weeks {
			for _, kind := range rota.BlockKinds {
				x := vars.x[week][kind][c.Name]
				totalCon.NewTerm(-float64(kind.Weight()), x)
				if count := bhCountByBlock[week][kind]; count > 0 {
					bhCon.NewTerm(-float64(count), x)
				}
			}
			weekendCon.NewTerm(-1.0, vars.x[week][rota.WeekendAB][c.Name])
			weekendCon.NewTerm(-1.0, vars.x[week][rota.WeekendMixed][c.Name])
		}

		vars.totalDuty[c.Name] = totalDuty
		vars.bhDuty[c.Name] = bhDuty
		vars.weekendBlocks[c.Name] = weekendBlocks

		expectedTotal := roundFixedPoint(float64(totalWeight) * c.WTE / sumWTE)
		expectedBH := roundFixedPoint(float64(totalBH) * c.WTE / sumWTE)
		expectedWeekend := roundFixedPoint(float64(totalWeekendUnits) * c.WTE / sumWTE)

		devTotal := addAbsDeviation(m, totalDuty, expectedTotal)
		devBH := addAbsDeviation(m, bhDuty, expectedBH)
		devWeekend := addAbsDeviation(m, weekendBlocks, expectedWeekend)

		vars.devTotal[c.Name] = devTotal
		vars.devBH[c.Name] = devBH
		vars.devWeekend[c.Name] = devWeekend

		m.Objective().NewTerm(1.0, devTotal)
		m.Objective().NewTerm(3.0, devBH)
		m.Objective().NewTerm(2.0, devWeekend)
	}

	return nil
}

// addAbsDeviation introduces dev = |actual*scale - expected| via two
// inequality constraints and returns dev.
func addAbsDeviation(m *mip.Model, actual mip.Int, expected int64) mip.Int {
	dev := m.NewInt(0, devUpperBound)

	// dev >= actual*scale - expected
	upper := m.NewConstraint(mip.GreaterThanOrEqual, float64(-expected))
	upper.NewTerm(1.0, dev)
	upper.NewTerm(-float64(scale), actual)

	// dev >= expected - actual*scale
	lower := m.NewConstraint(mip.GreaterThanOrEqual, float64(expected))
	lower.NewTerm(1.0, dev)
	lower.NewTerm(float64(scale), actual)

	return dev
}

func roundFixedPoint(x float64) int64 {
	return int64(math.Round(x * scale))
}
