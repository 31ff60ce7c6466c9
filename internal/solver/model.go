// Package solver builds the weekly block-assignment model spec.md §4.2
// describes and drives it through a CP-SAT-style MIP backend.
//
// The decision variable x[w,k,c] ("in week w, block kind k is assigned
// to consultant c") and every hard constraint and the fairness
// objective are modeled with github.com/nextmv-io/sdk/mip, the same
// MIP-modeling shape the nextmv shift-scheduling template uses: boolean
// decision variables, linear constraints built term-by-term, and a
// minimized linear objective handed to a HiGHS-backed solver.
package solver

import (
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/blopes/rota-scheduler/internal/calendar"
	"github.com/blopes/rota-scheduler/internal/rota"
)

// scale is the fixed-point multiplier S from spec.md §4.2. All fairness
// comparisons happen in integer units of 1/scale to avoid floating
// point in the objective.
const scale = 1000

// devUpperBound is a safe upper bound on any deviation variable; it
// only needs to exceed the largest value the linearization could ever
// produce for a cycle of realistic length.
const devUpperBound = 10_000_000

// variables indexes every decision and auxiliary variable the model
// creates, keyed the way the spec keys them, so the solve step can both
// build constraints and, later, read back values by the same keys.
type variables struct {
	x             map[time.Time]map[rota.BlockKind]map[string]mip.Bool
	totalDuty     map[string]mip.Int
	bhDuty        map[string]mip.Int
	weekendBlocks map[string]mip.Int
	devTotal      map[string]mip.Int
	devBH         map[string]mip.Int
	devWeekend    map[string]mip.Int
}

// buildModel assembles the MIP model for one cycle. weeks must already
// be the cycle's week-anchor Mondays (calendar.Weeks' output);
// consultants must already be filtered to active members.
func buildModel(
	weeks []time.Time,
	consultants []rota.Consultant,
	leave rota.LeaveSet,
	bh rota.BankHolidays,
	cfg rota.SolverConfig,
) (*mip.Model, *variables, error) {
	m := mip.NewModel()
	m.Objective().SetMinimize()

	vars := &variables{
		x:             map[time.Time]map[rota.BlockKind]map[string]mip.Bool{},
		totalDuty:     map[string]mip.Int{},
		bhDuty:        map[string]mip.Int{},
		weekendBlocks: map[string]mip.Int{},
		devTotal:      map[string]mip.Int{},
		devBH:         map[string]mip.Int{},
		devWeekend:    map[string]mip.Int{},
	}

	for _, week := range weeks {
		vars.x[week] = map[rota.BlockKind]map[string]mip.Bool{}
		for _, kind := range rota.BlockKinds {
			vars.x[week][kind] = map[string]mip.Bool{}
			for _, c := range consultants {
				vars.x[week][kind][c.Name] = m.NewBool()
			}
		}
	}

	addCoverageConstraints(m, vars, weeks)
	addEligibilityConstraints(m, vars, weeks, consultants)
	addLeaveConstraints(m, vars, weeks, consultants, leave)
	addOneBlockPerWeekConstraints(m, vars, weeks, consultants)
	if cfg.HardNoConsecutiveWeekends {
		addNoConsecutiveWeekendsConstraints(m, vars, weeks, consultants)
	}
	if cfg.HardWeekGap {
		addWeekGapConstraints(m, vars, weeks, consultants)
	}
	addCardiacXORConstraints(m, vars, weeks, consultants)

	if err := addFairnessObjective(m, vars, weeks, consultants, bh); err != nil {
		return nil, nil, err
	}

	return m, vars, nil
}

// addCoverageConstraints enforces spec.md §4.2 rule 1: exactly one
// assignee per (week, kind).
func addCoverageConstraints(m *mip.Model, vars *variables, weeks []time.Time) {
	for _, week := range weeks {
		for _, kind := range rota.BlockKinds {
			con := m.NewConstraint(mip.Equal, 1.0)
			for _, x := range vars.x[week][kind] {
				con.NewTerm(1.0, x)
			}
		}
	}
}

// addEligibilityConstraints enforces rule 2. WeekendMixed is bound by
// both the eligible_a and eligible_d rules, which is the conjunction
// spec.md §4.2 and the Open Question in §9 call out explicitly: a
// consultant who is A-eligible but not D-eligible is implicitly barred
// from WeekendMixed by the second rule alone. We keep the conjunction
// exactly as stated rather than special-casing it.
func addEligibilityConstraints(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant) {
	aKinds := map[rota.BlockKind]bool{rota.AB1: true, rota.AB2: true, rota.WeekendAB: true, rota.WeekendMixed: true}
	dKinds := map[rota.BlockKind]bool{rota.DMonThu: true, rota.WeekendMixed: true}

	for _, week := range weeks {
		for _, c := range consultants {
			for _, kind := range rota.BlockKinds {
				forbidden := (aKinds[kind] && !c.EligibleA) || (dKinds[kind] && !c.EligibleD)
				if forbidden {
					con := m.NewConstraint(mip.Equal, 0.0)
					con.NewTerm(1.0, vars.x[week][kind][c.Name])
				}
			}
		}
	}
}

// addLeaveConstraints enforces rule 3: a block may not be held by a
// consultant if any of its days fall in that consultant's leave set.
func addLeaveConstraints(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant, leave rota.LeaveSet) {
	for _, week := range weeks {
		for _, kind := range rota.BlockKinds {
			days := calendar.BlockDays(week, kind)
			for _, c := range consultants {
				onLeave := false
				for _, d := range days {
					if leave.On(c.Name, d) {
						onLeave = true
						break
					}
				}
				if onLeave {
					con := m.NewConstraint(mip.Equal, 0.0)
					con.NewTerm(1.0, vars.x[week][kind][c.Name])
				}
			}
		}
	}
}

// addOneBlockPerWeekConstraints enforces rule 4.
func addOneBlockPerWeekConstraints(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant) {
	for _, week := range weeks {
		for _, c := range consultants {
			con := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, kind := range rota.BlockKinds {
				con.NewTerm(1.0, vars.x[week][kind][c.Name])
			}
		}
	}
}

func weekendVars(vars *variables, week time.Time, name string) []mip.Bool {
	return []mip.Bool{vars.x[week][rota.WeekendAB][name], vars.x[week][rota.WeekendMixed][name]}
}

// addNoConsecutiveWeekendsConstraints enforces rule 5 when the hard
// toggle is on: no consultant holds a weekend block in two adjacent
// weeks.
func addNoConsecutiveWeekendsConstraints(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant) {
	for i := 0; i < len(weeks)-1; i++ {
		this, next := weeks[i], weeks[i+1]
		for _, c := range consultants {
			con := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, v := range weekendVars(vars, this, c.Name) {
				con.NewTerm(1.0, v)
			}
			for _, v := range weekendVars(vars, next, c.Name) {
				con.NewTerm(1.0, v)
			}
		}
	}
}

// addWeekGapConstraints enforces rule 6 when the hard toggle is on: a
// consultant never holds any block in two adjacent weeks.
func addWeekGapConstraints(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant) {
	for i := 0; i < len(weeks)-1; i++ {
		this, next := weeks[i], weeks[i+1]
		for _, c := range consultants {
			con := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, kind := range rota.BlockKinds {
				con.NewTerm(1.0, vars.x[this][kind][c.Name])
				con.NewTerm(1.0, vars.x[next][kind][c.Name])
			}
		}
	}
}

// addCardiacXORConstraints enforces rule 7: for every weekday Mon-Fri,
// exactly one of the A-role and D-role assignees is cardiac.
func addCardiacXORConstraints(m *mip.Model, vars *variables, weeks []time.Time, consultants []rota.Consultant) {
	// weekday 0=Mon .. 4=Fri
	aKindFor := func(weekday int) rota.BlockKind {
		switch weekday {
		case 0, 2:
			return rota.AB1
		case 1, 3:
			return rota.AB2
		default: // Friday
			return rota.WeekendAB
		}
	}
	dKindFor := func(weekday int) rota.BlockKind {
		if weekday <= 3 {
			return rota.DMonThu
		}
		return rota.WeekendMixed
	}

	for _, week := range weeks {
		for weekday := 0; weekday <= 4; weekday++ {
			con := m.NewConstraint(mip.Equal, 1.0)
			aKind, dKind := aKindFor(weekday), dKindFor(weekday)
			for _, c := range consultants {
				if !c.Cardiac {
					continue
				}
				con.NewTerm(1.0, vars.x[week][aKind][c.Name])
				con.NewTerm(1.0, vars.x[week][dKind][c.Name])
			}
		}
	}
}
