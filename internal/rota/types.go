// Package rota holds the domain types shared by the calendar, solver,
// expansion, and statistics packages: consultants, leave, bank
// holidays, the weekly block model, and the produced day-by-day rota.
package rota

import "time"

// BlockKind names one of the five weekly duty blocks the solver
// assigns. The zero value is not a valid kind.
type BlockKind string

const (
	AB1          BlockKind = "AB1"
	AB2          BlockKind = "AB2"
	DMonThu      BlockKind = "DMonThu"
	WeekendAB    BlockKind = "WeekendAB"
	WeekendMixed BlockKind = "WeekendMixed"
)

// BlockKinds lists all five kinds in a fixed order, used everywhere the
// model needs to range over them deterministically.
var BlockKinds = []BlockKind{AB1, AB2, DMonThu, WeekendAB, WeekendMixed}

// Weight is the duty weight wgt(k) from the fairness objective.
func (k BlockKind) Weight() int {
	if k == WeekendMixed {
		return 3
	}
	return 4
}

// Consultant is a staff member eligible for one or more duty roles.
// Only active consultants participate in a solve.
type Consultant struct {
	Name       string
	Cardiac    bool
	WTE        float64
	EligibleA  bool
	EligibleD  bool
	Active     bool
}

// Cycle is the inclusive date window being scheduled, plus the
// pre-cycle role-A name that seeds role B on the first day.
type Cycle struct {
	Start      time.Time
	End        time.Time
	PreCycleA  string
}

// LeaveSet is a per-consultant set of blocked calendar days, flattened
// from approved leave intervals. Only approved intervals ever reach
// this set — rejection of unapproved or malformed intervals happens
// upstream, at the leave-store boundary.
type LeaveSet map[string]map[time.Time]bool

// On reports whether the named consultant is blocked on day d.
func (l LeaveSet) On(name string, d time.Time) bool {
	days, ok := l[name]
	if !ok {
		return false
	}
	return days[d]
}

// BankHolidays is a simple set of calendar days.
type BankHolidays map[time.Time]bool

// Block is one (week, kind) assignment. Assignee is empty until the
// solver succeeds, and stays empty on an infeasible or unknown solve.
type Block struct {
	WeekMonday time.Time
	Kind       BlockKind
	Assignee   string
}

// SolveStatus is the solver's terminal status.
type SolveStatus string

const (
	StatusOptimal     SolveStatus = "OPTIMAL"
	StatusFeasible    SolveStatus = "FEASIBLE"
	StatusInfeasible  SolveStatus = "INFEASIBLE"
	StatusUnknown     SolveStatus = "UNKNOWN"
)

// SolverConfig carries the tunables spec.md §4.3/§6 names.
type SolverConfig struct {
	TimeLimit                 time.Duration
	Workers                   int
	HardNoConsecutiveWeekends bool
	HardWeekGap               bool
}

// DefaultSolverConfig matches spec.md §6's defaults: 60s, 8 workers,
// both hard toggles on.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		TimeLimit:                 60 * time.Second,
		Workers:                   8,
		HardNoConsecutiveWeekends: true,
		HardWeekGap:               true,
	}
}

// SolveResult is what the Solver Driver returns: status, objective (if
// feasible), and the block assignment keyed by (week Monday, kind).
type SolveResult struct {
	Status      SolveStatus
	Objective   *int64
	Assignments map[time.Time]map[BlockKind]string
}

// AssigneeOf returns the consultant assigned to (week, kind), or "" if
// the solve was infeasible, unknown, or that week has no entry.
func (r SolveResult) AssigneeOf(week time.Time, kind BlockKind) string {
	if r.Assignments == nil {
		return ""
	}
	byKind, ok := r.Assignments[week]
	if !ok {
		return ""
	}
	return byKind[kind]
}

// DayAssignment is a single day's rota row with its diagnostic flags.
type DayAssignment struct {
	Date    time.Time
	Weekday string // three-letter abbreviation, e.g. "Mon"
	A       string
	B       string
	D       string
	Flags   []string
}

// FlagsString renders Flags as the comma-separated string spec.md §4.4
// specifies.
func (d DayAssignment) FlagsString() string {
	if len(d.Flags) == 0 {
		return ""
	}
	out := d.Flags[0]
	for _, f := range d.Flags[1:] {
		out += "," + f
	}
	return out
}

// ConsultantStats is one row of the per-consultant dashboard (§4.5,
// §6 Produced).
type ConsultantStats struct {
	Name                   string
	WTE                    float64
	A, B, D                int
	Total                  int
	ExpectedTotal          float64
	DeltaTotal             float64
	BH                     int
	ExpectedBH             float64
	DeltaBH                float64
	WeekendBlocks          int
	ConsecutiveWeekendPairs int
}
