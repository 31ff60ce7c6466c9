package solver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/rota"
	"github.com/blopes/rota-scheduler/internal/solver"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func fourConsultants() []rota.Consultant {
	return []rota.Consultant{
		{Name: "C1", Cardiac: true, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
		{Name: "C2", Cardiac: true, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
		{Name: "C3", Cardiac: false, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
		{Name: "C4", Cardiac: false, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
	}
}

// S1: minimal feasible scenario from spec.md §8.
func TestSolveMinimalFeasible(t *testing.T) {
	cycle := rota.Cycle{
		Start:     date("2025-01-06"),
		End:       date("2025-02-02"),
		PreCycleA: "Carryover",
	}
	consultants := fourConsultants()
	leave := rota.LeaveSet{}
	bh := rota.BankHolidays{}

	result, err := solver.Solve(cycle, consultants, leave, bh, rota.DefaultSolverConfig())
	require.NoError(t, err)
	assert.Contains(t, []rota.SolveStatus{rota.StatusOptimal, rota.StatusFeasible}, result.Status)

	total := 0
	for _, byKind := range result.Assignments {
		total += len(byKind)
	}
	assert.Equal(t, 4*5, total, "4 weeks x 5 blocks")
}

// S3: infeasible scenario — only one cardiac consultant can never cover
// every weekday's cardiac XOR requirement.
func TestSolveInfeasibleSingleCardiac(t *testing.T) {
	cycle := rota.Cycle{
		Start:     date("2025-01-06"),
		End:       date("2025-02-02"),
		PreCycleA: "Carryover",
	}
	consultants := []rota.Consultant{
		{Name: "C1", Cardiac: true, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
		{Name: "C2", Cardiac: false, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
		{Name: "C3", Cardiac: false, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
		{Name: "C4", Cardiac: false, WTE: 1.0, EligibleA: true, EligibleD: true, Active: true},
	}
	leave := rota.LeaveSet{}
	bh := rota.BankHolidays{}

	result, err := solver.Solve(cycle, consultants, leave, bh, rota.DefaultSolverConfig())
	require.NoError(t, err)
	assert.Equal(t, rota.StatusInfeasible, result.Status)
}

// S2: a consultant on leave never holds a block whose days intersect
// that leave window.
func TestSolveRespectsLeave(t *testing.T) {
	cycle := rota.Cycle{
		Start:     date("2025-01-06"),
		End:       date("2025-02-02"),
		PreCycleA: "Carryover",
	}
	consultants := fourConsultants()
	leave := rota.LeaveSet{
		"C1": {
			date("2025-01-13"): true,
			date("2025-01-14"): true,
			date("2025-01-15"): true,
			date("2025-01-16"): true,
			date("2025-01-17"): true,
			date("2025-01-18"): true,
			date("2025-01-19"): true,
		},
	}
	bh := rota.BankHolidays{}

	result, err := solver.Solve(cycle, consultants, leave, bh, rota.DefaultSolverConfig())
	require.NoError(t, err)
	require.Contains(t, []rota.SolveStatus{rota.StatusOptimal, rota.StatusFeasible}, result.Status)

	week := date("2025-01-13")
	for _, kind := range rota.BlockKinds {
		assert.NotEqual(t, "C1", result.AssigneeOf(week, kind))
	}
}
