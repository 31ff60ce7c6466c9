package expansion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/expansion"
	"github.com/blopes/rota-scheduler/internal/rota"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExpandBRoleLag(t *testing.T) {
	cycle := rota.Cycle{
		Start:     date("2025-03-03"), // Monday
		End:       date("2025-03-04"), // Tuesday
		PreCycleA: "Carryover",
	}

	week := date("2025-03-03")
	objective := int64(0)
	result := rota.SolveResult{
		Status:    rota.StatusOptimal,
		Objective: &objective,
		Assignments: map[time.Time]map[rota.BlockKind]string{
			week: {
				rota.AB1:     "Alice",
				rota.AB2:     "Bob",
				rota.DMonThu: "Carol",
			},
		},
	}

	consultants := []rota.Consultant{
		{Name: "Alice", Cardiac: true},
		{Name: "Bob", Cardiac: false},
		{Name: "Carol", Cardiac: false},
	}

	days := expansion.Expand(cycle, result, rota.LeaveSet{}, rota.BankHolidays{}, consultants)
	require.Len(t, days, 2)

	assert.Equal(t, "Carryover", days[0].B, "B(start) must be the pre-cycle carry-over name")
	assert.Equal(t, "Alice", days[0].A)
	assert.Equal(t, days[0].A, days[1].B, "B(d) must equal A(d-1) for every later day")
}

func TestExpandFlagsMissingRoles(t *testing.T) {
	cycle := rota.Cycle{
		Start:     date("2025-01-06"),
		End:       date("2025-01-06"),
		PreCycleA: "",
	}
	result := rota.SolveResult{Status: rota.StatusInfeasible}

	days := expansion.Expand(cycle, result, rota.LeaveSet{}, rota.BankHolidays{}, nil)
	require.Len(t, days, 1)
	flags := days[0].FlagsString()
	assert.Contains(t, flags, "MISSING_A")
	assert.Contains(t, flags, "MISSING_B")
	assert.Contains(t, flags, "MISSING_D")
}

func TestExpandWeekendDHasNoRole(t *testing.T) {
	cycle := rota.Cycle{
		Start:     date("2025-01-11"), // Saturday
		End:       date("2025-01-12"), // Sunday
		PreCycleA: "Carryover",
	}
	result := rota.SolveResult{Status: rota.StatusInfeasible}

	days := expansion.Expand(cycle, result, rota.LeaveSet{}, rota.BankHolidays{}, nil)
	require.Len(t, days, 2)
	for _, d := range days {
		assert.Empty(t, d.D)
		assert.NotContains(t, d.FlagsString(), "D_SHOULD_BE_BLANK_WEEKEND")
	}
}
