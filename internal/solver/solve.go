package solver

import (
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/blopes/rota-scheduler/internal/calendar"
	"github.com/blopes/rota-scheduler/internal/rota"
)

// Solve runs the Solver Driver (spec.md §4.3): it builds the block
// model over the cycle's week anchors, hands it to a HiGHS-backed MIP
// solver with the configured wall-clock limit, and translates the
// result into the vocabulary spec.md §6 names.
//
// cfg.Workers is not used here: it is not passed to the HiGHS backend
// this repo links against, which has no CP-SAT-style parallel-worker
// knob, and the returned SolveResult does not carry it — see DESIGN.md.
//
// consultants must already be filtered to active members; callers
// should validate the cycle and roster (rota.ValidateCycle,
// rota.ActiveConsultants) before calling Solve.
func Solve(cycle rota.Cycle, consultants []rota.Consultant, leave rota.LeaveSet, bh rota.BankHolidays, cfg rota.SolverConfig) (rota.SolveResult, error) {
	weeks := calendar.Weeks(cycle.Start, cycle.End)

	m, vars, err := buildModel(weeks, consultants, leave, bh, cfg)
	if err != nil {
		return rota.SolveResult{}, err
	}

	mipSolver, err := mip.NewSolver(mip.Highs, m)
	if err != nil {
		return rota.SolveResult{}, err
	}

	options := mip.NewSolveOptions()
	if err := options.SetMaximumDuration(cfg.TimeLimit); err != nil {
		return rota.SolveResult{}, err
	}

	solution, err := mipSolver.Solve(options)
	if err != nil {
		return rota.SolveResult{}, err
	}

	return translate(solution, vars, weeks, consultants), nil
}

func translate(solution mip.Solution, vars *variables, weeks []time.Time, consultants []rota.Consultant) rota.SolveResult {
	if solution == nil {
		return rota.SolveResult{Status: rota.StatusUnknown}
	}
	if !solution.IsOptimal() && !solution.IsSubOptimal() {
		return rota.SolveResult{Status: rota.StatusInfeasible}
	}

	status := rota.StatusFeasible
	if solution.IsOptimal() {
		status = rota.StatusOptimal
	}

	objective := int64(solution.ObjectiveValue())

	assignments := make(map[time.Time]map[rota.BlockKind]string, len(weeks))
	for _, week := range weeks {
		assignments[week] = map[rota.BlockKind]string{}
		for _, kind := range rota.BlockKinds {
			for _, c := range consultants {
				if solution.Value(vars.x[week][kind][c.Name]) >= 0.9 {
					assignments[week][kind] = c.Name
					break
				}
			}
		}
	}

	return rota.SolveResult{
		Status:      status,
		Objective:   &objective,
		Assignments: assignments,
	}
}
