package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blopes/rota-scheduler/internal/expansion"
	"github.com/blopes/rota-scheduler/internal/rota"
	"github.com/blopes/rota-scheduler/internal/solver"
	"github.com/blopes/rota-scheduler/internal/stats"
)

func runSolve(cmd *cobra.Command, args []string) error {
	doc, err := loadInputDocument(inputPath)
	if err != nil {
		return err
	}

	cycle, err := doc.toCycle()
	if err != nil {
		return err
	}
	if err := rota.ValidateCycle(cycle); err != nil {
		return err
	}

	consultants := doc.toConsultants()
	consultants, err = rota.ActiveConsultants(consultants)
	if err != nil {
		return err
	}

	leave, err := doc.toLeaveSet()
	if err != nil {
		return err
	}

	bh, err := doc.toBankHolidays()
	if err != nil {
		return err
	}

	cfg := rota.DefaultSolverConfig()
	cfg.TimeLimit = time.Duration(timeLimitSeconds) * time.Second
	cfg.HardWeekGap = !noHardWeekGap
	cfg.HardNoConsecutiveWeekends = !noHardNoConsecWeekends
	if doc.Workers > 0 {
		cfg.Workers = doc.Workers
	}

	result, err := solver.Solve(cycle, consultants, leave, bh, cfg)
	if err != nil {
		return err
	}

	days := expansion.Expand(cycle, result, leave, bh, consultants)
	dashboard := stats.Aggregate(days, bh, consultants)

	out := outputDocument{
		Status:      result.Status,
		Objective:   result.Objective,
		Days:        days,
		Consultants: dashboard,
	}
	if err := writeOutputDocument(outputPath, out); err != nil {
		return err
	}

	fmt.Printf("solve status: %s\n", result.Status)
	return nil
}
