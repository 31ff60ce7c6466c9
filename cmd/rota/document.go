package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/blopes/rota-scheduler/internal/rota"
)

// inputDocument is the CLI's JSON stand-in for the workbook input:
// cycle window, roster, approved leave, and bank holidays, matching
// spec.md §6's Consumed shape field-for-field.
type inputDocument struct {
	CycleStart   string            `json:"cycle_start"`
	CycleEnd     string            `json:"cycle_end"`
	PreCycleA    string            `json:"pre_cycle_a_name"`
	Workers      int               `json:"worker_count"`
	Consultants  []consultantEntry `json:"consultants"`
	Leave        []leaveEntry      `json:"leave"`
	BankHolidays []string          `json:"bank_holidays"`
}

type consultantEntry struct {
	Name      string  `json:"name"`
	Cardiac   bool    `json:"cardiac"`
	WTE       float64 `json:"wte"`
	EligibleA bool    `json:"eligible_a"`
	EligibleD bool    `json:"eligible_d"`
	Active    bool    `json:"active"`
}

type leaveEntry struct {
	Name     string `json:"name"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Approved bool   `json:"approved"`
}

// outputDocument is the CLI's JSON stand-in for the workbook output:
// solve status/objective, the expanded day sequence, and the
// per-consultant dashboard. The per-week block assignment is not
// written out.
type outputDocument struct {
	Status      rota.SolveStatus       `json:"status"`
	Objective   *int64                 `json:"objective,omitempty"`
	Days        []rota.DayAssignment   `json:"days"`
	Consultants []rota.ConsultantStats `json:"consultants"`
}

func loadInputDocument(path string) (*inputDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rota.NewInputShapeError("failed to read input document: " + err.Error())
	}
	var doc inputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, rota.NewInputShapeError("failed to parse input document: " + err.Error())
	}
	return &doc, nil
}

func writeOutputDocument(path string, doc outputDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (d *inputDocument) toCycle() (rota.Cycle, error) {
	start, err := time.Parse("2006-01-02", d.CycleStart)
	if err != nil {
		return rota.Cycle{}, rota.NewInputShapeError("malformed cycle_start")
	}
	end, err := time.Parse("2006-01-02", d.CycleEnd)
	if err != nil {
		return rota.Cycle{}, rota.NewInputShapeError("malformed cycle_end")
	}
	return rota.Cycle{Start: start, End: end, PreCycleA: d.PreCycleA}, nil
}

func (d *inputDocument) toConsultants() []rota.Consultant {
	out := make([]rota.Consultant, 0, len(d.Consultants))
	for _, c := range d.Consultants {
		out = append(out, rota.Consultant{
			Name:      c.Name,
			Cardiac:   c.Cardiac,
			WTE:       c.WTE,
			EligibleA: c.EligibleA,
			EligibleD: c.EligibleD,
			Active:    c.Active,
		})
	}
	return out
}

func (d *inputDocument) toLeaveSet() (rota.LeaveSet, error) {
	set := rota.LeaveSet{}
	for _, l := range d.Leave {
		if !l.Approved {
			continue
		}
		start, err := time.Parse("2006-01-02", l.Start)
		if err != nil {
			return nil, rota.NewInputShapeError("malformed leave start date for " + l.Name)
		}
		end, err := time.Parse("2006-01-02", l.End)
		if err != nil {
			return nil, rota.NewInputShapeError("malformed leave end date for " + l.Name)
		}
		if set[l.Name] == nil {
			set[l.Name] = map[time.Time]bool{}
		}
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			set[l.Name][day] = true
		}
	}
	return set, nil
}

func (d *inputDocument) toBankHolidays() (rota.BankHolidays, error) {
	bh := rota.BankHolidays{}
	for _, s := range d.BankHolidays {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, rota.NewInputShapeError("malformed bank holiday date: " + s)
		}
		bh[day] = true
	}
	return bh, nil
}
