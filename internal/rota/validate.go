package rota

// ValidateCycle enforces spec.md §7's InputShape/InputSemantics checks
// on the cycle window and carry-over name.
func ValidateCycle(c Cycle) error {
	if c.Start.IsZero() {
		return NewInputShapeError("missing cycle start date")
	}
	if c.End.IsZero() {
		return NewInputShapeError("missing cycle end date")
	}
	if c.PreCycleA == "" {
		return NewInputShapeError("missing pre-cycle role-A name")
	}
	if c.End.Before(c.Start) {
		return NewInputSemanticsError("cycle end date is before start date")
	}
	return nil
}

// ActiveConsultants filters a roster down to active members and fails
// InputSemantics if none remain.
func ActiveConsultants(roster []Consultant) ([]Consultant, error) {
	var active []Consultant
	for _, c := range roster {
		if c.Active {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return nil, NewInputSemanticsError("no active consultants found")
	}
	return active, nil
}
