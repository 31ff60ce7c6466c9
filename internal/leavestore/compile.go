package leavestore

// CompiledRow is one row of the normalized Leave region produced by a
// compile step: wipe, then append sorted records, never merge.
type CompiledRow struct {
	Name      string
	StartDate string
	EndDate   string
	LeaveType LeaveType
	Approved  bool
}

// Compile reads every JSON request and produces the replace-in-place
// row set for the tabular Leave region, sorted by (start_date, name) —
// the same order load_requests uses before compiling into the
// workbook's Leave sheet.
func Compile(store *RequestStore) ([]CompiledRow, error) {
	requests, err := store.List()
	if err != nil {
		return nil, err
	}

	out := make([]CompiledRow, 0, len(requests))
	for _, r := range requests {
		out = append(out, CompiledRow{
			Name:      r.Name,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			LeaveType: r.LeaveType,
			Approved:  r.Approved,
		})
	}
	return out, nil
}

// CompileRows builds the same kind of row set, but from a RowStore
// snapshot rather than the JSON-per-request directory, for the
// direct-workbook admin path. Its rows come out in row-index order, not
// sorted by (start_date, name).
func CompileRows(store *RowStore) []CompiledRow {
	rows := store.Rows()
	idx := sortedRowIndices(rows)

	out := make([]CompiledRow, 0, len(idx))
	for _, i := range idx {
		r := rows[i]
		out = append(out, CompiledRow{
			Name:      r.Name,
			StartDate: r.StartDate.Format("2006-01-02"),
			EndDate:   r.EndDate.Format("2006-01-02"),
			LeaveType: r.LeaveType,
			Approved:  r.Approved,
		})
	}
	return out
}
