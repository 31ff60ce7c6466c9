package leavestore

import (
	"sort"
	"sync"
	"time"

	"github.com/blopes/rota-scheduler/internal/rota"
)

// LeaveRow is one row of the direct-workbook admin view, identified by
// its ambient spreadsheet row number rather than a generated ID.
type LeaveRow struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	LeaveType LeaveType
	Approved  bool
}

// RowStore models spec.md §9's "ambient-row-number identity": rows are
// addressed by a sparse row index, and deleting a row clears its slot
// rather than shifting every later row up. A deleted row keeps its key
// (tombstoned, value nil) so no other row is renumbered underneath a
// concurrent editor; the cleared slot is handed out again by
// NextEmptyRow and Append.
type RowStore struct {
	mu   sync.Mutex
	rows map[int]*LeaveRow
	next int
}

// NewRowStore returns an empty store. next starts at 2, mirroring the
// 1-indexed workbook convention where row 1 is the header.
func NewRowStore() *RowStore {
	return &RowStore{rows: map[int]*LeaveRow{}, next: 2}
}

// NextEmptyRow returns the next unallocated row index without claiming
// it, mirroring next_empty_row: it scans forward from the lowest
// unused index rather than always appending at the end, so a tombstoned
// row in the middle of the sheet is reused before growing the sheet.
func (s *RowStore) NextEmptyRow() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextEmptyRowLocked()
}

func (s *RowStore) nextEmptyRowLocked() int {
	for row := 2; row < s.next; row++ {
		if r, allocated := s.rows[row]; !allocated || r == nil {
			return row
		}
	}
	return s.next
}

// Set writes or overwrites the row at index. A previously-tombstoned
// row can be reoccupied this way.
func (s *RowStore) Set(row int, r *LeaveRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[row] = r
	if row >= s.next {
		s.next = row + 1
	}
}

// Append writes r to the next available row (reusing a tombstoned slot
// if one exists) and returns the row index used.
func (s *RowStore) Append(r *LeaveRow) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.nextEmptyRowLocked()
	s.rows[row] = r
	if row >= s.next {
		s.next = row + 1
	}
	return row
}

// Delete clears the row's cells but keeps its key allocated, so no
// other row's number changes. The cleared row can later be filled again
// by Append or Set.
func (s *RowStore) Delete(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, allocated := s.rows[row]; allocated {
		s.rows[row] = nil
	}
}

// Get returns the row at index, or nil if it is unallocated or
// tombstoned.
func (s *RowStore) Get(row int) *LeaveRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[row]
}

// Rows returns every live (non-tombstoned) row keyed by its row index.
// The result is a map and has no iteration order; sortedRowIndices
// gives the rows in row-index order.
func (s *RowStore) Rows() map[int]*LeaveRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]*LeaveRow, len(s.rows))
	for row, r := range s.rows {
		if r != nil {
			out[row] = r
		}
	}
	return out
}

// ToLeaveSet flattens the store's live rows into the per-consultant day
// set the Block Model consumes, identical in meaning to
// requeststore.ToLeaveSet.
func (s *RowStore) ToLeaveSet() rota.LeaveSet {
	set := rota.LeaveSet{}
	for _, r := range s.Rows() {
		if !r.Approved {
			continue
		}
		if set[r.Name] == nil {
			set[r.Name] = map[time.Time]bool{}
		}
		for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
			set[r.Name][d] = true
		}
	}
	return set
}

// sortedRowIndices is a small helper kept for callers that need a
// deterministic row ordering without also needing the row values.
func sortedRowIndices(rows map[int]*LeaveRow) []int {
	idx := make([]int, 0, len(rows))
	for row := range rows {
		idx = append(idx, row)
	}
	sort.Ints(idx)
	return idx
}
