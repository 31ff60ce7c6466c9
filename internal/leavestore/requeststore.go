// Package leavestore implements the two leave-interchange formats
// spec.md §6 and §9 describe, and normalizes both into the
// per-consultant day set the Block Model consumes.
package leavestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/blopes/rota-scheduler/internal/rota"
)

// LeaveType is the closed set of leave categories spec.md §6 names.
type LeaveType string

const (
	Annual LeaveType = "Annual"
	Study  LeaveType = "Study"
	NOC    LeaveType = "NOC"
)

func normalizeLeaveType(t string) LeaveType {
	switch t {
	case "annual", "Annual":
		return Annual
	case "study", "Study":
		return Study
	case "noc", "NOC", "Noc":
		return NOC
	default:
		return LeaveType(t)
	}
}

// Request is one leave request, stored as its own JSON file named
// "<request_id>.json".
type Request struct {
	RequestID string    `json:"request_id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	LeaveType LeaveType `json:"leave_type"`
	Approved  bool      `json:"approved"`
	Notes     string    `json:"notes"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// RequestStore manages the JSON-per-request directory, grounded on the
// original leave-request tool's upsert_request/delete_request/
// load_requests functions.
type RequestStore struct {
	dir string
}

// NewRequestStore creates the backing directory if it does not exist
// and returns a store rooted there.
func NewRequestStore(dir string) (*RequestStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create leave requests dir: %w", err)
	}
	return &RequestStore{dir: dir}, nil
}

func (s *RequestStore) path(requestID string) string {
	return filepath.Join(s.dir, requestID+".json")
}

// Create validates dates, assigns a UUID request ID, and writes the new
// request file. It returns a rota.LeaveValidation-tagged error when
// end < start, exactly as spec.md §7 requires, and never lets such a
// request reach the core.
func (s *RequestStore) Create(name, startDate, endDate string, leaveType LeaveType, approved bool, notes string) (*Request, error) {
	if err := validateDates(startDate, endDate); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, rota.NewLeaveValidationError("consultant name is required")
	}

	now := nowISO()
	req := &Request{
		RequestID: uuid.NewString(),
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		LeaveType: normalizeLeaveType(string(leaveType)),
		Approved:  approved,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.upsert(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update overwrites an existing request in place, re-validating dates.
func (s *RequestStore) Update(req *Request) error {
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return err
	}
	req.LeaveType = normalizeLeaveType(string(req.LeaveType))
	req.UpdatedAt = nowISO()
	return s.upsert(req)
}

// Delete removes the request file, if present. Deleting an unknown
// request ID is not an error.
func (s *RequestStore) Delete(requestID string) error {
	err := os.Remove(s.path(requestID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}

// Get loads a single request by ID.
func (s *RequestStore) Get(requestID string) (*Request, error) {
	data, err := os.ReadFile(s.path(requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to read leave request: %w", err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse leave request: %w", err)
	}
	return &req, nil
}

// List loads every request in the directory, sorted by (start_date,
// name) as the original load_requests does.
func (s *RequestStore) List() ([]*Request, error) {
	entries, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	sort.Strings(entries)

	var out []*Request
	for _, p := range entries {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}
		out = append(out, &req)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *RequestStore) upsert(req *Request) error {
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode leave request: %w", err)
	}
	if err := os.WriteFile(s.path(req.RequestID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write leave request: %w", err)
	}
	return nil
}

func validateDates(startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return rota.NewLeaveValidationError("invalid start date")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return rota.NewLeaveValidationError("invalid end date")
	}
	if end.Before(start) {
		return rota.NewLeaveValidationError("end date cannot be earlier than start date")
	}
	return nil
}

func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05") + "Z"
}

// ToLeaveSet flattens the approved requests into the per-consultant day
// set the Block Model consumes, per spec.md §6: only approved entries
// contribute, and the interval is inclusive of both endpoints.
func ToLeaveSet(requests []*Request) (rota.LeaveSet, error) {
	set := rota.LeaveSet{}
	for _, r := range requests {
		if !r.Approved {
			continue
		}
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date on request %s: %w", r.RequestID, err)
		}
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date on request %s: %w", r.RequestID, err)
		}
		if set[r.Name] == nil {
			set[r.Name] = map[time.Time]bool{}
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			set[r.Name][d] = true
		}
	}
	return set, nil
}
