package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blopes/rota-scheduler/internal/expansion"
	"github.com/blopes/rota-scheduler/internal/rota"
	"github.com/blopes/rota-scheduler/internal/solver"
	"github.com/blopes/rota-scheduler/internal/stats"
)

type solveRequest struct {
	Start                     string `json:"start"`
	End                       string `json:"end"`
	PreCycleA                 string `json:"pre_cycle_a_name"`
	TimeLimitSeconds          int    `json:"time_limit_seconds"`
	HardWeekGap               *bool  `json:"hard_week_gap"`
	HardNoConsecutiveWeekends *bool  `json:"hard_no_consecutive_weekends"`
}

type solveResponse struct {
	Status      rota.SolveStatus       `json:"status"`
	Objective   *int64                 `json:"objective,omitempty"`
	Days        []rota.DayAssignment   `json:"days"`
	Consultants []rota.ConsultantStats `json:"consultants"`
}

// PostSolve runs one solve over the posted cycle window and roster,
// expands it to a day sequence, aggregates the dashboard, persists a
// solve_runs audit row, and returns all three — the same
// solve→expand→aggregate pipeline the CLI drives, exposed over HTTP.
func (h *Handler) PostSolve(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	var body solveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cycle, err := parseCycle(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultants, err := h.loadRoster()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	consultants, err = rota.ActiveConsultants(consultants)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leave, err := h.loadLeaveSet()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	bh, err := h.bankHolidays.LoadForYear(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cfg := rota.DefaultSolverConfig()
	if body.TimeLimitSeconds > 0 {
		cfg.TimeLimit = time.Duration(body.TimeLimitSeconds) * time.Second
	}
	if body.HardWeekGap != nil {
		cfg.HardWeekGap = *body.HardWeekGap
	}
	if body.HardNoConsecutiveWeekends != nil {
		cfg.HardNoConsecutiveWeekends = *body.HardNoConsecutiveWeekends
	}

	result, err := solver.Solve(cycle, consultants, leave, bh, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days := expansion.Expand(cycle, result, leave, bh, consultants)
	dashboard := stats.Aggregate(days, bh, consultants)

	h.recordSolveRun(cycle, result, cfg, days, dashboard)

	c.JSON(http.StatusOK, solveResponse{
		Status:      result.Status,
		Objective:   result.Objective,
		Days:        days,
		Consultants: dashboard,
	})
}

// GetRota returns the most recently persisted solve_runs row whose
// cycle falls in the requested year, in the same shape PostSolve
// returns.
func (h *Handler) GetRota(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	var (
		status         string
		objective      sql.NullInt64
		daysJSON       string
		consultantJSON string
	)
	row := h.db.QueryRow(`
		SELECT status, objective, days_json, consultants_json
		FROM solve_runs
		WHERE cycle_start LIKE ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, strconv.Itoa(year)+"-%")
	if err := row.Scan(&status, &objective, &daysJSON, &consultantJSON); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "no persisted solve for that year"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var days []rota.DayAssignment
	if err := json.Unmarshal([]byte(daysJSON), &days); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var dashboard []rota.ConsultantStats
	if err := json.Unmarshal([]byte(consultantJSON), &dashboard); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := solveResponse{
		Status:      rota.SolveStatus(status),
		Days:        days,
		Consultants: dashboard,
	}
	if objective.Valid {
		resp.Objective = &objective.Int64
	}
	c.JSON(http.StatusOK, resp)
}

func parseCycle(body solveRequest) (rota.Cycle, error) {
	start, err := time.Parse("2006-01-02", body.Start)
	if err != nil {
		return rota.Cycle{}, rota.NewInputShapeError("malformed cycle start date")
	}
	end, err := time.Parse("2006-01-02", body.End)
	if err != nil {
		return rota.Cycle{}, rota.NewInputShapeError("malformed cycle end date")
	}
	cycle := rota.Cycle{Start: start, End: end, PreCycleA: body.PreCycleA}
	if err := rota.ValidateCycle(cycle); err != nil {
		return rota.Cycle{}, err
	}
	return cycle, nil
}

func (h *Handler) recordSolveRun(cycle rota.Cycle, result rota.SolveResult, cfg rota.SolverConfig, days []rota.DayAssignment, dashboard []rota.ConsultantStats) {
	var objective sql.NullInt64
	if result.Objective != nil {
		objective = sql.NullInt64{Int64: *result.Objective, Valid: true}
	}

	daysJSON, err := json.Marshal(days)
	if err != nil {
		return
	}
	consultantJSON, err := json.Marshal(dashboard)
	if err != nil {
		return
	}

	h.db.Exec(`
		INSERT INTO solve_runs (cycle_start, cycle_end, status, objective, time_limit_seconds, hard_week_gap, hard_no_consec_weekends, days_json, consultants_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, cycle.Start.Format("2006-01-02"), cycle.End.Format("2006-01-02"), string(result.Status), objective,
		int(cfg.TimeLimit.Seconds()), cfg.HardWeekGap, cfg.HardNoConsecutiveWeekends, string(daysJSON), string(consultantJSON))
}
