package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blopes/rota-scheduler/internal/rota"
)

type consultantPayload struct {
	Name      string  `json:"name"`
	WTE       float64 `json:"wte"`
	Cardiac   bool    `json:"cardiac"`
	EligibleA bool    `json:"eligible_a"`
	EligibleD bool    `json:"eligible_d"`
	Active    bool    `json:"active"`
}

// GetConsultants returns the full roster.
func (h *Handler) GetConsultants(c *gin.Context) {
	rows, err := h.db.Query(`SELECT name, wte, cardiac, eligible_a, eligible_d, active FROM consultants ORDER BY name`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	var out []consultantPayload
	for rows.Next() {
		var p consultantPayload
		if err := rows.Scan(&p.Name, &p.WTE, &p.Cardiac, &p.EligibleA, &p.EligibleD, &p.Active); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

// PutConsultants replaces the entire roster, matching the leave-request
// compile step's "replace-in-place, never merge" semantics from spec.md
// §9, applied here to the roster table.
func (h *Handler) PutConsultants(c *gin.Context) {
	var roster []consultantPayload
	if err := c.ShouldBindJSON(&roster); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM consultants`); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stmt, err := tx.Prepare(`
		INSERT INTO consultants (name, wte, cardiac, eligible_a, eligible_d, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer stmt.Close()

	for _, p := range roster {
		if _, err := stmt.Exec(p.Name, p.WTE, p.Cardiac, p.EligibleA, p.EligibleD, p.Active); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(roster)})
}

// loadRoster reads the roster table into rota.Consultant values for the
// solver, and is shared by the rota handlers.
func (h *Handler) loadRoster() ([]rota.Consultant, error) {
	rows, err := h.db.Query(`SELECT name, wte, cardiac, eligible_a, eligible_d, active FROM consultants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rota.Consultant
	for rows.Next() {
		var cons rota.Consultant
		if err := rows.Scan(&cons.Name, &cons.WTE, &cons.Cardiac, &cons.EligibleA, &cons.EligibleD, &cons.Active); err != nil {
			return nil, err
		}
		out = append(out, cons)
	}
	return out, nil
}
