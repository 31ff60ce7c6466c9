package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blopes/rota-scheduler/internal/leavestore"
	"github.com/blopes/rota-scheduler/internal/rota"
)

type leaveRequestPayload struct {
	Name      string               `json:"name"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	LeaveType leavestore.LeaveType `json:"leave_type"`
	Approved  bool                 `json:"approved"`
	Notes     string               `json:"notes"`
}

// GetLeave lists every leave request, sorted by (start_date, name).
func (h *Handler) GetLeave(c *gin.Context) {
	requests, err := h.leaveRequests.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// PostLeave creates a new leave request, rejecting LeaveValidation
// failures (end < start) at this boundary, per spec.md §7.
func (h *Handler) PostLeave(c *gin.Context) {
	var body leaveRequestPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.leaveRequests.Create(body.Name, body.StartDate, body.EndDate, body.LeaveType, body.Approved, body.Notes)
	if err != nil {
		if errors.Is(err, rota.ErrLeaveValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

// PutLeave updates an existing leave request in place.
func (h *Handler) PutLeave(c *gin.Context) {
	requestID := c.Param("request_id")

	var body leaveRequestPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.leaveRequests.Get(requestID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "leave request not found"})
		return
	}

	req.Name = body.Name
	req.StartDate = body.StartDate
	req.EndDate = body.EndDate
	req.LeaveType = body.LeaveType
	req.Approved = body.Approved
	req.Notes = body.Notes

	if err := h.leaveRequests.Update(req); err != nil {
		if errors.Is(err, rota.ErrLeaveValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeleteLeave removes a leave request.
func (h *Handler) DeleteLeave(c *gin.Context) {
	requestID := c.Param("request_id")
	if err := h.leaveRequests.Delete(requestID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": requestID})
}

// loadLeaveSet normalizes the approved leave requests into the
// per-consultant day set the Block Model consumes.
func (h *Handler) loadLeaveSet() (rota.LeaveSet, error) {
	requests, err := h.leaveRequests.List()
	if err != nil {
		return nil, err
	}
	return leavestore.ToLeaveSet(requests)
}
