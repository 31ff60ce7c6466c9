package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetBankHolidays returns the bank-holiday set for a year, fetching and
// caching it if it is not already known.
func (h *Handler) GetBankHolidays(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	bh, err := h.bankHolidays.LoadForYear(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dates := make([]string, 0, len(bh))
	for d := range bh {
		dates = append(dates, d.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "dates": dates, "status": h.bankHolidays.GetStatus(year)})
}

// RefreshBankHolidays forces a re-fetch for a year, bypassing the cache.
func (h *Handler) RefreshBankHolidays(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	bh, err := h.bankHolidays.ForceRefresh(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dates := make([]string, 0, len(bh))
	for d := range bh {
		dates = append(dates, d.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "dates": dates})
}
