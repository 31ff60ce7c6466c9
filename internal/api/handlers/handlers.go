package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blopes/rota-scheduler/internal/bankholidays"
	"github.com/blopes/rota-scheduler/internal/leavestore"
)

// Handler holds everything the route table needs to serve a request:
// the database, the leave-request store, and the bank-holiday service.
type Handler struct {
	db            *sql.DB
	leaveRequests *leavestore.RequestStore
	bankHolidays  *bankholidays.Service
}

// NewHandler wires a Handler against db, rooting the leave-request
// store at requestsDir and fetching bank holidays for countryCode.
func NewHandler(db *sql.DB, requestsDir, countryCode string) (*Handler, error) {
	store, err := leavestore.NewRequestStore(requestsDir)
	if err != nil {
		return nil, err
	}

	return &Handler{
		db:            db,
		leaveRequests: store,
		bankHolidays:  bankholidays.NewService(db, countryCode),
	}, nil
}

// GetSettings returns every key/value pair in the settings table.
func (h *Handler) GetSettings(c *gin.Context) {
	rows, err := h.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		settings[key] = value
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSetting upserts a single settings key.
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, body.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": body.Value})
}
