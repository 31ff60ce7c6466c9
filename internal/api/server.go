package api

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/blopes/rota-scheduler/internal/api/handlers"
)

// Version is set at build time
var Version = "dev"

type Server struct {
	db     *sql.DB
	router *gin.Engine
}

// NewServer builds a Server backed by db, rooting leave requests at
// leaveRequestsDir and fetching bank holidays for countryCode.
func NewServer(db *sql.DB, leaveRequestsDir, countryCode string) (*Server, error) {
	s := &Server{
		db:     db,
		router: gin.Default(),
	}

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	s.router.Use(cors.New(config))

	if err := s.setupRoutes(leaveRequestsDir, countryCode); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRoutes(leaveRequestsDir, countryCode string) error {
	h, err := handlers.NewHandler(s.db, leaveRequestsDir, countryCode)
	if err != nil {
		return err
	}

	api := s.router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/version", func(c *gin.Context) {
			version := Version
			if v := os.Getenv("APP_VERSION"); v != "" {
				version = v
			}
			c.JSON(http.StatusOK, gin.H{"version": version})
		})

		// Consultant roster
		api.GET("/consultants", h.GetConsultants)
		api.PUT("/consultants", h.PutConsultants)

		// Leave requests (JSON-per-request store)
		api.GET("/leave", h.GetLeave)
		api.POST("/leave", h.PostLeave)
		api.PUT("/leave/:request_id", h.PutLeave)
		api.DELETE("/leave/:request_id", h.DeleteLeave)

		// Bank holidays
		api.GET("/bank-holidays/:year", h.GetBankHolidays)
		api.POST("/bank-holidays/:year/refresh", h.RefreshBankHolidays)

		// Solve + rota export
		api.POST("/rota/:year/solve", h.PostSolve)
		api.GET("/rota/:year", h.GetRota)

		// Settings
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings/:key", h.UpdateSetting)
	}
	return nil
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
