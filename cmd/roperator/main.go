// Command roperator runs the HTTP service that exposes the rota
// scheduler over /api: roster, leave requests, bank holidays, and the
// solve endpoint (spec.md §4.9).
package main

import (
	"log"
	"os"
	"time"

	"github.com/blopes/rota-scheduler/internal/api"
	"github.com/blopes/rota-scheduler/internal/bankholidays"
	"github.com/blopes/rota-scheduler/internal/database"
)

func main() {
	db, err := database.Initialize("./data/rota.db")
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var requestsDir string
	db.QueryRow(`SELECT value FROM settings WHERE key = 'leave_requests_dir'`).Scan(&requestsDir)
	if requestsDir == "" {
		requestsDir = "./data/leave-requests"
	}

	var countryCode string
	db.QueryRow(`SELECT value FROM settings WHERE key = 'bank_holiday_country'`).Scan(&countryCode)
	if countryCode == "" {
		countryCode = "PT"
	}

	// Pre-fetch bank holidays for the current year on startup
	// (non-blocking); background retry takes over on failure.
	currentYear := time.Now().Year()
	log.Printf("Loading bank holidays for year %d...", currentYear)

	prefetchService := bankholidays.NewService(db, countryCode)
	prefetchService.SetRetryConfig(5, 30*time.Second)
	go func() {
		if _, err := prefetchService.LoadForYear(currentYear); err != nil {
			log.Printf("Warning: Failed to pre-fetch bank holidays: %v (will retry in background)", err)
		} else {
			log.Printf("Bank holidays for %d loaded successfully", currentYear)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server, err := api.NewServer(db, requestsDir, countryCode)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Starting server on port %s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
