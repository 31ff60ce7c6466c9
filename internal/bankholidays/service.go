package bankholidays

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/blopes/rota-scheduler/internal/rota"
)

// Status reports the loading state of one year's bank holidays, mirroring
// the teacher's per-year HolidayStatus but with the national/municipal
// split collapsed to a single national feed.
type Status struct {
	Year        int       `json:"year"`
	Loaded      bool      `json:"loaded"`
	Error       string    `json:"error,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
	RetryCount  int       `json:"retry_count"`
	MaxRetries  int       `json:"max_retries"`
	NextRetry   time.Time `json:"next_retry,omitempty"`
	IsRetrying  bool      `json:"is_retrying"`
}

// Service loads, caches, and persists bank-holiday sets, with background
// retry when the external feed is unavailable.
type Service struct {
	db            *sql.DB
	country       string
	status        map[int]*Status
	statusMux     sync.RWMutex
	stopRetry     map[int]chan struct{}
	stopRetryMux  sync.Mutex
	maxRetries    int
	retryInterval time.Duration
}

// NewService creates a Service backed by db, fetching holidays for the
// given ISO country code.
func NewService(db *sql.DB, countryCode string) *Service {
	return &Service{
		db:            db,
		country:       countryCode,
		status:        make(map[int]*Status),
		stopRetry:     make(map[int]chan struct{}),
		maxRetries:    5,
		retryInterval: 30 * time.Second,
	}
}

// SetRetryConfig overrides the default retry count and interval.
func (s *Service) SetRetryConfig(maxRetries int, interval time.Duration) {
	s.maxRetries = maxRetries
	s.retryInterval = interval
}

// GetStatus returns the current status for a year, or nil if unknown.
func (s *Service) GetStatus(year int) *Status {
	s.statusMux.RLock()
	defer s.statusMux.RUnlock()
	return s.status[year]
}

// LoadForYear returns rota.BankHolidays for year, reading from the cache
// table first and falling back to the external feed, then to the fixed
// fallback list, exactly as the teacher's LoadHolidaysForYear does for
// national holidays.
func (s *Service) LoadForYear(year int) (rota.BankHolidays, error) {
	cached, ok := s.loadFromDatabase(year)

	s.statusMux.Lock()
	if s.status[year] == nil {
		s.status[year] = &Status{Year: year, MaxRetries: s.maxRetries}
	}
	status := s.status[year]
	s.statusMux.Unlock()

	if ok {
		status.Loaded = true
		status.Error = ""
		go s.refreshInBackground(year)
		return toSet(cached), nil
	}

	holidays, err := s.fetchAndSave(year)
	return toSet(holidays), err
}

func (s *Service) loadFromDatabase(year int) ([]BankHoliday, bool) {
	rows, err := s.db.Query(`SELECT holiday_date, name FROM bank_holidays WHERE year = ?`, year)
	if err != nil {
		log.Printf("bankholidays: error loading from db: %v", err)
		return nil, false
	}
	defer rows.Close()

	var out []BankHoliday
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			continue
		}
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		out = append(out, BankHoliday{Date: d, Name: name})
	}
	return out, len(out) > 0
}

func (s *Service) fetchAndSave(year int) ([]BankHoliday, error) {
	s.statusMux.Lock()
	status := s.status[year]
	s.statusMux.Unlock()

	holidays, err := FetchNational(year, s.country)
	if err != nil {
		log.Printf("bankholidays: fetch failed for %d: %v", year, err)
		status.Error = err.Error()
		status.Loaded = false

		s.startBackgroundRetry(year)

		holidays = Fallback(year)
		return holidays, nil
	}

	status.Loaded = true
	status.Error = ""
	status.LastUpdated = time.Now()
	s.saveToDatabase(year, holidays)

	return holidays, nil
}

func (s *Service) saveToDatabase(year int, holidays []BankHoliday) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("bankholidays: begin tx failed: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO bank_holidays (year, holiday_date, name) VALUES (?, ?, ?)`)
	if err != nil {
		log.Printf("bankholidays: prepare failed: %v", err)
		return
	}
	defer stmt.Close()

	for _, h := range holidays {
		if _, err := stmt.Exec(year, h.Date.Format("2006-01-02"), h.Name); err != nil {
			log.Printf("bankholidays: insert failed: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("bankholidays: commit failed: %v", err)
	}
}

func (s *Service) refreshInBackground(year int) {
	s.statusMux.RLock()
	status := s.status[year]
	s.statusMux.RUnlock()

	if status == nil || time.Since(status.LastUpdated) < time.Hour {
		return
	}

	holidays, err := FetchNational(year, s.country)
	if err != nil {
		return
	}
	s.saveToDatabase(year, holidays)

	s.statusMux.Lock()
	status.Loaded = true
	status.Error = ""
	status.LastUpdated = time.Now()
	s.statusMux.Unlock()
	log.Printf("bankholidays: background refresh for %d updated", year)
}

func (s *Service) startBackgroundRetry(year int) {
	s.stopRetryMux.Lock()
	if stopChan, exists := s.stopRetry[year]; exists {
		close(stopChan)
	}
	stopChan := make(chan struct{})
	s.stopRetry[year] = stopChan
	s.stopRetryMux.Unlock()

	s.statusMux.Lock()
	status := s.status[year]
	status.RetryCount = 0
	status.IsRetrying = true
	status.NextRetry = time.Now().Add(s.retryInterval)
	s.statusMux.Unlock()

	go func() {
		ticker := time.NewTicker(s.retryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stopChan:
				s.statusMux.Lock()
				status.IsRetrying = false
				s.statusMux.Unlock()
				return
			case <-ticker.C:
				s.statusMux.Lock()
				status.RetryCount++
				current := status.RetryCount
				s.statusMux.Unlock()

				if current > s.maxRetries {
					log.Printf("bankholidays: max retries reached for %d", year)
					s.statusMux.Lock()
					status.IsRetrying = false
					s.statusMux.Unlock()
					return
				}

				log.Printf("bankholidays: retry %d/%d for %d", current, s.maxRetries, year)
				holidays, err := FetchNational(year, s.country)
				if err != nil {
					s.statusMux.Lock()
					status.Error = err.Error()
					status.NextRetry = time.Now().Add(s.retryInterval)
					s.statusMux.Unlock()
					continue
				}

				s.saveToDatabase(year, holidays)
				s.statusMux.Lock()
				status.Loaded = true
				status.Error = ""
				status.IsRetrying = false
				status.LastUpdated = time.Now()
				s.statusMux.Unlock()
				log.Printf("bankholidays: %d loaded successfully on retry", year)
				return
			}
		}
	}()
}

// StopAllRetries stops every background retry goroutine, for clean
// shutdown.
func (s *Service) StopAllRetries() {
	s.stopRetryMux.Lock()
	defer s.stopRetryMux.Unlock()

	for year, stopChan := range s.stopRetry {
		close(stopChan)
		delete(s.stopRetry, year)
	}
}

// ForceRefresh clears cached state for year and re-fetches from the feed.
func (s *Service) ForceRefresh(year int) (rota.BankHolidays, error) {
	s.statusMux.Lock()
	delete(s.status, year)
	s.statusMux.Unlock()

	s.stopRetryMux.Lock()
	if stopChan, exists := s.stopRetry[year]; exists {
		close(stopChan)
		delete(s.stopRetry, year)
	}
	s.stopRetryMux.Unlock()

	if _, err := s.db.Exec(`DELETE FROM bank_holidays WHERE year = ?`, year); err != nil {
		log.Printf("bankholidays: error clearing db for %d: %v", year, err)
	}

	s.statusMux.Lock()
	s.status[year] = &Status{Year: year, MaxRetries: s.maxRetries}
	s.statusMux.Unlock()

	holidays, err := s.fetchAndSave(year)
	return toSet(holidays), err
}

func toSet(holidays []BankHoliday) rota.BankHolidays {
	set := make(rota.BankHolidays, len(holidays))
	for _, h := range holidays {
		set[h.Date] = true
	}
	return set
}
