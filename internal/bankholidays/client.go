// Package bankholidays loads, caches, and persists the bank-holiday day
// set spec.md's Inputs module requires, the way the teacher's holiday
// package fetches and caches named public holidays — adapted because
// the Block Model only needs a date set (rota.BankHolidays), not a
// holiday's name or municipality.
package bankholidays

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BankHoliday is one fetched or cached public holiday.
type BankHoliday struct {
	Date time.Time
	Name string
}

// nagerHoliday mirrors the subset of the Nager.Date public-holiday API
// response this service consumes.
type nagerHoliday struct {
	Date   string   `json:"date"`
	Name   string   `json:"localName"`
	Global bool     `json:"global"`
	Types  []string `json:"types"`
}

const nagerAPIURL = "https://date.nager.at/api/v3/publicholidays/%d/%s"

// FetchNational fetches the national public holidays for year/country
// from the Nager.Date API, keeping only global public holidays — the
// same filter the teacher applies to the equivalent feed.
func FetchNational(year int, countryCode string) ([]BankHoliday, error) {
	url := fmt.Sprintf(nagerAPIURL, year, countryCode)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bank holidays from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	var raw []nagerHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	var out []BankHoliday
	for _, h := range raw {
		if !h.Global || !containsPublic(h.Types) {
			continue
		}
		d, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			continue
		}
		out = append(out, BankHoliday{Date: d, Name: h.Name})
	}
	return out, nil
}

func containsPublic(types []string) bool {
	for _, t := range types {
		if t == "Public" {
			return true
		}
	}
	return false
}

// Fallback returns a small set of fixed-date holidays to use when the
// API is unreachable. It is intentionally minimal and calendar-only
// (no Easter-relative dates): a caller relying on country-specific
// movable holidays should prefer a successful fetch or a
// manually-curated override.
func Fallback(year int) []BankHoliday {
	return []BankHoliday{
		{Date: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year's Day"},
		{Date: time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day"},
	}
}
