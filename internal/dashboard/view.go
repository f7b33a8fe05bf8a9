// Package dashboard derives the admin views from a store snapshot and turns
// admin actions into store mutations.
package dashboard

import (
	"strings"

	"golang.org/x/text/cases"

	"solverpro/internal/models"
)

// ComputeStats counts records per status and sums the price of paid,
// analysed records.
func ComputeStats(records []models.ProblemRecord) models.DashboardStats {
	var stats models.DashboardStats
	for _, record := range records {
		switch record.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		}
		stats.TotalRevenue += record.Revenue()
	}
	return stats
}

// ApplyFilter keeps the records matching statusFilter ("all" or a status)
// and searchText, preserving input order. searchText matches the student
// name case-insensitively or the phone as a literal substring.
func ApplyFilter(records []models.ProblemRecord, statusFilter, searchText string) []models.ProblemRecord {
	if statusFilter == "" {
		statusFilter = models.StatusFilterAll
	}
	fold := cases.Fold()
	needle := fold.String(searchText)

	out := make([]models.ProblemRecord, 0, len(records))
	for _, record := range records {
		if statusFilter != models.StatusFilterAll && string(record.Status) != statusFilter {
			continue
		}
		if searchText != "" &&
			!strings.Contains(fold.String(record.StudentName), needle) &&
			!strings.Contains(record.Phone, searchText) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// ContactLink builds the messaging deep link for a phone number.
func ContactLink(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits
}
