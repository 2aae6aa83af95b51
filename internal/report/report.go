// Package report aggregates ticket snapshots into the summary figures
// behind dashboards and exports.
package report

import (
	"math"
	"time"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/ttr"
)

// CategorySummary counts tickets within one kategori.
type CategorySummary struct {
	Total      int `json:"total"`
	Closed     int `json:"closed"`
	Overdue    int `json:"overdue"`
	OnProgress int `json:"onprogress"`
}

// ByCategory groups tickets by kategori in a single pass. Overdue
// counts only live tickets whose remaining hours are negative, so every
// ticket lands in exactly one Total bucket.
func ByCategory(tickets []domain.Ticket, now time.Time) map[string]CategorySummary {
	out := make(map[string]CategorySummary)
	for i := range tickets {
		t := &tickets[i]
		summary := out[t.Kategori]
		summary.Total++
		if t.IsClosed() {
			summary.Closed++
		} else if ttr.RemainingHours(t, now) < 0 {
			summary.Overdue++
		}
		if t.Status == domain.StatusOnProgress {
			summary.OnProgress++
		}
		out[t.Kategori] = summary
	}
	return out
}

// DailyCount is one calendar day in a report series.
type DailyCount struct {
	Date       time.Time `json:"date"`
	Open       int       `json:"open"`
	OnProgress int       `json:"onprogress"`
	Closed     int       `json:"closed"`
	Total      int       `json:"total"`
}

// ByDay buckets tickets by the calendar day of jamOpen, producing one
// entry per day in the inclusive [from, to] range in chronological
// order. Days without tickets appear zero-filled rather than omitted.
func ByDay(tickets []domain.Ticket, from, to time.Time) []DailyCount {
	start := startOfDay(from)
	end := startOfDay(to)
	if end.Before(start) {
		return []DailyCount{}
	}

	buckets := make(map[string]*DailyCount)
	var series []DailyCount
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, DailyCount{Date: day})
	}
	for i := range series {
		buckets[dayKey(series[i].Date)] = &series[i]
	}

	for i := range tickets {
		t := &tickets[i]
		entry, ok := buckets[dayKey(t.JamOpen)]
		if !ok {
			continue
		}
		entry.Total++
		switch t.Status {
		case domain.StatusOpen:
			entry.Open++
		case domain.StatusOnProgress:
			entry.OnProgress++
		case domain.StatusClosed:
			entry.Closed++
		}
	}
	return series
}

// PercentClosed returns the rounded closure percentage, defined as 0
// for an empty group.
func PercentClosed(closed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(closed) / float64(total)))
}

func startOfDay(ts time.Time) time.Time {
	year, month, day := ts.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
}

func dayKey(ts time.Time) string {
	return ts.Format("2006-01-02")
}
