// Package query implements deterministic, pure in-memory filtering and
// ordering over ticket snapshots. Persistence does only coarse
// narrowing; the exact dashboard semantics live here.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/ttr"
)

// All is the sentinel that disables an exact-match criterion.
const All = "ALL"

// Criteria describes a ticket filter. All active criteria combine with
// logical AND; zero values and the All sentinel deactivate a dimension.
type Criteria struct {
	Search       string
	Status       string
	Compliance   string
	Kategori     string
	JarakKmRange string
	// DateFrom/DateTo bound jamOpen with inclusive day boundaries;
	// either side may be open-ended.
	DateFrom *time.Time
	DateTo   *time.Time
}

// Filter returns the tickets matching the criteria, preserving input
// order. Filtering an already-filtered result with the same criteria
// yields the same set.
func Filter(tickets []domain.Ticket, c Criteria) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if Matches(&tickets[i], c) {
			out = append(out, tickets[i])
		}
	}
	return out
}

// Matches evaluates a single ticket against the criteria.
func Matches(t *domain.Ticket, c Criteria) bool {
	if !matchesExact(c.Status, string(t.Status)) {
		return false
	}
	if !matchesExact(c.Compliance, string(t.TTRCompliance)) {
		return false
	}
	if !matchesExact(c.Kategori, t.Kategori) {
		return false
	}
	if !matchesExact(c.JarakKmRange, t.JarakKmRange) {
		return false
	}
	if !matchesDateRange(t.JamOpen, c.DateFrom, c.DateTo) {
		return false
	}
	return matchesSearch(t, c.Search)
}

func matchesExact(criterion, value string) bool {
	return criterion == "" || criterion == All || criterion == value
}

func matchesDateRange(jamOpen time.Time, from, to *time.Time) bool {
	if from != nil && jamOpen.Before(startOfDay(*from)) {
		return false
	}
	if to != nil && !jamOpen.Before(startOfDay(*to).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func startOfDay(ts time.Time) time.Time {
	year, month, day := ts.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
}

// matchesSearch does a case-insensitive substring match across every
// searchable field; the ticket matches if any field contains the query.
func matchesSearch(t *domain.Ticket, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	for _, inc := range t.IncNumbers {
		if strings.Contains(strings.ToLower(inc), q) {
			return true
		}
	}
	fields := []string{
		t.SiteCode,
		t.SiteName,
		t.LokasiText,
		t.Kategori,
		t.NetworkElement,
		t.Penyebab,
		t.TiketTacc,
		t.IndukGamas,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// SortMode selects the ordering applied by Sort.
type SortMode string

const (
	// SortTTR is the default dashboard order: closed tickets after all
	// live ones, most urgent (lowest remaining hours) first.
	SortTTR    SortMode = "ttr"
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortSite   SortMode = "site"
)

// Sort returns a newly ordered copy of tickets. The sort is stable:
// equal keys keep their relative input order.
func Sort(tickets []domain.Ticket, mode SortMode, now time.Time) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	copy(out, tickets)

	switch mode {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].JamOpen.After(out[j].JamOpen)
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].JamOpen.Before(out[j].JamOpen)
		})
	case SortSite:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SiteCode < out[j].SiteCode
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			ci, cj := out[i].IsClosed(), out[j].IsClosed()
			if ci != cj {
				return !ci
			}
			return ttr.RemainingHours(&out[i], now) < ttr.RemainingHours(&out[j], now)
		})
	}
	return out
}
