package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitiket/tiketops/internal/domain"
)

func mkTicket(id, site, kategori string, status domain.TicketStatus, open time.Time, target float64) domain.Ticket {
	return domain.Ticket{
		ID:             id,
		IncNumbers:     []string{"INC" + id},
		SiteCode:       site,
		SiteName:       "Site " + site,
		Kategori:       kategori,
		Status:         status,
		JamOpen:        open,
		TTRTargetHours: target,
	}
}

func TestFilterExactCriteria(t *testing.T) {
	open := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		mkTicket("1", "MIS", "MAJOR", domain.StatusOpen, open, 8),
		mkTicket("2", "SLJ", "CRITICAL", domain.StatusClosed, open, 4),
		mkTicket("3", "MIS", "MAJOR", domain.StatusOnProgress, open, 8),
	}

	got := Filter(tickets, Criteria{Status: string(domain.StatusClosed)})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = Filter(tickets, Criteria{Kategori: "MAJOR"})
	assert.Len(t, got, 2)

	// The ALL sentinel and the empty string both disable the dimension.
	assert.Len(t, Filter(tickets, Criteria{Status: All}), 3)
	assert.Len(t, Filter(tickets, Criteria{}), 3)
}

func TestFilterSearch(t *testing.T) {
	open := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	ticket := mkTicket("1", "MIS", "MAJOR", domain.StatusOpen, open, 8)
	ticket.LokasiText = "Jalan Sudirman KM 4"
	ticket.Penyebab = "Kabel Putus"
	tickets := []domain.Ticket{ticket}

	assert.Len(t, Filter(tickets, Criteria{Search: "inc1"}), 1, "search is case-insensitive")
	assert.Len(t, Filter(tickets, Criteria{Search: "sudirman"}), 1)
	assert.Len(t, Filter(tickets, Criteria{Search: "putus"}), 1)
	assert.Len(t, Filter(tickets, Criteria{Search: "  "}), 1, "blank search matches all")
	assert.Empty(t, Filter(tickets, Criteria{Search: "nomatch"}))
}

func TestFilterDateRange(t *testing.T) {
	tickets := []domain.Ticket{
		mkTicket("1", "MIS", "MAJOR", domain.StatusOpen, time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC), 8),
		mkTicket("2", "MIS", "MAJOR", domain.StatusOpen, time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC), 8),
	}

	// Bounds are whole days regardless of the time component supplied.
	from := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	got := Filter(tickets, Criteria{DateFrom: &from, DateTo: &to})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = Filter(tickets, Criteria{DateFrom: &from})
	assert.Len(t, got, 2, "open-ended upper bound")
}

func TestFilterIdempotent(t *testing.T) {
	open := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		mkTicket("1", "MIS", "MAJOR", domain.StatusOpen, open, 8),
		mkTicket("2", "SLJ", "MINOR [8]", domain.StatusOpen, open, 8),
	}
	c := Criteria{Kategori: "MAJOR"}

	once := Filter(tickets, c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestSortTTRPartitionsClosedLast(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-2 * time.Hour)

	overdue := mkTicket("overdue", "A", "MAJOR", domain.StatusOpen, open, 1)
	urgent := mkTicket("urgent", "B", "MAJOR", domain.StatusOpen, open, 3)
	relaxed := mkTicket("relaxed", "C", "MAJOR", domain.StatusOpen, open, 24)
	closed := mkTicket("closed", "D", "MAJOR", domain.StatusClosed, open, 1)

	got := Sort([]domain.Ticket{closed, relaxed, urgent, overdue}, SortTTR, now)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"overdue", "urgent", "relaxed", "closed"}, ids)
}

func TestSortModes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := mkTicket("older", "ZZZ", "MAJOR", domain.StatusOpen, now.Add(-5*time.Hour), 8)
	newer := mkTicket("newer", "AAA", "MAJOR", domain.StatusOpen, now.Add(-1*time.Hour), 8)
	input := []domain.Ticket{older, newer}

	assert.Equal(t, "newer", Sort(input, SortNewest, now)[0].ID)
	assert.Equal(t, "older", Sort(input, SortOldest, now)[0].ID)
	assert.Equal(t, "newer", Sort(input, SortSite, now)[0].ID, "AAA sorts before ZZZ")

	// Input is never mutated.
	assert.Equal(t, "older", input[0].ID)
}

func TestSortStable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-2 * time.Hour)
	first := mkTicket("first", "MIS", "MAJOR", domain.StatusOpen, open, 8)
	second := mkTicket("second", "MIS", "MAJOR", domain.StatusOpen, open, 8)

	got := Sort([]domain.Ticket{first, second}, SortTTR, now)
	assert.Equal(t, "first", got[0].ID, "equal keys keep input order")
}
