package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitiket/tiketops/internal/domain"
)

func TestByCategory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-2 * time.Hour)

	tickets := []domain.Ticket{
		{Kategori: "MAJOR", Status: domain.StatusOpen, JamOpen: open, TTRTargetHours: 8},
		{Kategori: "MAJOR", Status: domain.StatusOnProgress, JamOpen: open, TTRTargetHours: 1},
		{Kategori: "MAJOR", Status: domain.StatusClosed, JamOpen: open, TTRTargetHours: 1},
		{Kategori: "CRITICAL", Status: domain.StatusOpen, JamOpen: open, TTRTargetHours: 4},
	}

	got := ByCategory(tickets, now)
	require.Len(t, got, 2)

	major := got["MAJOR"]
	assert.Equal(t, 3, major.Total)
	assert.Equal(t, 1, major.Closed)
	assert.Equal(t, 1, major.Overdue, "live ticket past its 1h target")
	assert.Equal(t, 1, major.OnProgress)

	critical := got["CRITICAL"]
	assert.Equal(t, 1, critical.Total)
	assert.Zero(t, critical.Overdue)
}

func TestByCategoryClosedNeverOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Closed past its deadline with a negative frozen clock; still only
	// counted as closed.
	tickets := []domain.Ticket{{
		Kategori: "MAJOR", Status: domain.StatusClosed,
		JamOpen: now.Add(-10 * time.Hour), TTRTargetHours: 1, SisaTtrHours: -9,
	}}
	got := ByCategory(tickets, now)
	assert.Equal(t, 1, got["MAJOR"].Closed)
	assert.Zero(t, got["MAJOR"].Overdue)
}

func TestByDay(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	tickets := []domain.Ticket{
		{Status: domain.StatusOpen, JamOpen: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{Status: domain.StatusClosed, JamOpen: time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)},
		{Status: domain.StatusOnProgress, JamOpen: time.Date(2026, 3, 3, 5, 0, 0, 0, time.UTC)},
		// Outside the range, must not appear anywhere.
		{Status: domain.StatusOpen, JamOpen: time.Date(2026, 2, 28, 5, 0, 0, 0, time.UTC)},
	}

	series := ByDay(tickets, from, to)
	require.Len(t, series, 3, "one entry per day, zero-filled")

	assert.Equal(t, 2, series[0].Total)
	assert.Equal(t, 1, series[0].Open)
	assert.Equal(t, 1, series[0].Closed)

	assert.Zero(t, series[1].Total, "empty day stays zero-filled")

	assert.Equal(t, 1, series[2].Total)
	assert.Equal(t, 1, series[2].OnProgress)
}

func TestByDayInvertedRange(t *testing.T) {
	from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, ByDay(nil, from, to))
}

func TestPercentClosed(t *testing.T) {
	assert.Equal(t, 0, PercentClosed(0, 0), "empty group is zero, not NaN")
	assert.Equal(t, 50, PercentClosed(1, 2))
	assert.Equal(t, 33, PercentClosed(1, 3))
	assert.Equal(t, 67, PercentClosed(2, 3))
	assert.Equal(t, 100, PercentClosed(3, 3))
}

func TestFullExportCSV(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	real := 3.25
	tickets := []domain.Ticket{{
		ID:             "t-1",
		Provider:       "TLKM",
		IncNumbers:     []string{"INC001", "INC002"},
		SiteCode:       "MIS01",
		SiteName:       `Site "Utama"`,
		Kategori:       "MAJOR",
		LokasiText:     "Jalan Raya, KM 4",
		Status:         domain.StatusClosed,
		TTRCompliance:  domain.Comply,
		JamOpen:        time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		MaxJamClose:    time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC),
		TTRTargetHours: 8,
		SisaTtrHours:   4.75,
		TTRRealHours:   &real,
		TeknisiList:    []string{"Budi", "Andi"},
		Penyebab:       "Kabel Putus",
	}}

	out := FullExportCSV(tickets, now)

	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "starts with UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(fullExportHeader, ","), lines[0])

	row := lines[1]
	assert.Contains(t, row, "INC001;INC002")
	assert.Contains(t, row, `"Jalan Raya, KM 4"`, "embedded comma gets quoted")
	assert.Contains(t, row, "2026-03-01 08:00")
	assert.Contains(t, row, "4.75")
	assert.Contains(t, row, "3.25")
	assert.Contains(t, row, `"Budi, Andi"`)
}

func TestSummaryExportCSV(t *testing.T) {
	out := SummaryExportCSV(map[string]CategorySummary{
		"MAJOR":    {Total: 4, Closed: 2, Overdue: 1, OnProgress: 1},
		"CRITICAL": {Total: 1, Closed: 1},
	})

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "CRITICAL", "alphabetical order")
	assert.Equal(t, "CRITICAL,1,1,0,0,100", lines[1])
	assert.Equal(t, "MAJOR,4,2,1,1,50", lines[2])
}
