package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/ttr"
)

var testThresholds = domain.TTRThresholds{
	WarningHours:  2,
	CriticalHours: 1,
	DueSoonHours:  2,
}

func TestFromTicketSeverityClosedNeverFlagged(t *testing.T) {
	// Closed past its deadline with a negative frozen clock.
	closed := &domain.Ticket{
		ID:           "t-1",
		Status:       domain.StatusClosed,
		JamOpen:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		SisaTtrHours: -2.5,
	}

	resp := FromTicket(closed, testThresholds)
	assert.Equal(t, string(ttr.SeveritySafe), resp.Severity)
	assert.False(t, resp.DueSoon)
}

func TestFromTicketSeverityLive(t *testing.T) {
	live := &domain.Ticket{
		ID:           "t-2",
		Status:       domain.StatusOnProgress,
		SisaTtrHours: -0.5,
	}
	resp := FromTicket(live, testThresholds)
	assert.Equal(t, string(ttr.SeverityOverdue), resp.Severity)

	live.SisaTtrHours = 1.5
	resp = FromTicket(live, testThresholds)
	assert.Equal(t, string(ttr.SeverityWarning), resp.Severity)
	assert.True(t, resp.DueSoon)
}
