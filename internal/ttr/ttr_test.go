package ttr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitiket/tiketops/internal/domain"
)

var testThresholds = domain.TTRThresholds{
	WarningHours:  2,
	CriticalHours: 1,
	DueSoonHours:  2,
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		remaining float64
		want      Severity
	}{
		{"overdue", -0.01, SeverityOverdue},
		{"zero is critical", 0, SeverityCritical},
		{"critical boundary", 1, SeverityCritical},
		{"warning just above critical", 1.01, SeverityWarning},
		{"warning boundary", 2, SeverityWarning},
		{"safe", 2.01, SeveritySafe},
		{"far future", 100, SeveritySafe},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.remaining, testThresholds))
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	// Every float input lands in exactly one tier, including inverted
	// threshold configurations.
	inverted := domain.TTRThresholds{WarningHours: 1, CriticalHours: 4}
	for _, remaining := range []float64{-10, -0.001, 0, 0.5, 1, 2, 3, 4, 5, 1000} {
		got := Classify(remaining, inverted)
		assert.Contains(t, []Severity{SeveritySafe, SeverityWarning, SeverityCritical, SeverityOverdue}, got)
	}
	// With critical >= warning, the warning tier is unreachable but the
	// precedence order still holds.
	assert.Equal(t, SeverityCritical, Classify(3, inverted))
	assert.Equal(t, SeveritySafe, Classify(4.5, inverted))
}

func TestIsDueSoon(t *testing.T) {
	assert.False(t, IsDueSoon(-1, testThresholds), "overdue is not due soon")
	assert.False(t, IsDueSoon(0, testThresholds), "exactly due is not due soon")
	assert.True(t, IsDueSoon(0.5, testThresholds))
	assert.True(t, IsDueSoon(2, testThresholds))
	assert.False(t, IsDueSoon(2.1, testThresholds))
}

func TestDeadline(t *testing.T) {
	open := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	explicit := &domain.Ticket{JamOpen: open, TTRTargetHours: 4, MaxJamClose: open.Add(6 * time.Hour)}
	assert.Equal(t, open.Add(6*time.Hour), Deadline(explicit))

	derived := &domain.Ticket{JamOpen: open, TTRTargetHours: 4}
	assert.Equal(t, open.Add(4*time.Hour), Deadline(derived))
}

func TestRemainingHours(t *testing.T) {
	open := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	live := &domain.Ticket{JamOpen: open, TTRTargetHours: 4, Status: domain.StatusOpen}

	assert.InDelta(t, 3, RemainingHours(live, open.Add(1*time.Hour)), 1e-9)
	assert.InDelta(t, -1, RemainingHours(live, open.Add(5*time.Hour)), 1e-9)

	closed := &domain.Ticket{
		JamOpen: open, TTRTargetHours: 4,
		Status: domain.StatusClosed, SisaTtrHours: 1.5,
	}
	// A closed ticket's clock is frozen regardless of how late we read it.
	assert.Equal(t, 1.5, RemainingHours(closed, open.Add(100*time.Hour)))
}

func TestComputeCompliance(t *testing.T) {
	real := 3.5
	closed := &domain.Ticket{Status: domain.StatusClosed, TTRTargetHours: 4, TTRRealHours: &real}
	verdict, ok := ComputeCompliance(closed)
	require.True(t, ok)
	assert.Equal(t, domain.Comply, verdict)

	late := 4.01
	closed.TTRRealHours = &late
	verdict, ok = ComputeCompliance(closed)
	require.True(t, ok)
	assert.Equal(t, domain.NotComply, verdict)

	exactly := 4.0
	closed.TTRRealHours = &exactly
	verdict, ok = ComputeCompliance(closed)
	require.True(t, ok)
	assert.Equal(t, domain.Comply, verdict, "meeting the target exactly complies")

	open := &domain.Ticket{Status: domain.StatusOpen, TTRTargetHours: 4, TTRRealHours: &real}
	_, ok = ComputeCompliance(open)
	assert.False(t, ok, "no final verdict before close")

	noReal := &domain.Ticket{Status: domain.StatusClosed, TTRTargetHours: 4}
	_, ok = ComputeCompliance(noReal)
	assert.False(t, ok)
}

func TestTotalTTR(t *testing.T) {
	open := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 2.5, TotalTTR(open, open.Add(2*time.Hour+30*time.Minute)))
	assert.Equal(t, 0.0, TotalTTR(open, open.Add(-time.Hour)), "clock skew clamps to zero")

	// 100 minutes is 1.666..., rounded to two decimals.
	assert.Equal(t, 1.67, TotalTTR(open, open.Add(100*time.Minute)))
}
