// Package ttr implements the SLA clock rules: remaining-hours
// computation, severity classification and compliance evaluation.
// Every time-dependent function takes "now" explicitly so results are
// deterministic and refresh semantics stay with the caller.
package ttr

import (
	"math"
	"time"

	"github.com/sitiket/tiketops/internal/domain"
)

// Severity tiers a ticket by how much TTR budget remains.
type Severity string

const (
	SeveritySafe     Severity = "safe"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeverityOverdue  Severity = "overdue"
)

// Classify maps remaining hours to a severity tier. Rules apply in
// precedence order and the first match wins; the thresholds carry no
// ordering guarantee relative to each other. Callers gate alerting on
// status != CLOSED themselves.
func Classify(remainingHours float64, th domain.TTRThresholds) Severity {
	switch {
	case remainingHours < 0:
		return SeverityOverdue
	case remainingHours <= th.CriticalHours:
		return SeverityCritical
	case remainingHours <= th.WarningHours:
		return SeverityWarning
	default:
		return SeveritySafe
	}
}

// IsDueSoon reports whether a ticket is approaching its deadline but
// not yet breached.
func IsDueSoon(remainingHours float64, th domain.TTRThresholds) bool {
	return remainingHours > 0 && remainingHours <= th.DueSoonHours
}

// Deadline returns the instant the SLA clock runs out, deriving it from
// jamOpen + target when no explicit max-close is stored.
func Deadline(t *domain.Ticket) time.Time {
	if !t.MaxJamClose.IsZero() {
		return t.MaxJamClose
	}
	return t.JamOpen.Add(time.Duration(t.TTRTargetHours * float64(time.Hour)))
}

// RemainingHours computes the signed hours left before the deadline.
// Negative means overdue. Once a ticket is CLOSED the value is frozen
// at whatever was captured at close time.
func RemainingHours(t *domain.Ticket, now time.Time) float64 {
	if t.IsClosed() {
		return t.SisaTtrHours
	}
	return Deadline(t).Sub(now).Hours()
}

// ComputeCompliance gives the final verdict for a closed ticket. The
// second return is false while the ticket is still open or has no
// recorded real TTR; any compliance shown before then is advisory only.
func ComputeCompliance(t *domain.Ticket) (domain.Compliance, bool) {
	if !t.IsClosed() || t.TTRRealHours == nil {
		return "", false
	}
	if *t.TTRRealHours <= t.TTRTargetHours {
		return domain.Comply, true
	}
	return domain.NotComply, true
}

// TotalTTR returns the hours between open and close, clamped at zero
// to guard against clock skew and rounded to two decimals.
func TotalTTR(open, close time.Time) float64 {
	hours := close.Sub(open).Hours()
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}
