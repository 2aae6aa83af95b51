// Package whatsapp renders ticket data into shareable message text.
// Substitution is driven by a central token table so the supported
// placeholder set stays declared in one place.
package whatsapp

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/ttr"
)

// Context carries the render-time inputs that are not part of the
// ticket itself. Now is explicit so rendering stays deterministic.
type Context struct {
	Now           time.Time
	Location      *time.Location
	TicketBaseURL string
}

// wib is the wall-clock zone used for display formatting.
var wib = time.FixedZone("WIB", 7*60*60)

const timeLayout = "02/01/2006 15:04"

type resolver func(t *domain.Ticket, rc Context) string

// tokenTable maps each supported {{token}} to its value source.
// Unknown tokens pass through as literal text.
var tokenTable = map[string]resolver{
	"kategori": func(t *domain.Ticket, _ Context) string { return t.Kategori },
	"siteCode": func(t *domain.Ticket, _ Context) string { return t.SiteCode },
	"siteName": func(t *domain.Ticket, _ Context) string { return t.SiteName },
	"incNumbers": func(t *domain.Ticket, _ Context) string {
		return strings.Join(t.IncNumbers, ", ")
	},
	"lokasiText": func(t *domain.Ticket, _ Context) string { return t.LokasiText },
	"koordinat": func(t *domain.Ticket, _ Context) string {
		if t.Latitude == nil || t.Longitude == nil {
			return ""
		}
		return Koordinat(*t.Latitude, *t.Longitude)
	},
	"mapsLink": func(t *domain.Ticket, _ Context) string {
		if t.Latitude == nil || t.Longitude == nil {
			return ""
		}
		return MapsLink(*t.Latitude, *t.Longitude)
	},
	"jarakKmRange": func(t *domain.Ticket, _ Context) string { return t.JarakKmRange },
	"jamOpen": func(t *domain.Ticket, rc Context) string {
		if t.JamOpen.IsZero() {
			return ""
		}
		return formatTime(t.JamOpen, rc)
	},
	"sisaTtr": func(t *domain.Ticket, rc Context) string {
		return SisaTTRLabel(ttr.RemainingHours(t, rc.Now))
	},
	"status": func(t *domain.Ticket, _ Context) string { return t.Status.Label() },
	"ticketLink": func(t *domain.Ticket, rc Context) string {
		return strings.TrimRight(rc.TicketBaseURL, "/") + "/ticket/" + t.ID
	},
	"currentTime": func(_ *domain.Ticket, rc Context) string {
		return formatTime(rc.Now, rc)
	},
}

var tokenPattern = regexp.MustCompile(`\{\{([a-zA-Z]+)\}\}`)

// Render substitutes every recognized {{token}} in the template with
// the ticket-derived value. Missing source values become empty strings;
// unrecognized tokens are left untouched. Rendering has no side effects.
func Render(template string, t *domain.Ticket, rc Context) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := tokenPattern.FindStringSubmatch(match)[1]
		resolve, ok := tokenTable[name]
		if !ok {
			return match
		}
		return resolve(t, rc)
	})
}

// MapsLink builds a Google Maps URL embedding both coordinates at
// fixed six-decimal precision.
func MapsLink(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", lat, lon)
}

// Koordinat formats "lat, lon" for message bodies.
func Koordinat(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

// SisaTTRLabel renders a remaining-hours value for humans, e.g.
// "4.5 jam" or "-2 jam (OVERDUE)".
func SisaTTRLabel(hours float64) string {
	rounded := math.Round(hours*10) / 10
	label := strconv.FormatFloat(rounded, 'f', -1, 64) + " jam"
	if hours < 0 {
		label += " (OVERDUE)"
	}
	return label
}

func formatTime(ts time.Time, rc Context) string {
	loc := rc.Location
	if loc == nil {
		loc = wib
	}
	return ts.In(loc).Format(timeLayout) + " WIB"
}
