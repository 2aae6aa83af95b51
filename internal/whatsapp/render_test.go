package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sitiket/tiketops/internal/domain"
)

func renderCtx(now time.Time) Context {
	return Context{Now: now, TicketBaseURL: "https://sitiket.example.com"}
}

func sampleTicket() *domain.Ticket {
	lat, lon := 0.5071234, 101.4478899
	return &domain.Ticket{
		ID:           "t-1",
		IncNumbers:   []string{"INC001", "INC002"},
		Kategori:     "MAJOR",
		SiteCode:     "MIS01",
		SiteName:     "Site Utama",
		LokasiText:   "Jalan Sudirman",
		JarakKmRange: "0-5 km",
		Latitude:     &lat,
		Longitude:    &lon,
		// 01:00 UTC is 08:00 WIB.
		JamOpen:        time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC),
		TTRTargetHours: 8,
		Status:         domain.StatusOnProgress,
	}
}

func TestRenderSubstitutesTokens(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	template := "[{{kategori}}] {{siteCode}} {{siteName}} INC: {{incNumbers}} " +
		"Open: {{jamOpen}} Sisa: {{sisaTtr}} Status: {{status}} Link: {{ticketLink}}"

	got := Render(template, sampleTicket(), renderCtx(now))

	assert.Contains(t, got, "[MAJOR] MIS01 Site Utama")
	assert.Contains(t, got, "INC: INC001, INC002")
	assert.Contains(t, got, "Open: 01/03/2026 08:00 WIB")
	assert.Contains(t, got, "Sisa: 5 jam")
	assert.Contains(t, got, "Status: On Progress")
	assert.Contains(t, got, "Link: https://sitiket.example.com/ticket/t-1")
}

func TestRenderCoordinates(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	got := Render("{{koordinat}} | {{mapsLink}}", sampleTicket(), renderCtx(now))
	assert.Equal(t, "0.507123, 101.447890 | https://www.google.com/maps?q=0.507123,101.447890", got)
}

func TestRenderMissingValues(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	ticket := sampleTicket()
	ticket.Latitude = nil
	ticket.Longitude = nil
	ticket.LokasiText = ""

	got := Render("K:{{koordinat}} M:{{mapsLink}} L:{{lokasiText}}", ticket, renderCtx(now))
	assert.Equal(t, "K: M: L:", got, "missing values render as empty strings")
}

func TestRenderUnknownTokenPassesThrough(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	got := Render("{{kategori}} {{unknownToken}}", sampleTicket(), renderCtx(now))
	assert.Equal(t, "MAJOR {{unknownToken}}", got)
}

func TestRenderDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	ticket := sampleTicket()
	template := "{{incNumbers}} {{sisaTtr}} {{currentTime}}"

	first := Render(template, ticket, renderCtx(now))
	second := Render(template, ticket, renderCtx(now))
	assert.Equal(t, first, second, "same ticket and now give the same message")
	assert.Contains(t, first, "01/03/2026 11:00 WIB")
}

func TestSisaTTRLabel(t *testing.T) {
	assert.Equal(t, "4.5 jam", SisaTTRLabel(4.5))
	assert.Equal(t, "4.6 jam", SisaTTRLabel(4.56))
	assert.Equal(t, "5 jam", SisaTTRLabel(5.0))
	assert.Equal(t, "-2 jam (OVERDUE)", SisaTTRLabel(-2))
	assert.Equal(t, "0 jam", SisaTTRLabel(0))
}

func TestRenderOverdueLabel(t *testing.T) {
	// Two hours past an 8h target.
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	got := Render("{{sisaTtr}}", sampleTicket(), renderCtx(now))
	assert.Equal(t, "-2 jam (OVERDUE)", got)
}
