// Package dto defines the JSON shapes exchanged with clients. Field
// names follow the dashboard's existing camelCase contract.
package dto

import (
	"time"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/ttr"
)

// ImportTicketRequest registers a new fault ticket.
type ImportTicketRequest struct {
	Provider       string   `json:"provider"`
	IncNumbers     []string `json:"incNumbers"`
	TiketTacc      string   `json:"tiketTacc"`
	IndukGamas     string   `json:"indukGamas"`
	Kategori       string   `json:"kategori"`
	JarakKmRange   string   `json:"jarakKmRange"`
	SiteCode       string   `json:"siteCode"`
	SiteName       string   `json:"siteName"`
	NetworkElement string   `json:"networkElement"`
	LokasiText     string   `json:"lokasiText"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	JamOpen        time.Time `json:"jamOpen"`
	Segmen         string   `json:"segmen"`
}

// ProgressRequest appends a progress update, optionally changing status.
type ProgressRequest struct {
	Message     string   `json:"message"`
	NewStatus   *string  `json:"newStatus"`
	Attachments []string `json:"attachments"`
	IsPermanent *bool    `json:"isPermanent"`
	Penyebab    string   `json:"penyebab"`
	Notes       string   `json:"notes"`
}

// AssignRequest hands a ticket to a technical assistant.
type AssignRequest struct {
	AssigneeID  string   `json:"assigneeId"`
	TeknisiList []string `json:"teknisiList"`
}

// ProgressUpdateResponse is one timeline entry.
type ProgressUpdateResponse struct {
	ID                string     `json:"id"`
	Timestamp         time.Time  `json:"timestamp"`
	Source            string     `json:"source"`
	Message           string     `json:"message"`
	StatusAfterUpdate *string    `json:"statusAfterUpdate,omitempty"`
	CreatedBy         string     `json:"createdBy,omitempty"`
	Attachments       []string   `json:"attachments,omitempty"`
}

// TicketResponse is the full client view of a ticket, including the
// derived SLA fields computed at response time.
type TicketResponse struct {
	ID             string     `json:"id"`
	Provider       string     `json:"provider"`
	IncNumbers     []string   `json:"incNumbers"`
	TiketTacc      string     `json:"tiketTacc,omitempty"`
	IndukGamas     string     `json:"indukGamas,omitempty"`
	Kategori       string     `json:"kategori"`
	JarakKmRange   string     `json:"jarakKmRange,omitempty"`
	SiteCode       string     `json:"siteCode"`
	SiteName       string     `json:"siteName"`
	NetworkElement string     `json:"networkElement,omitempty"`
	LokasiText     string     `json:"lokasiText,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	JamOpen        time.Time  `json:"jamOpen"`
	TTRTargetHours float64    `json:"ttrTargetHours"`
	MaxJamClose    time.Time  `json:"maxJamClose"`
	SisaTtrHours   float64    `json:"sisaTtrHours"`
	TTRRealHours   *float64   `json:"ttrRealHours,omitempty"`
	TTRCompliance  string     `json:"ttrCompliance,omitempty"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"statusLabel"`
	Severity       string     `json:"severity"`
	DueSoon        bool       `json:"dueSoon"`
	AssignedTo     *string    `json:"assignedTo,omitempty"`
	AssignedAt     *time.Time `json:"assignedAt,omitempty"`
	AssignedBy     *string    `json:"assignedBy,omitempty"`
	TeknisiList    []string   `json:"teknisiList,omitempty"`
	Penyebab       string     `json:"penyebab,omitempty"`
	Segmen         string     `json:"segmen,omitempty"`
	IsPermanent    bool       `json:"isPermanent"`
	PermanentNotes string     `json:"permanentNotes,omitempty"`

	ProgressUpdates []ProgressUpdateResponse `json:"progressUpdates,omitempty"`

	CreatedByAdmin string    `json:"createdByAdmin,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromTicket maps a domain ticket into its response shape. Severity and
// due-soon are derived from the already-computed remaining hours; a
// CLOSED ticket is never flagged, its frozen clock notwithstanding.
func FromTicket(t *domain.Ticket, thresholds domain.TTRThresholds) TicketResponse {
	severity := ttr.SeveritySafe
	if !t.IsClosed() {
		severity = ttr.Classify(t.SisaTtrHours, thresholds)
	}
	resp := TicketResponse{
		ID:             t.ID,
		Provider:       t.Provider,
		IncNumbers:     t.IncNumbers,
		TiketTacc:      t.TiketTacc,
		IndukGamas:     t.IndukGamas,
		Kategori:       t.Kategori,
		JarakKmRange:   t.JarakKmRange,
		SiteCode:       t.SiteCode,
		SiteName:       t.SiteName,
		NetworkElement: t.NetworkElement,
		LokasiText:     t.LokasiText,
		Latitude:       t.Latitude,
		Longitude:      t.Longitude,
		JamOpen:        t.JamOpen,
		TTRTargetHours: t.TTRTargetHours,
		MaxJamClose:    t.MaxJamClose,
		SisaTtrHours:   t.SisaTtrHours,
		TTRRealHours:   t.TTRRealHours,
		TTRCompliance:  string(t.TTRCompliance),
		Status:         string(t.Status),
		StatusLabel:    t.Status.Label(),
		Severity:       string(severity),
		DueSoon:        !t.IsClosed() && ttr.IsDueSoon(t.SisaTtrHours, thresholds),
		AssignedTo:     t.AssignedTo,
		AssignedAt:     t.AssignedAt,
		AssignedBy:     t.AssignedBy,
		TeknisiList:    t.TeknisiList,
		Penyebab:       t.Penyebab,
		Segmen:         t.Segmen,
		IsPermanent:    t.IsPermanent,
		PermanentNotes: t.PermanentNotes,
		CreatedByAdmin: t.CreatedByAdmin,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	for i := range t.ProgressUpdates {
		resp.ProgressUpdates = append(resp.ProgressUpdates, fromProgress(&t.ProgressUpdates[i]))
	}
	return resp
}

// FromTickets maps a slice preserving order.
func FromTickets(tickets []domain.Ticket, thresholds domain.TTRThresholds) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, FromTicket(&tickets[i], thresholds))
	}
	return out
}

func fromProgress(u *domain.ProgressUpdate) ProgressUpdateResponse {
	resp := ProgressUpdateResponse{
		ID:          u.ID,
		Timestamp:   u.Timestamp,
		Source:      string(u.Source),
		Message:     u.Message,
		CreatedBy:   u.CreatedBy,
		Attachments: u.Attachments,
	}
	if u.StatusAfterUpdate != nil {
		status := string(*u.StatusAfterUpdate)
		resp.StatusAfterUpdate = &status
	}
	return resp
}
