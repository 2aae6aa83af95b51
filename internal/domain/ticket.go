package domain

import "time"

// TicketStatus enumerates lifecycle states for fault tickets.
type TicketStatus string

const (
	StatusOpen                TicketStatus = "OPEN"
	StatusAssigned            TicketStatus = "ASSIGNED"
	StatusOnProgress          TicketStatus = "ONPROGRESS"
	StatusTemporary           TicketStatus = "TEMPORARY"
	StatusWaitingMaterial     TicketStatus = "WAITING_MATERIAL"
	StatusWaitingAccess       TicketStatus = "WAITING_ACCESS"
	StatusWaitingCoordination TicketStatus = "WAITING_COORDINATION"
	StatusClosed              TicketStatus = "CLOSED"
)

// TicketStatuses lists every valid status in display order.
var TicketStatuses = []TicketStatus{
	StatusOpen,
	StatusAssigned,
	StatusOnProgress,
	StatusTemporary,
	StatusWaitingMaterial,
	StatusWaitingAccess,
	StatusWaitingCoordination,
	StatusClosed,
}

var statusLabels = map[TicketStatus]string{
	StatusOpen:                "Open",
	StatusAssigned:            "Assigned",
	StatusOnProgress:          "On Progress",
	StatusTemporary:           "Temporary",
	StatusWaitingMaterial:     "Menunggu Material",
	StatusWaitingAccess:       "Menunggu Akses",
	StatusWaitingCoordination: "Menunggu Koordinasi",
	StatusClosed:              "Closed",
}

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable form used in messages and exports.
func (s TicketStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Compliance indicates whether a closed ticket met its TTR target.
type Compliance string

const (
	Comply    Compliance = "COMPLY"
	NotComply Compliance = "NOT COMPLY"
)

// Ticket is the aggregate for a telecom fault ticket tracked against a
// TTR (time-to-resolution) clock.
type Ticket struct {
	ID         string
	Provider   string
	IncNumbers []string
	TiketTacc  string
	IndukGamas string

	Kategori     string
	JarakKmRange string

	SiteCode       string
	SiteName       string
	NetworkElement string
	LokasiText     string
	Latitude       *float64
	Longitude      *float64

	JamOpen        time.Time
	TTRTargetHours float64
	MaxJamClose    time.Time
	// SisaTtrHours is the last computed remaining-hours value. For live
	// tickets it is recomputed from "now" on read; once the ticket is
	// CLOSED it is frozen at the value captured at close time.
	SisaTtrHours  float64
	TTRRealHours  *float64
	TTRCompliance Compliance

	Status TicketStatus

	AssignedTo  *string
	AssignedAt  *time.Time
	AssignedBy  *string
	TeknisiList []string

	Penyebab       string
	Segmen         string
	IsPermanent    bool
	PermanentNotes string

	ProgressUpdates []ProgressUpdate

	CreatedByAdmin string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PrimaryInc returns the primary external incident reference.
func (t *Ticket) PrimaryInc() string {
	if len(t.IncNumbers) == 0 {
		return ""
	}
	return t.IncNumbers[0]
}

// IsClosed reports whether the ticket reached its terminal state.
func (t *Ticket) IsClosed() bool {
	return t.Status == StatusClosed
}
