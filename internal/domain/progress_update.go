package domain

import "time"

// UpdateSource indicates who authored a progress update.
type UpdateSource string

const (
	SourceSystem UpdateSource = "SYSTEM"
	SourceAdmin  UpdateSource = "ADMIN"
	SourceHD     UpdateSource = "HD"
)

// Valid reports whether the source is one of the known authors.
func (s UpdateSource) Valid() bool {
	switch s {
	case SourceSystem, SourceAdmin, SourceHD:
		return true
	}
	return false
}

// ProgressUpdate is one immutable entry in a ticket's timeline. Entries
// are append-only and displayed newest first.
type ProgressUpdate struct {
	ID                string
	TicketID          string
	Timestamp         time.Time
	Source            UpdateSource
	Message           string
	StatusAfterUpdate *TicketStatus
	CreatedBy         string
	Attachments       []string
}
