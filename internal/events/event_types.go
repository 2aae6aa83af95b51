package events

// EventType names a category of domain event.
type EventType string

const (
	TicketImported      EventType = "ticket_imported"
	TicketProgressAdded EventType = "ticket_progress_added"
	TicketStatusChanged EventType = "ticket_status_changed"
	TicketAssigned      EventType = "ticket_assigned"
	TicketClosed        EventType = "ticket_closed"
	SettingsUpdated     EventType = "settings_updated"
	OptionsUpdated      EventType = "options_updated"
)

// Event is a named payload delivered synchronously to subscribers.
type Event struct {
	Type    EventType
	Payload any
}
