// Package service implements the application use cases on top of the
// repositories, the settings store and the pure rule packages.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/events"
	"github.com/sitiket/tiketops/internal/query"
	"github.com/sitiket/tiketops/internal/repository"
	"github.com/sitiket/tiketops/internal/settings"
	"github.com/sitiket/tiketops/internal/ttr"
	"github.com/sitiket/tiketops/internal/whatsapp"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// FallbackTTRHours applies when no configured category target matches.
const FallbackTTRHours = 24

// TicketDependencies bundles the collaborators of TicketService.
type TicketDependencies struct {
	Tickets    *repository.TicketRepository
	Progress   *repository.ProgressRepository
	Settings   *settings.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BaseURL    string
	Now        func() time.Time
}

// TicketImport is the payload accepted when registering a new fault
// ticket.
type TicketImport struct {
	Provider       string   `validate:"required"`
	IncNumbers     []string `validate:"required,min=1"`
	TiketTacc      string
	IndukGamas     string
	Kategori       string `validate:"required"`
	JarakKmRange   string
	SiteCode       string `validate:"required"`
	SiteName       string
	NetworkElement string
	LokasiText     string
	Latitude       *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `validate:"omitempty,gte=-180,lte=180"`
	JamOpen        time.Time `validate:"required"`
	Segmen         string
	CreatedByAdmin string
}

// ProgressInput is one progress entry, optionally moving the ticket to
// a new status.
type ProgressInput struct {
	Message     string `validate:"required"`
	Source      domain.UpdateSource
	NewStatus   *domain.TicketStatus
	CreatedBy   string
	Attachments []string
	IsPermanent *bool
	Penyebab    string
	Notes       string
}

// ListQuery combines filtering and sorting for a listing request.
type ListQuery struct {
	Criteria query.Criteria
	SortMode query.SortMode
}

type TicketService struct {
	deps     TicketDependencies
	validate *validator.Validate
}

func NewTicketService(deps TicketDependencies) *TicketService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &TicketService{deps: deps, validate: validator.New()}
}

// ImportTicket validates the payload, derives the TTR fields from the
// current settings and persists the new ticket.
func (s *TicketService) ImportTicket(ctx context.Context, in TicketImport) (*domain.Ticket, error) {
	if err := s.validateImport(in); err != nil {
		return nil, err
	}

	now := s.deps.Now()
	cfg := s.deps.Settings.Settings()
	target := CategoryTarget(cfg.CategoryTTR, in.Kategori)

	t := &domain.Ticket{
		ID:             uuid.NewString(),
		Provider:       in.Provider,
		IncNumbers:     in.IncNumbers,
		TiketTacc:      in.TiketTacc,
		IndukGamas:     in.IndukGamas,
		Kategori:       in.Kategori,
		JarakKmRange:   in.JarakKmRange,
		SiteCode:       in.SiteCode,
		SiteName:       in.SiteName,
		NetworkElement: in.NetworkElement,
		LokasiText:     in.LokasiText,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		JamOpen:        in.JamOpen,
		TTRTargetHours: target,
		MaxJamClose:    in.JamOpen.Add(time.Duration(target * float64(time.Hour))),
		Status:         domain.StatusOpen,
		Segmen:         in.Segmen,
		CreatedByAdmin: in.CreatedByAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	t.SisaTtrHours = ttr.RemainingHours(t, now)

	if err := s.deps.Tickets.Create(ctx, t); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.publishEvent(ctx, events.TicketImported, t)
	s.deps.Logger.Info("ticket imported",
		zap.String("ticket_id", t.ID),
		zap.String("kategori", t.Kategori),
		zap.Float64("ttr_target_hours", t.TTRTargetHours),
	)
	return t, nil
}

func (s *TicketService) validateImport(in TicketImport) error {
	details := map[string]string{}
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = "failed rule " + fe.Tag()
			}
		} else {
			return apperrors.Invalid("invalid ticket payload", nil)
		}
	}
	for _, inc := range in.IncNumbers {
		if !strings.HasPrefix(inc, "INC") {
			details["IncNumbers"] = "every INC number must start with INC"
			break
		}
	}
	opts := s.deps.Settings.Options()
	if in.Kategori != "" && !settings.Allowed(opts.Kategori, in.Kategori) {
		details["Kategori"] = "unknown kategori"
	}
	if len(details) > 0 {
		return apperrors.Invalid("invalid ticket payload", details)
	}
	return nil
}

// GetTicket loads a ticket together with its progress history.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := s.deps.Tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	updates, err := s.deps.Progress.ListByTicket(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	t.ProgressUpdates = updates
	t.SisaTtrHours = ttr.RemainingHours(t, s.deps.Now())
	return t, nil
}

// ListTickets fetches a coarse page from storage, then applies the
// in-memory search filter and sort.
func (s *TicketService) ListTickets(ctx context.Context, q ListQuery) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		From: q.Criteria.DateFrom,
		To:   q.Criteria.DateTo,
	}
	if q.Criteria.Status != "" && q.Criteria.Status != query.All {
		filter.Status = q.Criteria.Status
	}

	tickets, err := s.deps.Tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	now := s.deps.Now()
	for i := range tickets {
		tickets[i].SisaTtrHours = ttr.RemainingHours(&tickets[i], now)
	}
	filtered := query.Filter(tickets, q.Criteria)
	return query.Sort(filtered, q.SortMode, now), nil
}

// AddProgress appends an update and applies any requested status
// change. A closed ticket accepts no further updates.
func (s *TicketService) AddProgress(ctx context.Context, ticketID string, in ProgressInput) (*domain.Ticket, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.Invalid("invalid progress payload", nil)
	}
	if !in.Source.Valid() {
		return nil, apperrors.Invalid("invalid progress payload", map[string]string{"Source": "unknown update source"})
	}

	t, err := s.deps.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if t.IsClosed() {
		return nil, apperrors.Conflict("ticket already closed")
	}

	now := s.deps.Now()
	update := &domain.ProgressUpdate{
		ID:                uuid.NewString(),
		TicketID:          t.ID,
		Timestamp:         now,
		Source:            in.Source,
		Message:           in.Message,
		StatusAfterUpdate: in.NewStatus,
		CreatedBy:         in.CreatedBy,
		Attachments:       in.Attachments,
	}

	statusChanged := false
	closed := false
	if in.NewStatus != nil && *in.NewStatus != t.Status {
		if !in.NewStatus.Valid() {
			return nil, apperrors.Invalid("invalid progress payload", map[string]string{"NewStatus": "unknown status"})
		}
		t.Status = *in.NewStatus
		statusChanged = true
		closed = t.Status == domain.StatusClosed
	}
	if in.Penyebab != "" {
		t.Penyebab = in.Penyebab
	}
	if in.IsPermanent != nil {
		t.IsPermanent = *in.IsPermanent
	}
	if in.Notes != "" {
		t.PermanentNotes = in.Notes
	}

	if closed {
		real := ttr.TotalTTR(t.JamOpen, now)
		t.TTRRealHours = &real
		// Freeze the clock at close time; later reads return this value.
		t.SisaTtrHours = ttr.Deadline(t).Sub(now).Hours()
		if compliance, ok := ttr.ComputeCompliance(t); ok {
			t.TTRCompliance = compliance
		}
	} else {
		t.SisaTtrHours = ttr.RemainingHours(t, now)
	}
	t.UpdatedAt = now

	if err := s.deps.Progress.Append(ctx, update); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if err := s.deps.Tickets.Update(ctx, t); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.publishEvent(ctx, events.TicketProgressAdded, t)
	if statusChanged {
		s.publishEvent(ctx, events.TicketStatusChanged, t)
	}
	if closed {
		s.publishEvent(ctx, events.TicketClosed, t)
		s.deps.Logger.Info("ticket closed",
			zap.String("ticket_id", t.ID),
			zap.Float64p("ttr_real_hours", t.TTRRealHours),
			zap.String("compliance", string(t.TTRCompliance)),
		)
	}
	return t, nil
}

// AssignTicket hands a ticket to a technical assistant and moves an
// OPEN ticket to ASSIGNED.
func (s *TicketService) AssignTicket(ctx context.Context, ticketID, assigneeID, assignedBy string, teknisi []string) (*domain.Ticket, error) {
	t, err := s.deps.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if t.IsClosed() {
		return nil, apperrors.Conflict("ticket already closed")
	}

	now := s.deps.Now()
	t.AssignedTo = &assigneeID
	t.AssignedAt = &now
	t.AssignedBy = &assignedBy
	if len(teknisi) > 0 {
		t.TeknisiList = teknisi
	}
	if t.Status == domain.StatusOpen {
		t.Status = domain.StatusAssigned
	}
	t.UpdatedAt = now

	if err := s.deps.Tickets.Update(ctx, t); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.publishEvent(ctx, events.TicketAssigned, t)
	return t, nil
}

// DeleteTicket removes a ticket and its history.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.deps.Tickets.Delete(ctx, id); err != nil {
		return apperrors.ToDomainError(err)
	}
	return nil
}

// MessageKind selects which configured WhatsApp template to render.
type MessageKind string

const (
	MessageShare  MessageKind = "share"
	MessageUpdate MessageKind = "update"
)

// RenderWhatsApp renders the requested template against a ticket.
func (s *TicketService) RenderWhatsApp(ctx context.Context, ticketID string, kind MessageKind) (string, error) {
	t, err := s.deps.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return "", apperrors.ToDomainError(err)
	}

	templates := s.deps.Settings.Settings().WhatsAppTemplates
	var template string
	switch kind {
	case MessageShare:
		template = templates.ShareTemplate
	case MessageUpdate:
		template = templates.UpdateTemplate
	default:
		return "", apperrors.Invalid("unknown message kind", nil)
	}

	return whatsapp.Render(template, t, whatsapp.Context{
		Now:           s.deps.Now(),
		TicketBaseURL: s.deps.BaseURL,
	}), nil
}

// CategoryTarget resolves the TTR target for a kategori label. Matching
// is case-insensitive on key containment so "MAJOR" and "MINOR [8]"
// both resolve without exact-label configuration.
func CategoryTarget(categoryTTR map[string]float64, kategori string) float64 {
	lowered := strings.ToLower(kategori)
	best := ""
	for key := range categoryTTR {
		if strings.Contains(lowered, strings.ToLower(key)) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return FallbackTTRHours
	}
	return categoryTTR[best]
}

func (s *TicketService) publishEvent(ctx context.Context, eventType events.EventType, payload any) {
	if s.deps.Dispatcher == nil {
		return
	}
	_ = s.deps.Dispatcher.Publish(ctx, events.Event{Type: eventType, Payload: payload})
}
