// Package handlers contains the fiber endpoint implementations.
package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sitiket/tiketops/internal/api/dto"
	"github.com/sitiket/tiketops/internal/auth"
	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/query"
	"github.com/sitiket/tiketops/internal/service"
	"github.com/sitiket/tiketops/internal/settings"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// TicketsHandler exposes the ticket lifecycle endpoints.
type TicketsHandler struct {
	tickets  *service.TicketService
	settings *settings.Store
}

func NewTicketsHandler(tickets *service.TicketService, store *settings.Store) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, settings: store}
}

// Import registers a new fault ticket.
func (h *TicketsHandler) Import(c *fiber.Ctx) error {
	var req dto.ImportTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}

	createdBy := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		createdBy = principal.User.Username
	}

	t, err := h.tickets.ImportTicket(c.UserContext(), service.TicketImport{
		Provider:       req.Provider,
		IncNumbers:     req.IncNumbers,
		TiketTacc:      req.TiketTacc,
		IndukGamas:     req.IndukGamas,
		Kategori:       req.Kategori,
		JarakKmRange:   req.JarakKmRange,
		SiteCode:       req.SiteCode,
		SiteName:       req.SiteName,
		NetworkElement: req.NetworkElement,
		LokasiText:     req.LokasiText,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		JamOpen:        req.JamOpen,
		Segmen:         req.Segmen,
		CreatedByAdmin: createdBy,
	})
	if err != nil {
		return err
	}

	thresholds := h.settings.Settings().TTRThresholds
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(t, thresholds)})
}

// List returns tickets after filtering and sorting.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	criteria := query.Criteria{
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		Compliance:   c.Query("compliance"),
		Kategori:     c.Query("kategori"),
		JarakKmRange: c.Query("jarak"),
	}
	if from, ok := parseTime(c.Query("from")); ok {
		criteria.DateFrom = &from
	}
	if to, ok := parseTime(c.Query("to")); ok {
		criteria.DateTo = &to
	}

	tickets, err := h.tickets.ListTickets(c.UserContext(), service.ListQuery{
		Criteria: criteria,
		SortMode: query.SortMode(c.Query("sort", string(query.SortTTR))),
	})
	if err != nil {
		return err
	}

	thresholds := h.settings.Settings().TTRThresholds
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets, thresholds)})
}

// Get returns one ticket with its progress history.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	t, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	thresholds := h.settings.Settings().TTRThresholds
	return c.JSON(fiber.Map{"data": dto.FromTicket(t, thresholds)})
}

// AddProgress appends an update to a live ticket.
func (h *TicketsHandler) AddProgress(c *fiber.Ctx) error {
	var req dto.ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}

	in := service.ProgressInput{
		Message:     req.Message,
		Source:      domain.SourceAdmin,
		Attachments: req.Attachments,
		IsPermanent: req.IsPermanent,
		Penyebab:    req.Penyebab,
		Notes:       req.Notes,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		in.CreatedBy = principal.User.Username
		if principal.Role == domain.RoleHD {
			in.Source = domain.SourceHD
		}
	}
	if req.NewStatus != nil {
		status := domain.TicketStatus(*req.NewStatus)
		in.NewStatus = &status
	}

	t, err := h.tickets.AddProgress(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	thresholds := h.settings.Settings().TTRThresholds
	return c.JSON(fiber.Map{"data": dto.FromTicket(t, thresholds)})
}

// Assign hands a ticket to a technical assistant.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}

	assignedBy := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		assignedBy = principal.User.Username
	}

	t, err := h.tickets.AssignTicket(c.UserContext(), c.Params("id"), req.AssigneeID, assignedBy, req.TeknisiList)
	if err != nil {
		return err
	}
	thresholds := h.settings.Settings().TTRThresholds
	return c.JSON(fiber.Map{"data": dto.FromTicket(t, thresholds)})
}

// Close moves a ticket to its terminal state via a closing progress
// entry.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	var req dto.ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}
	if req.Message == "" {
		req.Message = "Ticket closed"
	}

	closed := domain.StatusClosed
	in := service.ProgressInput{
		Message:     req.Message,
		Source:      domain.SourceAdmin,
		NewStatus:   &closed,
		IsPermanent: req.IsPermanent,
		Penyebab:    req.Penyebab,
		Notes:       req.Notes,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		in.CreatedBy = principal.User.Username
		if principal.Role == domain.RoleHD {
			in.Source = domain.SourceHD
		}
	}

	t, err := h.tickets.AddProgress(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	thresholds := h.settings.Settings().TTRThresholds
	return c.JSON(fiber.Map{"data": dto.FromTicket(t, thresholds)})
}

// Delete removes a ticket.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.tickets.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// WhatsApp renders the share or update message for a ticket.
func (h *TicketsHandler) WhatsApp(c *fiber.Ctx) error {
	kind := service.MessageKind(c.Query("kind", string(service.MessageShare)))
	message, err := h.tickets.RenderWhatsApp(c.UserContext(), c.Params("id"), kind)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": message}})
}

func parseTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
