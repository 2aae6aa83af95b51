package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/events"
	"github.com/sitiket/tiketops/internal/settings"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// SettingsHandler exposes the runtime configuration endpoints.
type SettingsHandler struct {
	store      *settings.Store
	dispatcher events.Dispatcher
}

func NewSettingsHandler(store *settings.Store, dispatcher events.Dispatcher) *SettingsHandler {
	return &SettingsHandler{store: store, dispatcher: dispatcher}
}

// Get returns the current settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.store.Settings()})
}

// Update replaces the settings as a whole object.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var payload domain.AppSettings
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}
	if err := h.store.SaveSettings(c.UserContext(), payload); err != nil {
		return apperrors.ToDomainError(err)
	}
	_ = h.dispatcher.Publish(c.UserContext(), events.Event{Type: events.SettingsUpdated})
	return c.JSON(fiber.Map{"data": h.store.Settings()})
}

// Reset restores the built-in defaults.
func (h *SettingsHandler) Reset(c *fiber.Ctx) error {
	if err := h.store.ResetSettings(c.UserContext()); err != nil {
		return apperrors.ToDomainError(err)
	}
	_ = h.dispatcher.Publish(c.UserContext(), events.Event{Type: events.SettingsUpdated})
	return c.JSON(fiber.Map{"data": h.store.Settings()})
}

// GetOptions returns the dropdown enumerations.
func (h *SettingsHandler) GetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.store.Options()})
}

// UpdateOptions replaces the dropdown enumerations.
func (h *SettingsHandler) UpdateOptions(c *fiber.Ctx) error {
	var payload domain.DropdownOptions
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}
	if err := h.store.SaveOptions(c.UserContext(), payload); err != nil {
		return apperrors.ToDomainError(err)
	}
	_ = h.dispatcher.Publish(c.UserContext(), events.Event{Type: events.OptionsUpdated})
	return c.JSON(fiber.Map{"data": h.store.Options()})
}
