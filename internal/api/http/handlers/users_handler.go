package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sitiket/tiketops/internal/api/dto"
	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/service"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// UsersHandler exposes authentication and account management.
type UsersHandler struct {
	auth *service.AuthService
}

func NewUsersHandler(auth *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: auth}
}

// Login verifies credentials and issues a token.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.FromUser(result.User),
	}})
}

// Create provisions an account. Admin only.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}

	user, err := h.auth.CreateUser(c.UserContext(), service.CreateUserInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Phone:    req.Phone,
		Area:     req.Area,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromUser(user)})
}

// List returns every account. Admin only.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUsers(users)})
}

// SetActive enables or disables an account. Admin only.
func (h *UsersHandler) SetActive(c *fiber.Ctx) error {
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Invalid("malformed request body", nil)
	}

	user, err := h.auth.SetActive(c.UserContext(), c.Params("id"), req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(user)})
}
