package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copconnect/reporting-service/internal/api/dto"
	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/service"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// AuthHandler serves registration, login and the officer directory.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	creds, err := parseCredentials(c)
	if err != nil {
		return err
	}
	result, err := h.service.Register(c.UserContext(), creds)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		PrincipalID: result.Principal.ID,
		Token:       result.Token,
		ExpiresAt:   result.ExpiresAt,
	})
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	creds, err := parseCredentials(c)
	if err != nil {
		return err
	}
	result, err := h.service.Login(c.UserContext(), creds)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Principal: dto.NewPrincipalResponse(*result.Principal),
	})
}

// ListPolice GET /users/police.
func (h *AuthHandler) ListPolice(c *fiber.Ctx) error {
	officers, err := h.service.ListPolice(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PrincipalResponse, 0, len(officers))
	for _, o := range officers {
		items = append(items, dto.NewPrincipalResponse(o))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseCredentials(c *fiber.Ctx) (domain.Credentials, error) {
	var req dto.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	return req.Credentials()
}
