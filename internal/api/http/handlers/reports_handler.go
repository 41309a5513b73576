package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copconnect/reporting-service/internal/api/dto"
	"github.com/copconnect/reporting-service/internal/auth"
	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/events"
	"github.com/copconnect/reporting-service/internal/service"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// ReportsHandler manages incident report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// File POST /reports. Open to anonymous callers; a signed-in caller's name and phone fill blank fields.
func (h *ReportsHandler) File(c *fiber.Ctx) error {
	var req dto.FileReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	actor := events.Actor{Role: domain.RoleAnonymous}
	if claims, ok := auth.ClaimsFromContext(c); ok {
		actor = events.Actor{Role: claims.Role, PrincipalID: claims.PrincipalID}
		if req.FiledBy == "" {
			req.FiledBy = claims.Name
		}
		if req.FiledBy == "" {
			req.FiledBy = claims.PrincipalID
		}
		if req.Phone == "" {
			req.Phone = claims.Phone
		}
	}

	report, err := h.service.FileReport(c.UserContext(), actor, service.FileReportInput{
		ReportType:  req.ReportType,
		Description: req.Description,
		Location:    req.Location,
		FiledBy:     req.FiledBy,
		Phone:       req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReportResponse(*report)})
}

// List GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.service.ListReports(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	items := make([]dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		items = append(items, dto.NewReportResponse(r))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus PATCH /reports/:id/status.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	actor := events.Actor{Role: claims.Role, PrincipalID: claims.PrincipalID}
	report, err := h.service.UpdateStatus(c.UserContext(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(*report)})
}
