package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/copconnect/reporting-service/internal/api/dto"
	"github.com/copconnect/reporting-service/internal/service"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// FAQHandler serves the FAQ catalogue.
type FAQHandler struct {
	service *service.FAQService
}

// NewFAQHandler constructs handler.
func NewFAQHandler(faqService *service.FAQService) *FAQHandler {
	return &FAQHandler{service: faqService}
}

// List GET /faqs.
func (h *FAQHandler) List(c *fiber.Ctx) error {
	faqs, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.FAQResponse, 0, len(faqs))
	for _, f := range faqs {
		items = append(items, dto.FAQResponse{ID: f.ID, Question: f.Question, Answer: f.Answer})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Answer GET /faqs/:question.
func (h *FAQHandler) Answer(c *fiber.Ctx) error {
	question, err := url.PathUnescape(c.Params("question"))
	if err != nil {
		return apperrors.NewValidationError("invalid question", nil)
	}
	answer, err := h.service.Answer(c.UserContext(), question)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"question": question, "answer": answer})
}

// Create POST /faqs.
func (h *FAQHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	faq, err := h.service.Create(c.UserContext(), req.Question, req.Answer)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.FAQResponse{ID: faq.ID, Question: faq.Question, Answer: faq.Answer},
	})
}
