package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/repository"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// FAQService serves canned answers.
type FAQService struct {
	faqs repository.FAQRepository
}

// NewFAQService constructs the service.
func NewFAQService(faqs repository.FAQRepository) *FAQService {
	return &FAQService{faqs: faqs}
}

// List returns every FAQ.
func (s *FAQService) List(ctx context.Context) ([]domain.FAQ, error) {
	faqs, err := s.faqs.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return faqs, nil
}

// Answer returns the answer for an exact question.
func (s *FAQService) Answer(ctx context.Context, question string) (string, error) {
	faq, err := s.faqs.GetByQuestion(ctx, question)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", apperrors.NewNotFound("FAQ", nil)
		}
		return "", apperrors.NewStoreUnavailable(err)
	}
	return faq.Answer, nil
}

// Create adds a new FAQ.
func (s *FAQService) Create(ctx context.Context, question, answer string) (*domain.FAQ, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, apperrors.NewValidationError("question and answer required", nil)
	}

	faq := &domain.FAQ{ID: uuid.NewString(), Question: question, Answer: answer}
	if err := s.faqs.Create(ctx, faq); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("question already exists", nil)
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return faq, nil
}
