package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/copconnect/reporting-service/internal/domain"
)

const faqKeyPrefix = "faq:answer:"

type cachedFAQRepository struct {
	inner  FAQRepository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFAQRepository caches question lookups in front of inner.
// Cache failures are logged and the lookup falls through to inner.
func NewCachedFAQRepository(inner FAQRepository, cache Cache, ttl time.Duration, logger *zap.Logger) FAQRepository {
	if cache == nil || ttl <= 0 {
		return inner
	}
	return &cachedFAQRepository{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func faqKey(question string) string {
	return faqKeyPrefix + question
}

func (r *cachedFAQRepository) Create(ctx context.Context, faq *domain.FAQ) error {
	if err := r.inner.Create(ctx, faq); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, faqKey(faq.Question)); err != nil {
		r.logger.Warn("faq cache invalidate failed", zap.String("question", faq.Question), zap.Error(err))
	}
	return nil
}

func (r *cachedFAQRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	return r.inner.List(ctx)
}

func (r *cachedFAQRepository) GetByQuestion(ctx context.Context, question string) (*domain.FAQ, error) {
	key := faqKey(question)

	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("faq cache read failed", zap.String("question", question), zap.Error(err))
	} else if ok {
		var faq domain.FAQ
		if err := json.Unmarshal(raw, &faq); err == nil {
			return &faq, nil
		}
	}

	faq, err := r.inner.GetByQuestion(ctx, question)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(faq); err == nil {
		if err := r.cache.Set(ctx, key, encoded, r.ttl); err != nil {
			r.logger.Warn("faq cache write failed", zap.String("question", question), zap.Error(err))
		}
	}
	return faq, nil
}
