package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copconnect/reporting-service/internal/domain"
)

// FAQRepository reads and writes FAQ entries.
type FAQRepository interface {
	Create(ctx context.Context, faq *domain.FAQ) error
	List(ctx context.Context) ([]domain.FAQ, error)
	GetByQuestion(ctx context.Context, question string) (*domain.FAQ, error)
}

type faqRepository struct {
	pool *pgxpool.Pool
}

// NewFAQRepository returns a Postgres-backed implementation.
func NewFAQRepository(pool *pgxpool.Pool) FAQRepository {
	return &faqRepository{pool: pool}
}

func (r *faqRepository) Create(ctx context.Context, faq *domain.FAQ) error {
	const query = `
        INSERT INTO faqs (id, question, answer)
        VALUES ($1, $2, $3)
        RETURNING created_at`
	err := r.pool.QueryRow(ctx, query, faq.ID, faq.Question, faq.Answer).Scan(&faq.CreatedAt)
	return translateWriteError(err)
}

func (r *faqRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	const query = `SELECT id, question, answer, created_at FROM faqs ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FAQ
	for rows.Next() {
		faq, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *faq)
	}
	return out, rows.Err()
}

func (r *faqRepository) GetByQuestion(ctx context.Context, question string) (*domain.FAQ, error) {
	const query = `SELECT id, question, answer, created_at FROM faqs WHERE question=$1`
	return scanFAQ(r.pool.QueryRow(ctx, query, question))
}

func scanFAQ(row pgx.Row) (*domain.FAQ, error) {
	var faq domain.FAQ
	if err := row.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt); err != nil {
		return nil, err
	}
	return &faq, nil
}
