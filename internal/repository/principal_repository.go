package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copconnect/reporting-service/internal/domain"
)

// PrincipalRepository stores registered principals. Lookups return pgx.ErrNoRows when nothing matches.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	FindPoliceByName(ctx context.Context, name string) (*domain.Principal, error)
	FindCitizen(ctx context.Context, name, phone string) (*domain.Principal, error)
	FindCommunityByAdminID(ctx context.Context, adminID string) (*domain.Principal, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Principal, error)
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository returns a Postgres-backed implementation.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

const principalColumns = `id, role, name, phone, badge_hash, admin_id, password_hash, created_at`

func (r *principalRepository) Create(ctx context.Context, p *domain.Principal) error {
	const query = `
        INSERT INTO principals (id, role, name, phone, badge_hash, admin_id, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID,
		p.Role,
		p.Name,
		p.Phone,
		p.BadgeHash,
		p.AdminID,
		p.PasswordHash,
	).Scan(&p.CreatedAt)
	return translateWriteError(err)
}

func (r *principalRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals WHERE id=$1`
	return scanPrincipal(r.pool.QueryRow(ctx, query, id))
}

// FindPoliceByName returns the earliest officer registered under name.
func (r *principalRepository) FindPoliceByName(ctx context.Context, name string) (*domain.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals
        WHERE role='police' AND name=$1
        ORDER BY created_at LIMIT 1`
	return scanPrincipal(r.pool.QueryRow(ctx, query, name))
}

func (r *principalRepository) FindCitizen(ctx context.Context, name, phone string) (*domain.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals
        WHERE role='citizen' AND name=$1 AND phone=$2
        ORDER BY created_at LIMIT 1`
	return scanPrincipal(r.pool.QueryRow(ctx, query, name, phone))
}

func (r *principalRepository) FindCommunityByAdminID(ctx context.Context, adminID string) (*domain.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals
        WHERE role='community' AND admin_id=$1
        ORDER BY created_at LIMIT 1`
	return scanPrincipal(r.pool.QueryRow(ctx, query, adminID))
}

func (r *principalRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals WHERE role=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPrincipal(row pgx.Row) (*domain.Principal, error) {
	var p domain.Principal
	if err := row.Scan(
		&p.ID,
		&p.Role,
		&p.Name,
		&p.Phone,
		&p.BadgeHash,
		&p.AdminID,
		&p.PasswordHash,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
