package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copconnect/reporting-service/internal/domain"
)

// ReportFilter narrows report listings.
type ReportFilter struct {
	Status *domain.ReportStatus
}

// ReportRepository persists incident reports. Locations are stored as JSONB documents.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, report_type, description, location, filed_by, phone, status, filed_at, updated_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	location, err := json.Marshal(report.Location)
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}

	const query = `
        INSERT INTO reports (id, report_type, description, location, filed_by, phone, status, filed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		report.ID,
		report.ReportType,
		report.Description,
		location,
		report.FiledBy,
		report.Phone,
		report.Status,
		report.FiledAt,
	).Scan(&report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	return scanReport(r.pool.QueryRow(ctx, query, id))
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status=$1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY filed_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *report)
	}
	return out, rows.Err()
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	query := `UPDATE reports SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + reportColumns
	return scanReport(r.pool.QueryRow(ctx, query, status, id))
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report   domain.Report
		location []byte
	)
	if err := row.Scan(
		&report.ID,
		&report.ReportType,
		&report.Description,
		&location,
		&report.FiledBy,
		&report.Phone,
		&report.Status,
		&report.FiledAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(location, &report.Location); err != nil {
		return nil, fmt.Errorf("decode location: %w", err)
	}
	return &report, nil
}
