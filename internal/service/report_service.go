package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/events"
	"github.com/copconnect/reporting-service/internal/repository"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// FileReportInput carries a new incident report.
type FileReportInput struct {
	ReportType  string
	Description string
	Location    domain.Location
	FiledBy     string
	Phone       string
}

// ReportService files and tracks incident reports.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs the service. dispatcher may be nil.
func NewReportService(reports repository.ReportRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{reports: reports, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// FileReport validates and stores a report in the Pending state.
func (s *ReportService) FileReport(ctx context.Context, actor events.Actor, input FileReportInput) (*domain.Report, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"reportType", input.ReportType},
		{"description", input.Description},
		{"filedBy", input.FiledBy},
		{"phone", input.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if !input.Location.IsPoint() && strings.TrimSpace(input.Location.Address) == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError(
			"all fields are required: reportType, description, location, filedBy, phone",
			map[string]any{"missing": missing},
		)
	}
	if err := input.Location.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	report := &domain.Report{
		ID:          uuid.NewString(),
		ReportType:  strings.TrimSpace(input.ReportType),
		Description: strings.TrimSpace(input.Description),
		Location:    input.Location,
		FiledBy:     input.FiledBy,
		Phone:       input.Phone,
		Status:      domain.ReportStatusPending,
		FiledAt:     s.now().UTC(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventReportFiled,
		ReportID: report.ID,
		Actor:    actor,
		Payload:  events.ReportFiledPayload{ReportType: report.ReportType, Location: report.Location},
	})
	return report, nil
}

// ListReports returns reports newest first, optionally filtered by status.
func (s *ReportService) ListReports(ctx context.Context, status string) ([]domain.Report, error) {
	filter := repository.ReportFilter{}
	if status != "" {
		st := domain.ReportStatus(status)
		if !st.Valid() {
			return nil, apperrors.NewValidationError("unknown report status", map[string]any{"status": status})
		}
		filter.Status = &st
	}

	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return reports, nil
}

// UpdateStatus moves a report to status.
func (s *ReportService) UpdateStatus(ctx context.Context, actor events.Actor, id, status string) (*domain.Report, error) {
	next := domain.ReportStatus(status)
	if !next.Valid() {
		return nil, apperrors.NewValidationError("unknown report status", map[string]any{"status": status})
	}

	current, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("report", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if current.Status == next {
		return current, nil
	}

	updated, err := s.reports.UpdateStatus(ctx, id, next)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("report", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventReportStatusChanged,
		ReportID: id,
		Actor:    actor,
		Payload:  events.ReportStatusChangedPayload{OldStatus: current.Status, NewStatus: next},
	})
	return updated, nil
}

// publish never fails the caller; the report is already stored.
func (s *ReportService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("report_id", event.ReportID),
			zap.Error(err),
		)
	}
}
