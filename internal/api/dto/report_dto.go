package dto

import (
	"time"

	"github.com/copconnect/reporting-service/internal/domain"
)

// FileReportRequest payload for POST /reports.
type FileReportRequest struct {
	ReportType  string          `json:"reportType"`
	Description string          `json:"description"`
	Location    domain.Location `json:"location"`
	FiledBy     string          `json:"filedBy"`
	Phone       string          `json:"phone"`
}

// UpdateReportStatusRequest payload for PATCH /reports/:id/status.
type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}

// ReportResponse is the wire form of a report.
type ReportResponse struct {
	ID          string              `json:"id"`
	ReportType  string              `json:"reportType"`
	Description string              `json:"description"`
	Location    domain.Location     `json:"location"`
	FiledBy     string              `json:"filedBy"`
	Phone       string              `json:"phone"`
	Status      domain.ReportStatus `json:"status"`
	FiledAt     time.Time           `json:"filedAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// NewReportResponse maps a domain report.
func NewReportResponse(r domain.Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		ReportType:  r.ReportType,
		Description: r.Description,
		Location:    r.Location,
		FiledBy:     r.FiledBy,
		Phone:       r.Phone,
		Status:      r.Status,
		FiledAt:     r.FiledAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// CreateFAQRequest payload for POST /faqs.
type CreateFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQResponse is the wire form of an FAQ.
type FAQResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
