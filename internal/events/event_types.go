package events

import (
	"time"

	"github.com/copconnect/reporting-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportFiled         EventType = "report_filed"
	EventReportStatusChanged EventType = "report_status_changed"
)

// Actor identifies who caused an event. Anonymous filings carry RoleAnonymous and no id.
type Actor struct {
	Role        domain.Role `json:"role"`
	PrincipalID string      `json:"principal_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportFiledPayload payload.
type ReportFiledPayload struct {
	ReportType string          `json:"report_type"`
	Location   domain.Location `json:"location"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	OldStatus domain.ReportStatus `json:"old_status"`
	NewStatus domain.ReportStatus `json:"new_status"`
}
