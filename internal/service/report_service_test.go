package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/events"
	"github.com/copconnect/reporting-service/internal/repository/repotest"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

func ptr(f float64) *float64 { return &f }

func validInput() FileReportInput {
	return FileReportInput{
		ReportType:  "theft",
		Description: "Bicycle stolen outside the library",
		Location:    domain.Location{Lat: ptr(18.52), Lng: ptr(73.85)},
		FiledBy:     "anon-123",
		Phone:       "9990001111",
	}
}

func TestFileReport(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewReports()
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventReportFiled, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	svc := NewReportService(store, dispatcher, nil)
	report, err := svc.FileReport(ctx, events.Actor{Role: domain.RoleAnonymous}, validInput())
	if err != nil {
		t.Fatalf("FileReport: %v", err)
	}
	if report.Status != domain.ReportStatusPending || report.ID == "" || report.FiledAt.IsZero() {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(received) != 1 || received[0].ReportID != report.ID || received[0].Actor.Role != domain.RoleAnonymous {
		t.Fatalf("unexpected events %+v", received)
	}
}

func TestFileReportValidation(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		mutate func(*FileReportInput)
	}{
		{"missing type", func(in *FileReportInput) { in.ReportType = "" }},
		{"missing description", func(in *FileReportInput) { in.Description = " " }},
		{"missing phone", func(in *FileReportInput) { in.Phone = "" }},
		{"missing filer", func(in *FileReportInput) { in.FiledBy = "" }},
		{"missing location", func(in *FileReportInput) { in.Location = domain.Location{} }},
		{"half location", func(in *FileReportInput) { in.Location = domain.Location{Lat: ptr(1)} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := NewReportService(repotest.NewReports(), nil, nil).FileReport(ctx, events.Actor{}, in)
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFileReportSurvivesNotificationFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventReportFiled, func(context.Context, events.Event) error {
		return errors.New("redis unavailable")
	})
	svc := NewReportService(repotest.NewReports(), dispatcher, nil)
	if _, err := svc.FileReport(context.Background(), events.Actor{}, validInput()); err != nil {
		t.Fatalf("notification failure must not fail filing: %v", err)
	}
}

func TestListAndUpdateReports(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewReports()
	dispatcher := events.NewInMemoryDispatcher()
	var changes []events.ReportStatusChangedPayload
	dispatcher.Subscribe(events.EventReportStatusChanged, func(_ context.Context, e events.Event) error {
		changes = append(changes, e.Payload.(events.ReportStatusChangedPayload))
		return nil
	})

	svc := NewReportService(store, dispatcher, nil)
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		r, err := svc.FileReport(ctx, events.Actor{}, validInput())
		if err != nil {
			t.Fatalf("FileReport: %v", err)
		}
		ids = append(ids, r.ID)
	}

	all, err := svc.ListReports(ctx, "")
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(all) != 3 || all[0].ID != ids[2] {
		t.Fatalf("expected newest first, got %+v", all)
	}

	police := events.Actor{Role: domain.RolePolice, PrincipalID: "officer-1"}
	updated, err := svc.UpdateStatus(ctx, police, ids[0], "Resolved")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.ReportStatusResolved {
		t.Fatalf("status = %s", updated.Status)
	}
	if len(changes) != 1 || changes[0].OldStatus != domain.ReportStatusPending || changes[0].NewStatus != domain.ReportStatusResolved {
		t.Fatalf("unexpected change events %+v", changes)
	}

	if _, err := svc.UpdateStatus(ctx, police, ids[0], "Resolved"); err != nil {
		t.Fatalf("repeat UpdateStatus: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("no-op update should not emit an event")
	}

	resolved, err := svc.ListReports(ctx, "Resolved")
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != ids[0] {
		t.Fatalf("unexpected filtered reports %+v", resolved)
	}

	_, err = svc.ListReports(ctx, "Closed")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	_, err = svc.UpdateStatus(ctx, police, ids[0], "Closed")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.UpdateStatus(ctx, police, "missing", "Resolved")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
