package events

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	errWebhook := errors.New("webhook down")

	d.Subscribe(EventReportFiled, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.ReportID)
		return errWebhook
	})
	d.Subscribe(EventReportFiled, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.ReportID)
		return nil
	})
	d.Subscribe(EventReportStatusChanged, func(context.Context, Event) error {
		t.Fatalf("unrelated handler invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventReportFiled, ReportID: "r-1"})
	if !errors.Is(err, errWebhook) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "first:r-1" || calls[1] != "second:r-1" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()
	delivered := false
	d.Subscribe(EventReportStatusChanged, func(context.Context, Event) error {
		panic("nil payload")
	})
	d.Subscribe(EventReportStatusChanged, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventReportStatusChanged})
	if err == nil || !strings.Contains(err.Error(), "nil payload") {
		t.Fatalf("expected panic to surface as error, got %v", err)
	}
	if !delivered {
		t.Fatalf("handler after the panicking one was skipped")
	}
}

func TestDispatcherStopsOnCancelledContext(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventReportFiled, func(context.Context, Event) error {
		t.Fatalf("handler ran after cancellation")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Publish(ctx, Event{Type: EventReportFiled}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	if err := NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventReportFiled}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
