package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler reacts to one report event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans report events out to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// reportBus delivers events synchronously on the publishing goroutine.
type reportBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher returns a synchronous in-process Dispatcher.
func NewInMemoryDispatcher() Dispatcher {
	return &reportBus{handlers: map[EventType][]EventHandler{}}
}

// Publish runs every handler for the event type even when earlier ones fail.
// Handler errors and panics are joined; a cancelled ctx stops delivery.
func (b *reportBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribed := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for i, handle := range subscribed {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := deliver(ctx, handle, event); err != nil {
			errs = append(errs, fmt.Errorf("%s handler %d: %w", event.Type, i, err))
		}
	}
	return errors.Join(errs...)
}

// Subscribe appends handler to the event type's delivery list.
func (b *reportBus) Subscribe(eventType EventType, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// Copy on write so Publish can iterate a snapshot without holding the lock.
	next := make([]EventHandler, 0, len(b.handlers[eventType])+1)
	next = append(next, b.handlers[eventType]...)
	b.handlers[eventType] = append(next, handler)
}

func deliver(ctx context.Context, handle EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handle(ctx, event)
}
