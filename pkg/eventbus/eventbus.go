// Package eventbus provides the in-process bus domain events are published
// on after a unit of work commits.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fintechlab/bankapi/pkg/domain"
)

// HandlerFunc consumes a published domain event.
type HandlerFunc func(ctx context.Context, event domain.Event)

// EventBus defines the contract for publishing and subscribing to domain
// events. Publishers must only publish after their unit of work has
// committed; handlers must tolerate at-most-once, in-process delivery.
type EventBus interface {
	Publish(ctx context.Context, events ...domain.Event)
	Subscribe(eventType string, handler HandlerFunc)
}

// MemoryBus is a synchronous in-process EventBus. Safe for concurrent use.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
	logger   *slog.Logger
}

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger,
	}
}

// Publish delivers each event synchronously to all subscribed handlers.
func (b *MemoryBus) Publish(ctx context.Context, events ...domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, event := range events {
		b.logger.Debug("publishing event", "event_type", event.Type())
		for _, handler := range b.handlers[event.Type()] {
			handler(ctx, event)
		}
	}
}

// Subscribe registers a handler for an event type.
func (b *MemoryBus) Subscribe(eventType string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
