// Package changefeed fans committed inventory changes out to live subscribers.
package changefeed

import (
	"context"
	"log/slog"
	"sync"

	"library-circulation/internal/usecase/shared"
)

const defaultBuffer = 64

// Broker is an in-process publish/subscribe hub. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[uint64]chan shared.ChangeEvent
	nextID uint64
	buffer int
	logger *slog.Logger
}

func NewBroker(buffer int, logger *slog.Logger) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		subs:   make(map[uint64]chan shared.ChangeEvent),
		buffer: buffer,
		logger: logger,
	}
}

func (b *Broker) Publish(event shared.ChangeEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("change feed subscriber is behind, dropping event",
				slog.Uint64("subscriber", id),
				slog.String("kind", string(event.Kind)),
				slog.String("book_id", event.BookID))
		}
	}
}

// Subscribe registers a subscriber. The channel is closed once ctx is done.
func (b *Broker) Subscribe(ctx context.Context) <-chan shared.ChangeEvent {
	ch := make(chan shared.ChangeEvent, b.buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
