package notify

import (
	"context"
	"errors"
	"sync"
)

// Broadcaster fans published messages out to in-process subscribers such as
// the HTTP event stream. Delivery is non-blocking: a subscriber whose buffer
// is full misses the message.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   []chan Message
	buffer int
	closed bool
}

// NewBroadcaster returns a Broadcaster giving each subscriber buffer slots.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 8
	}
	return &Broadcaster{buffer: buffer}
}

// Notify implements Notifier.
func (b *Broadcaster) Notify(_ context.Context, msg Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscriber. The returned cancel func removes it and
// closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, b.buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch, func() { b.unsubscribe(ch) }
}

func (b *Broadcaster) unsubscribe(sub chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes every subscriber channel. Later messages are dropped.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	return nil
}

// Multi delivers every message to all notifiers and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
