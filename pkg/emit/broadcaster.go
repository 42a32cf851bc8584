// Package emit delivers named events from the capture loop to host
// subscribers. Delivery is best-effort: Emit never blocks, and a subscriber
// whose buffer is full simply misses the message.
package emit

import (
	"sync"
	"sync/atomic"
)

// DefaultBuffer is used when Subscribe is called with a non-positive size.
const DefaultBuffer = 64

// Message is a single named event.
type Message struct {
	Name    string
	Payload any
}

// Stats summarises broadcaster throughput.
type Stats struct {
	Emitted     uint64
	Delivered   uint64
	Dropped     uint64
	Subscribers int
}

// Broadcaster fans messages out to every live subscription.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	emitted   atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewBroadcaster constructs an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*Subscription]struct{})}
}

// Subscription receives messages until closed.
type Subscription struct {
	ch     chan Message
	parent *Broadcaster
	once   sync.Once
}

// C returns the receive channel. It is closed when the subscription or the
// broadcaster is closed.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.parent.remove(s)
}

// Subscribe registers a new buffered subscription.
func (b *Broadcaster) Subscribe(buffer int) (*Subscription, error) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	sub := &Subscription{ch: make(chan Message, buffer), parent: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	b.subs[sub] = struct{}{}
	return sub, nil
}

// Emit offers the message to every subscriber without blocking. It returns
// ErrNoSubscribers when nobody is listening; full subscribers are skipped.
func (b *Broadcaster) Emit(name string, payload any) error {
	b.emitted.Add(1)
	msg := Message{Name: name, Payload: payload}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.subs) == 0 {
		b.dropped.Add(1)
		return ErrNoSubscribers
	}
	for sub := range b.subs {
		select {
		case sub.ch <- msg:
			b.delivered.Add(1)
		default:
			b.dropped.Add(1)
		}
	}
	return nil
}

// Stats returns a point-in-time copy of the counters.
func (b *Broadcaster) Stats() Stats {
	b.mu.RLock()
	subscribers := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Emitted:     b.emitted.Load(),
		Delivered:   b.delivered.Load(),
		Dropped:     b.dropped.Load(),
		Subscribers: subscribers,
	}
}

// Close detaches and closes every subscription.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		delete(b.subs, sub)
		sub.once.Do(func() { close(sub.ch) })
	}
}

func (b *Broadcaster) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, sub)
	sub.once.Do(func() { close(sub.ch) })
}
