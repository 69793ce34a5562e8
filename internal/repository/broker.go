package repository

import (
	"sync"

	"moneta/internal/metrics"
)

// Broker fans out per-user change signals. A subscriber that has not consumed the
// previous signal gets a single pending one, further signals coalesce into it.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers for changes of userID. The returned func unregisters.
func (b *Broker) Subscribe(userID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan struct{}]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()
	metrics.ListenerSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			metrics.ListenerSubscribers.Dec()
		})
	}
}

// Publish signals every subscriber of userID without blocking.
func (b *Broker) Publish(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// subscribers returns the number of subscribers of userID.
func (b *Broker) subscribers(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}
