package pubsub

import (
	"context"
	"sync"
)

// Bus is an in-process topic-based publish/subscribe channel. One instance is
// constructed at startup and injected wherever events are produced or
// consumed. Subscribers only see payloads published after they subscribe;
// there is no replay and no persistence.
type Bus struct {
	mu   sync.Mutex
	subs map[string]map[int64]*subscriber
	next int64
}

func New() *Bus {
	return &Bus{subs: make(map[string]map[int64]*subscriber)}
}

// Publish delivers payload to every current subscriber of topic. It never
// blocks on consumer speed: each subscriber owns an unbounded queue drained
// by its own goroutine.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs[topic] {
		s.push(payload)
	}
}

// Subscribe registers a new independent subscriber on topic and returns its
// delivery channel. The channel is closed when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, topic string) <-chan any {
	s := &subscriber{
		wake: make(chan struct{}, 1),
		out:  make(chan any),
	}

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int64]*subscriber)
	}
	b.next++
	id := b.next
	b.subs[topic][id] = s
	b.mu.Unlock()

	go s.pump(ctx, func() { b.unsubscribe(topic, id) })
	return s.out
}

func (b *Bus) unsubscribe(topic string, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[topic], id)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

type subscriber struct {
	mu    sync.Mutex
	queue []any
	wake  chan struct{}
	out   chan any
}

func (s *subscriber) push(payload any) {
	s.mu.Lock()
	s.queue = append(s.queue, payload)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) pump(ctx context.Context, remove func()) {
	defer remove()
	defer close(s.out)
	for {
		s.mu.Lock()
		var next any
		ok := len(s.queue) > 0
		if ok {
			next = s.queue[0]
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-s.wake:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case s.out <- next:
		}
	}
}
