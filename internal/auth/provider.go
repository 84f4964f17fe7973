package auth

import (
	"context"
	"sync"
)

// Provider streams the signed-in user id. The first value reflects the
// current session; after that one value is sent per sign-in or sign-out.
// An empty id means signed out. The channel closes when ctx ends.
type Provider interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Manual is a Provider driven by explicit Set calls.
type Manual struct {
	mu      sync.Mutex
	current string
	subs    map[*subscriber]struct{}
}

func NewManual(initial string) *Manual {
	return &Manual{current: initial, subs: make(map[*subscriber]struct{})}
}

// Current returns the last value set.
func (m *Manual) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Set changes the session. Setting the current value again emits nothing.
func (m *Manual) Set(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if userID == m.current {
		return
	}
	m.current = userID
	for s := range m.subs {
		s.push(userID)
	}
}

func (m *Manual) Watch(ctx context.Context) (<-chan string, error) {
	s := newSubscriber()
	m.mu.Lock()
	s.push(m.current)
	m.subs[s] = struct{}{}
	m.mu.Unlock()

	out := make(chan string)
	go func() {
		defer close(out)
		defer func() {
			m.mu.Lock()
			delete(m.subs, s)
			m.mu.Unlock()
		}()
		s.drain(ctx, out)
	}()
	return out, nil
}

// subscriber queues values so a slow reader never blocks the producer.
type subscriber struct {
	mu      sync.Mutex
	pending []string
	wake    chan struct{}
}

func newSubscriber() *subscriber {
	return &subscriber{wake: make(chan struct{}, 1)}
}

func (s *subscriber) push(v string) {
	s.mu.Lock()
	s.pending = append(s.pending, v)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) drain(ctx context.Context, out chan<- string) {
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, v := range batch {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-s.wake:
		case <-ctx.Done():
			return
		}
	}
}
