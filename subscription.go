package steambridge

import (
	"sync"
)

// Subscription is an unbounded, ordered stream of notifications for one
// receiver. Notifications are never dropped while the subscription is open;
// a slow receiver only grows the queue.
type Subscription[T any] struct {
	out    chan T
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
	detach func()

	mu    sync.Mutex
	queue []T
}

func newSubscription[T any](detach func()) *Subscription[T] {
	s := &Subscription[T]{
		out:    make(chan T),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		detach: detach,
	}
	go s.forward()
	return s
}

// C returns the channel notifications are received on. It is closed by
// Close and when the client shuts down.
func (s *Subscription[T]) C() <-chan T {
	return s.out
}

// Close stops the subscription. Queued notifications not yet received are
// discarded. Calling Close again has no effect.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		if s.detach != nil {
			s.detach()
		}
		s.mu.Lock()
		s.queue = nil
		s.mu.Unlock()
		close(s.done)
	})
}

func (s *Subscription[T]) push(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Subscription[T]) pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if len(s.queue) == 0 {
		return zero, false
	}
	v := s.queue[0]
	s.queue[0] = zero
	s.queue = s.queue[1:]
	return v, true
}

func (s *Subscription[T]) forward() {
	defer close(s.out)

	for {
		select {
		case <-s.done:
			return
		case <-s.notify:
		}

		for {
			v, ok := s.pop()
			if !ok {
				break
			}
			select {
			case s.out <- v:
			case <-s.done:
				return
			}
		}
	}
}

// subscriberSet fans one notification kind out to every open subscription.
// Once closeAll has run, add hands out subscriptions that are already closed.
type subscriberSet[T any] struct {
	mu     sync.Mutex
	next   uint64
	closed bool
	subs   map[uint64]*Subscription[T]
	// order keeps publish order stable across subscribers
	order []uint64
}

func (set *subscriberSet[T]) add() *Subscription[T] {
	set.mu.Lock()
	defer set.mu.Unlock()

	if set.closed {
		s := newSubscription[T](nil)
		s.Close()
		return s
	}

	if set.subs == nil {
		set.subs = make(map[uint64]*Subscription[T])
	}
	set.next++
	id := set.next
	s := newSubscription[T](func() { set.remove(id) })
	set.subs[id] = s
	set.order = append(set.order, id)
	return s
}

func (set *subscriberSet[T]) remove(id uint64) {
	set.mu.Lock()
	defer set.mu.Unlock()

	if _, ok := set.subs[id]; !ok {
		return
	}
	delete(set.subs, id)
	for i, v := range set.order {
		if v == id {
			set.order = append(set.order[:i:i], set.order[i+1:]...)
			break
		}
	}
}

func (set *subscriberSet[T]) publish(v T) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for _, id := range set.order {
		set.subs[id].push(v)
	}
}

func (set *subscriberSet[T]) len() int {
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.subs)
}

func (set *subscriberSet[T]) closeAll() {
	set.mu.Lock()
	set.closed = true
	subs := make([]*Subscription[T], 0, len(set.order))
	for _, id := range set.order {
		subs = append(subs, set.subs[id])
	}
	set.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
}
