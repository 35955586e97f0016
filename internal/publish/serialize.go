package publish

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/placebot/internal/logging"
)

// Serialized runs at most one publish per credential at a time. Requests
// with different credentials proceed in parallel. Waiting honours ctx.
type Serialized struct {
	next Publisher

	mu    sync.Mutex
	locks map[string]*credLock
}

type credLock struct {
	sem  chan struct{}
	refs int
}

func NewSerialized(next Publisher) *Serialized {
	return &Serialized{next: next, locks: make(map[string]*credLock)}
}

func (s *Serialized) Publish(ctx context.Context, req Request) Outcome {
	key := logging.Fingerprint(req.Credential)
	l := s.acquire(key)
	defer s.release(key, l)

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return Outcome{Status: Failure, Step: StepStart, Err: ctx.Err(), Message: "cancelled while waiting for another publish with the same credential"}
	}
	defer func() { <-l.sem }()

	return s.next.Publish(ctx, req)
}

func (s *Serialized) acquire(key string) *credLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &credLock{sem: make(chan struct{}, 1)}
		s.locks[key] = l
	}
	l.refs++
	return l
}

func (s *Serialized) release(key string, l *credLock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
}
