package queue

import (
	"log/slog"
	"sync/atomic"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service buffers submitted queries for the engine loop and tracks the
// awaiting-reply state: while a turn is in flight, further submissions are
// rejected instead of silently piling up behind the typing delay.
type Service struct {
	queue    chan string
	awaiting atomic.Bool
	closed   atomic.Bool
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan string, bufferSize),
	}, nil
}

// TryAcquire marks a turn as in flight. Returns false if one already is.
func (s *Service) TryAcquire() bool {
	return s.awaiting.CompareAndSwap(false, true)
}

// Release clears the awaiting-reply state once the turn resolved.
func (s *Service) Release() {
	s.awaiting.Store(false)
}

func (s *Service) Awaiting() bool {
	return s.awaiting.Load()
}

func (s *Service) Add(query string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("submission after queue shutdown", "query", query)
		}
	}()

	select {
	case s.queue <- query:
	default:
		slog.Warn("turn queue is full")
	}
}

func (s *Service) Channel() <-chan string {
	return s.queue
}

func (s *Service) Shutdown() error {
	if s.closed.CompareAndSwap(false, true) {
		close(s.queue)
	}

	return nil
}
