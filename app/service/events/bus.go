package events

import (
	"log/slog"
	"sync"

	"agentdesk/app/service/agents"

	"github.com/samber/do"
)

const bufferSize = 64

type Kind string

const (
	TurnSubmitted Kind = "turn_submitted"
	AgentChanged  Kind = "agent_changed"
	ReplyReady    Kind = "reply_ready"
)

type Event struct {
	Kind      Kind
	Query     string
	Agent     agents.Type
	MessageID string
}

var _ do.Shutdownable = (*Bus)(nil)

// Bus carries chat-turn events to interested components with an explicit
// subscribe/unsubscribe lifecycle.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

func New(_ *do.Injector) (*Bus, error) {
	return &Bus{
		subs: make(map[int]chan Event),
	}, nil
}

func (b *Bus) Subscribe() (int, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan Event, bufferSize)
	b.subs[b.nextID] = ch

	return b.nextID, ch
}

func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber without blocking; a
// subscriber that stopped draining its channel loses events.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("event subscriber buffer is full", "subscriber", id, "kind", ev.Kind)
		}
	}
}

func (b *Bus) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}

	return nil
}
