package conversation

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"agentdesk/app/service/agents"
	"agentdesk/app/service/events"
	"agentdesk/app/service/queue"
	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/viz"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
	"github.com/samber/do"
)

var ErrUnknownAgent = errors.New("unknown agent")

var jsonTriggers = []string{"json", "data format", "format data"}

// Service owns the chat transcript and runs the routing and synthesis
// pipeline for each turn.
type Service struct {
	registry    *agents.Registry
	generator   *sampledata.Generator
	vizSvc      *viz.Service
	queueSvc    *queue.Service
	bus         *events.Bus
	synthesizer *Synthesizer

	state *State
}

func New(di *do.Injector) (*Service, error) {
	registry := do.MustInvoke[*agents.Registry](di)

	s := &Service{
		registry:    registry,
		generator:   do.MustInvoke[*sampledata.Generator](di),
		vizSvc:      do.MustInvoke[*viz.Service](di),
		queueSvc:    do.MustInvoke[*queue.Service](di),
		bus:         do.MustInvoke[*events.Bus](di),
		synthesizer: NewSynthesizer(registry, rand.NewSource(time.Now().UnixNano())),
		state:       &State{currentAgent: agents.General},
	}

	return s, nil
}

// Submit accepts a user query and enqueues the turn for the engine loop.
// The user message is appended immediately; the agent reply lands after the
// typing delay.
func (s *Service) Submit(text string) (*Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	if !s.queueSvc.TryAcquire() {
		return nil, ErrBusy
	}

	msg := s.appendMessage(SenderUser, s.CurrentAgent(), trimmed, nil)
	s.queueSvc.Add(trimmed)
	s.bus.Publish(events.Event{Kind: events.TurnSubmitted, Query: trimmed})

	return msg, nil
}

// Ask runs a full turn synchronously with no typing delay. Used by the MCP
// surface.
func (s *Service) Ask(text string) (*Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	if !s.queueSvc.TryAcquire() {
		return nil, ErrBusy
	}
	defer s.queueSvc.Release()

	s.appendMessage(SenderUser, s.CurrentAgent(), trimmed, nil)
	s.bus.Publish(events.Event{Kind: events.TurnSubmitted, Query: trimmed})

	return s.RunTurn(trimmed)
}

// RunTurn routes the query, updates the context snapshot, synthesizes the
// reply and appends the agent message.
func (s *Service) RunTurn(query string) (*Message, error) {
	lower := strings.ToLower(query)

	s.state.mu.Lock()
	previous := s.state.currentAgent
	s.state.mu.Unlock()

	resolved := agents.Route(lower, previous)
	profile := s.registry.MustGet(resolved)
	topics := agents.ExtractTopics(lower, profile)
	jsonRequested := wantsJSON(lower)
	switched := resolved != previous

	s.state.mu.Lock()
	snapshot := s.state.updateContext(query, topics, jsonRequested, switched)
	if switched {
		s.state.currentAgent = resolved
	}
	s.state.mu.Unlock()

	if switched {
		s.bus.Publish(events.Event{Kind: events.AgentChanged, Agent: resolved})
		slog.Info("Query routed to a different agent", "agent", resolved)
	}

	content := s.synthesizer.Respond(profile, query, snapshot)

	var dataset *sampledata.Dataset
	if jsonRequested {
		dataset = s.generator.Generate(resolved, topics)

		block, err := dataset.FencedBlock()
		if err != nil {
			return nil, fmt.Errorf("dataset.FencedBlock: %w", err)
		}
		content = content + "\n\nHere is the data in JSON format:\n\n" + block

		s.vizSvc.SetDataset(dataset)
	}

	msg := s.appendMessage(SenderAgent, resolved, content, dataset)
	s.bus.Publish(events.Event{Kind: events.ReplyReady, MessageID: msg.ID})

	return msg, nil
}

// SwitchAgent handles the explicit agent selection control. Switching to the
// active agent is a no-op that returns a nil message.
func (s *Service) SwitchAgent(target agents.Type) (*Message, error) {
	profile, ok := s.registry.Get(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, target)
	}

	s.state.mu.Lock()
	if s.state.currentAgent == target {
		s.state.mu.Unlock()
		return nil, nil
	}
	s.state.currentAgent = target
	s.state.mu.Unlock()

	content := fmt.Sprintf("You are now chatting with the %s agent. How can I help you?", profile.DisplayName)
	msg := s.appendMessage(SenderAgent, target, content, nil)

	s.bus.Publish(events.Event{Kind: events.AgentChanged, Agent: target})
	slog.Info("Agent switched manually", "agent", target)

	return msg, nil
}

func (s *Service) Messages() []*Message {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	result := make([]*Message, len(s.state.messages))
	copy(result, s.state.messages)

	return result
}

func (s *Service) CurrentAgent() agents.Type {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	return s.state.currentAgent
}

func (s *Service) Context() Context {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	return s.state.context
}

func (s *Service) Awaiting() bool {
	return s.queueSvc.Awaiting()
}

func (s *Service) appendMessage(sender Sender, agent agents.Type, content string, dataset *sampledata.Dataset) *Message {
	now := time.Now()
	msg := &Message{
		ID:          uuid.NewString(),
		Content:     content,
		Sender:      sender,
		AgentType:   agent,
		Timestamp:   now,
		DisplayTime: now.Format("3:04 PM"),
		Dataset:     dataset,
	}

	s.state.mu.Lock()
	s.state.messages = append(s.state.messages, msg)
	s.state.mu.Unlock()

	return msg
}

func wantsJSON(lowerQuery string) bool {
	return pie.Any(jsonTriggers, func(trigger string) bool {
		return strings.Contains(lowerQuery, trigger)
	})
}
