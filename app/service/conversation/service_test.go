package conversation

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"agentdesk/app/service/agents"
	"agentdesk/app/service/events"
	"agentdesk/app/service/queue"
	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/viz"

	"github.com/samber/do"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	registry, err := agents.New(di)
	if err != nil {
		t.Fatalf("agents.New: %v", err)
	}

	vizSvc, err := viz.New(di)
	if err != nil {
		t.Fatalf("viz.New: %v", err)
	}

	queueSvc, err := queue.New(di)
	if err != nil {
		t.Fatalf("queue.New: %v", err)
	}
	t.Cleanup(func() { _ = queueSvc.Shutdown() })

	bus, err := events.New(di)
	if err != nil {
		t.Fatalf("events.New: %v", err)
	}

	return &Service{
		registry:    registry,
		generator:   sampledata.NewGenerator(rand.NewSource(7)),
		vizSvc:      vizSvc,
		queueSvc:    queueSvc,
		bus:         bus,
		synthesizer: NewSynthesizer(registry, rand.NewSource(7)),
		state:       &State{currentAgent: agents.General},
	}
}

func TestRunTurnRoutesToClinical(t *testing.T) {
	s := newTestService(t)

	msg, err := s.RunTurn("What about diabetes treatment?")
	if err != nil {
		t.Fatalf("RunTurn: %v", err)
	}

	if msg.AgentType != agents.Clinical {
		t.Errorf("AgentType = %s, want %s", msg.AgentType, agents.Clinical)
	}
	if s.CurrentAgent() != agents.Clinical {
		t.Errorf("CurrentAgent = %s, want %s", s.CurrentAgent(), agents.Clinical)
	}

	ctx := s.Context()
	if !ctx.AgentSwitched {
		t.Error("context.AgentSwitched = false, want true")
	}
	if ctx.CurrentTopic != "diabetes" {
		t.Errorf("context.CurrentTopic = %q, want %q", ctx.CurrentTopic, "diabetes")
	}
	if !strings.Contains(msg.Content, "diabetes") {
		t.Errorf("switch message %q does not reference the topic", msg.Content)
	}
}

func TestRunTurnFoodJSONRequest(t *testing.T) {
	s := newTestService(t)

	msg, err := s.RunTurn("Show me food data in JSON format")
	if err != nil {
		t.Fatalf("RunTurn: %v", err)
	}

	if msg.AgentType != agents.Food {
		t.Errorf("AgentType = %s, want %s", msg.AgentType, agents.Food)
	}
	if !s.Context().JSONRequested {
		t.Error("context.JSONRequested = false, want true")
	}
	if msg.Dataset == nil {
		t.Fatal("agent message has no dataset attached")
	}
	if !strings.HasSuffix(msg.Content, "```") {
		t.Errorf("reply does not end with a fenced block: %q", msg.Content)
	}

	// the fenced block must contain the serialized dataset
	start := strings.Index(msg.Content, "```json\n")
	if start < 0 {
		t.Fatalf("reply has no json fence: %q", msg.Content)
	}
	blob := strings.TrimSuffix(msg.Content[start+len("```json\n"):], "\n```")

	var decoded sampledata.Dataset
	if err := json.Unmarshal([]byte(blob), &decoded); err != nil {
		t.Fatalf("fenced block is not valid JSON: %v", err)
	}
	if len(decoded.Years) != 10 {
		t.Errorf("years has %d entries, want 10", len(decoded.Years))
	}
	if len(decoded.Data) != 10 {
		t.Fatalf("data has %d entries, want 10", len(decoded.Data))
	}
	for _, key := range []string{"production", "consumption", "export"} {
		value, ok := decoded.Data[0].Get(key)
		if !ok {
			t.Fatalf("record is missing field %q", key)
		}
		if _, numeric := sampledata.NumericValue(value); !numeric {
			t.Errorf("field %q is not numeric: %v", key, value)
		}
	}

	// the dataset is also handed to the visualization session
	if s.vizSvc.Dataset() == nil {
		t.Error("visualization session did not receive the dataset")
	}
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit("   "); err != ErrEmptyQuery {
		t.Errorf("Submit(whitespace) error = %v, want ErrEmptyQuery", err)
	}
	if len(s.Messages()) != 0 {
		t.Error("whitespace submission appended a message")
	}
}

func TestSubmitRejectsSecondWhilePending(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit("first question"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := s.Submit("second question"); err != ErrBusy {
		t.Errorf("second Submit error = %v, want ErrBusy", err)
	}
	if got := len(s.Messages()); got != 1 {
		t.Errorf("transcript holds %d messages, want 1", got)
	}
}

func TestSubmitAppendsUserMessage(t *testing.T) {
	s := newTestService(t)

	msg, err := s.Submit("  what is gdp growth  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if msg.Sender != SenderUser {
		t.Errorf("Sender = %s, want %s", msg.Sender, SenderUser)
	}
	if msg.Content != "what is gdp growth" {
		t.Errorf("Content = %q, want the trimmed query", msg.Content)
	}
	if msg.ID == "" || msg.DisplayTime == "" {
		t.Error("message is missing id or display time")
	}
}

func TestSwitchAgentManually(t *testing.T) {
	s := newTestService(t)

	msg, err := s.SwitchAgent(agents.Food)
	if err != nil {
		t.Fatalf("SwitchAgent: %v", err)
	}
	if msg == nil {
		t.Fatal("SwitchAgent returned no message")
	}
	if !strings.Contains(msg.Content, "Food Security") {
		t.Errorf("switch announcement %q does not name the agent", msg.Content)
	}
	if s.CurrentAgent() != agents.Food {
		t.Errorf("CurrentAgent = %s, want %s", s.CurrentAgent(), agents.Food)
	}

	// switching to the active agent is a no-op
	msg, err = s.SwitchAgent(agents.Food)
	if err != nil {
		t.Fatalf("SwitchAgent same agent: %v", err)
	}
	if msg != nil {
		t.Errorf("no-op switch produced a message: %q", msg.Content)
	}

	if _, err = s.SwitchAgent(agents.Type("weather")); err == nil {
		t.Error("SwitchAgent accepted an unknown agent")
	}
}

func TestContextTopicPersistsAcrossTurns(t *testing.T) {
	s := newTestService(t)

	if _, err := s.RunTurn("tell me about diabetes"); err != nil {
		t.Fatalf("RunTurn: %v", err)
	}
	if got := s.Context().CurrentTopic; got != "diabetes" {
		t.Fatalf("CurrentTopic = %q, want %q", got, "diabetes")
	}

	// a turn with no extractable topic keeps the previous one; the query
	// must avoid vocabulary keywords and long fallback tokens
	if _, err := s.RunTurn("why is that so"); err != nil {
		t.Fatalf("RunTurn: %v", err)
	}
	if got := s.Context().CurrentTopic; got != "diabetes" {
		t.Errorf("CurrentTopic = %q, want it to persist as %q", got, "diabetes")
	}
}

func TestAskRunsFullTurn(t *testing.T) {
	s := newTestService(t)

	msg, err := s.Ask("how are crop yields doing")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if msg.Sender != SenderAgent {
		t.Errorf("Sender = %s, want %s", msg.Sender, SenderAgent)
	}
	if got := len(s.Messages()); got != 2 {
		t.Errorf("transcript holds %d messages, want user + agent", got)
	}
	if s.Awaiting() {
		t.Error("Awaiting = true after a synchronous turn")
	}
}
