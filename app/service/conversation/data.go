package conversation

import (
	"errors"
	"sync"
	"time"

	"agentdesk/app/service/agents"
	"agentdesk/app/service/sampledata"
)

var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrBusy       = errors.New("a reply is already pending")
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is an immutable transcript entry. The display time mirrors what
// the chat surface renders next to each bubble.
type Message struct {
	ID          string              `json:"id"`
	Content     string              `json:"content"`
	Sender      Sender              `json:"sender"`
	AgentType   agents.Type         `json:"agentType"`
	Timestamp   time.Time           `json:"timestamp"`
	DisplayTime string              `json:"displayTime"`
	Dataset     *sampledata.Dataset `json:"dataset,omitempty"`
}

// Context is the per-turn conversation snapshot. It is replaced wholesale on
// every turn; CurrentTopic survives a turn that extracted nothing.
type Context struct {
	LastQuery     string `json:"lastQuery"`
	CurrentTopic  string `json:"currentTopic,omitempty"`
	JSONRequested bool   `json:"jsonRequested"`
	AgentSwitched bool   `json:"agentSwitched"`
}

const neutralTopic = "this subject"

func (c Context) TopicOrDefault() string {
	if c.CurrentTopic == "" {
		return neutralTopic
	}
	return c.CurrentTopic
}

type State struct {
	mu sync.RWMutex

	messages     []*Message
	currentAgent agents.Type
	context      Context
}
