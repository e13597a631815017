package conversation

import (
	"math/rand"
	"strings"
	"sync"

	"agentdesk/app/service/agents"

	"github.com/elliotchance/pie/v2"
)

const maxResampleAttempts = 10

const gratitudeReply = "You're welcome! Let me know if there's anything else you'd like to explore."

// Synthesizer builds agent replies from per-agent templates. It owns the
// anti-repetition history itself, keyed by agent, so sessions never share
// ambient state.
type Synthesizer struct {
	registry *agents.Registry

	mu     sync.Mutex
	rng    *rand.Rand
	recent map[agents.Type]*recentResponses
}

func NewSynthesizer(registry *agents.Registry, src rand.Source) *Synthesizer {
	return &Synthesizer{
		registry: registry,
		rng:      rand.New(src),
		recent:   make(map[agents.Type]*recentResponses),
	}
}

// Respond evaluates the special cases in order, first match wins, and falls
// through to randomized template selection.
func (s *Synthesizer) Respond(profile *agents.Profile, query string, ctx Context) string {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi "):
		return profile.Greeting
	case strings.Contains(lower, "thank"):
		return gratitudeReply
	case strings.Contains(lower, "help"):
		return profile.Help
	case ctx.AgentSwitched:
		return strings.ReplaceAll(profile.SwitchTemplate, "{topic}", ctx.TopicOrDefault())
	}

	insight := insightFor(profile, lower)
	topic := ctx.TopicOrDefault()

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.recent[profile.Type]
	if history == nil {
		history = &recentResponses{}
		s.recent[profile.Type] = history
	}

	// Resample on repeats; after maxResampleAttempts the duplicate is
	// returned as-is.
	var response string
	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		template := profile.Templates[s.rng.Intn(len(profile.Templates))]
		response = strings.ReplaceAll(template, "{topic}", topic)
		response = strings.ReplaceAll(response, "{insight}", insight)

		if !history.contains(response) {
			break
		}
	}

	history.add(response)

	return response
}

func insightFor(profile *agents.Profile, lowerQuery string) string {
	for _, rule := range profile.Insights {
		matches := pie.Any(rule.Match, func(keyword string) bool {
			return strings.Contains(lowerQuery, keyword)
		})
		if matches {
			return rule.Insight
		}
	}

	return profile.DefaultInsight
}
