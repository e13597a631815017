package sampledata

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"agentdesk/app/service/agents"

	"github.com/samber/do"
)

const yearWindow = 10

// Dataset is a structured time-series payload produced for visualization and
// export.
type Dataset struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Years       []string `json:"years"`
	Data        []Record `json:"data"`
}

// Generator fabricates per-agent sample datasets. Randomness comes from an
// injected source so tests can pin the output.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func New(_ *do.Injector) (*Generator, error) {
	return NewGenerator(rand.NewSource(time.Now().UnixNano())), nil
}

func NewGenerator(src rand.Source) *Generator {
	return &Generator{
		rng: rand.New(src),
		now: time.Now,
	}
}

// Generate builds a dataset shaped for the resolved agent. The topic is the
// first extracted topic, falling back to "general".
func (g *Generator) Generate(agent agents.Type, topics []string) *Dataset {
	topic := "general"
	if len(topics) > 0 {
		topic = topics[0]
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	currentYear := g.now().Year()
	years := make([]string, 0, yearWindow)
	for year := currentYear - yearWindow + 1; year <= currentYear; year++ {
		years = append(years, strconv.Itoa(year))
	}

	dataset := &Dataset{
		Title: fmt.Sprintf("%s Data", capitalize(topic)),
		Years: years,
		Data:  make([]Record, 0, yearWindow),
	}

	switch agent {
	case agents.Clinical:
		dataset.Description = fmt.Sprintf("Simulated clinical statistics for %q over the last %d years", topic, yearWindow)
		for range years {
			dataset.Data = append(dataset.Data, NewRecord(
				Field{Key: "cases", Value: 1000 + g.rng.Intn(9000)},
				Field{Key: "recoveries", Value: 500 + g.rng.Intn(8000)},
				Field{Key: "treatments", Value: 200 + g.rng.Intn(5000)},
			))
		}
	case agents.Food:
		dataset.Description = fmt.Sprintf("Simulated food security statistics for %q over the last %d years", topic, yearWindow)
		for range years {
			dataset.Data = append(dataset.Data, NewRecord(
				Field{Key: "production", Value: 1000 + g.rng.Intn(9000)},
				Field{Key: "consumption", Value: 800 + g.rng.Intn(8000)},
				Field{Key: "export", Value: 100 + g.rng.Intn(3000)},
			))
		}
	default:
		dataset.Description = fmt.Sprintf("Simulated indicator statistics for %q over the last %d years", topic, yearWindow)
		for range years {
			dataset.Data = append(dataset.Data, NewRecord(
				Field{Key: "value", Value: 100 + g.rng.Intn(900)},
				Field{Key: "growth", Value: fmt.Sprintf("%+.1f%%", g.rng.Float64()*10-5)},
				Field{Key: "indicator", Value: g.rng.Intn(100)},
			))
		}
	}

	return dataset
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
