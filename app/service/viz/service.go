package viz

import (
	"errors"
	"fmt"
	"sync"

	"agentdesk/app/service/sampledata"

	"github.com/samber/do"
)

var ErrNoDataset = errors.New("no dataset to visualize")

type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

func ParseChartType(s string) (ChartType, error) {
	switch ChartType(s) {
	case ChartLine, ChartBar, ChartPie:
		return ChartType(s), nil
	default:
		return "", fmt.Errorf("unknown chart type %q", s)
	}
}

// Service holds the single active dataset and chart selection of the
// visualization view, independent from the chat transcript.
type Service struct {
	mu        sync.RWMutex
	dataset   *sampledata.Dataset
	chartType ChartType
	visible   bool
}

type Snapshot struct {
	Dataset   *sampledata.Dataset `json:"dataset"`
	ChartType ChartType           `json:"chartType"`
	Visible   bool                `json:"visible"`
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		chartType: ChartLine,
	}, nil
}

func (s *Service) SetDataset(dataset *sampledata.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = dataset
}

func (s *Service) Dataset() *sampledata.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dataset
}

func (s *Service) SetChartType(t ChartType) error {
	if _, err := ParseChartType(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chartType = t

	return nil
}

// Toggle flips the visibility flag. With no active dataset it is a no-op
// surfaced to the user as a warning.
func (s *Service) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset == nil {
		return false, ErrNoDataset
	}

	s.visible = !s.visible

	return s.visible, nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Dataset:   s.dataset,
		ChartType: s.chartType,
		Visible:   s.visible,
	}
}
