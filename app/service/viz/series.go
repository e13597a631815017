package viz

import (
	"agentdesk/app/service/sampledata"
)

// Line and bar charts render at most the first metrics of each record.
const maxAxisMetrics = 3

// Keys that label a record rather than measure it.
var excludedKeys = map[string]bool{
	"year": true,
	"name": true,
	"id":   true,
}

type Series struct {
	Name   string    `json:"name"`
	Points []float64 `json:"points"`
}

type Slice struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Metrics returns the chartable field names of a dataset: numeric fields of
// the first record, in field order, minus label keys.
func Metrics(d *sampledata.Dataset) []string {
	if d == nil || len(d.Data) == 0 {
		return nil
	}

	var metrics []string
	for _, field := range d.Data[0].Fields() {
		if excludedKeys[field.Key] {
			continue
		}
		if _, ok := sampledata.NumericValue(field.Value); !ok {
			continue
		}
		metrics = append(metrics, field.Key)
	}

	return metrics
}

// AxisSeries derives the per-period series rendered by line and bar charts.
func AxisSeries(d *sampledata.Dataset) []Series {
	metrics := Metrics(d)
	if len(metrics) > maxAxisMetrics {
		metrics = metrics[:maxAxisMetrics]
	}

	result := make([]Series, 0, len(metrics))
	for _, metric := range metrics {
		series := Series{
			Name:   metric,
			Points: make([]float64, 0, len(d.Data)),
		}

		for _, record := range d.Data {
			value, _ := record.Get(metric)
			number, ok := sampledata.NumericValue(value)
			if !ok {
				number = 0
			}
			series.Points = append(series.Points, number)
		}

		result = append(result, series)
	}

	return result
}

// PieSlices aggregates every metric across all periods, one slice per metric.
func PieSlices(d *sampledata.Dataset) []Slice {
	metrics := Metrics(d)

	result := make([]Slice, 0, len(metrics))
	for _, metric := range metrics {
		slice := Slice{Name: metric}

		for _, record := range d.Data {
			value, _ := record.Get(metric)
			if number, ok := sampledata.NumericValue(value); ok {
				slice.Total += number
			}
		}

		result = append(result, slice)
	}

	return result
}
