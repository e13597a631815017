package sampledata

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// PrettyJSON renders the dataset with 2-space indentation for export and for
// embedding into chat messages.
func (d *Dataset) PrettyJSON() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}
	return string(data), nil
}

// FencedBlock renders the dataset as a markdown JSON code block.
func (d *Dataset) FencedBlock() (string, error) {
	pretty, err := d.PrettyJSON()
	if err != nil {
		return "", err
	}
	return "```json\n" + pretty + "\n```", nil
}

// Slug derives a download filename stem from a dataset or widget title.
func Slug(title string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "dataset"
	}
	return slug
}
