package agents

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

const fallbackTokenMinLen = 6

var stopWords = []string{"about", "would", "should", "could", "please", "thank"}

// ExtractTopics pulls candidate topic keywords out of a lowercased query
// using the profile's vocabulary. Categories are scanned in order, keywords
// in list order; a keyword matches as a substring. When nothing from the
// vocabulary matches, long tokens of the query itself are used instead.
func ExtractTopics(lowerQuery string, profile *Profile) []string {
	var matched []string

	for _, category := range profile.Vocabulary {
		for _, keyword := range category.Keywords {
			if strings.Contains(lowerQuery, keyword) {
				matched = append(matched, keyword)
			}
		}
	}

	if len(matched) > 0 {
		return matched
	}

	return pie.Filter(strings.Fields(lowerQuery), func(token string) bool {
		return len(token) >= fallbackTokenMinLen && !pie.Contains(stopWords, token)
	})
}
