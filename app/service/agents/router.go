package agents

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

// Trigger sets are checked in priority order: clinical before food. A query
// matching neither stays with the currently active agent, which makes
// `general` the default that is never selected by keyword.
var (
	clinicalTriggers = []string{"clinical", "medical", "health", "disease", "treatment", "doctor"}
	foodTriggers     = []string{"food", "agriculture", "crop", "farm", "nutrition", "hunger"}
)

// Route classifies which agent should own a query. The query must already be
// lowercased.
func Route(lowerQuery string, current Type) Type {
	containsAny := func(triggers []string) bool {
		return pie.Any(triggers, func(keyword string) bool {
			return strings.Contains(lowerQuery, keyword)
		})
	}

	if containsAny(clinicalTriggers) {
		return Clinical
	}
	if containsAny(foodTriggers) {
		return Food
	}

	return current
}
