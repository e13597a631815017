package conversation

const responseHistorySize = 5

// recentResponses is a small FIFO ring of an agent's last template-path
// responses, used only for anti-repetition.
type recentResponses struct {
	entries []string
}

func (h *recentResponses) add(response string) {
	if len(h.entries) >= responseHistorySize {
		h.entries = append(h.entries[1:], response)
	} else {
		h.entries = append(h.entries, response)
	}
}

func (h *recentResponses) contains(response string) bool {
	for _, entry := range h.entries {
		if entry == response {
			return true
		}
	}

	return false
}
