package conversation

// updateContext replaces the conversation context wholesale. The new
// snapshot starts as a copy of the previous one; CurrentTopic is only
// overwritten when this turn extracted at least one topic.
// Caller must hold the state lock.
func (s *State) updateContext(query string, topics []string, jsonRequested, switched bool) Context {
	next := s.context

	next.LastQuery = query
	next.JSONRequested = jsonRequested
	next.AgentSwitched = switched

	if len(topics) > 0 {
		next.CurrentTopic = topics[0]
	}

	s.context = next

	return next
}
