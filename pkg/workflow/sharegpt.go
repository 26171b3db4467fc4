package workflow

// ShareGPTEntry is one turn of the conversation export, in the sharegpt
// from/value convention.
type ShareGPTEntry struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

// BuildShareGPT exports the transcript for training data collection. A
// single system entry leads the conversation, but only once the profile and
// checklist exist; sessions abandoned during intake export without one.
func BuildShareGPT(s *Session) []ShareGPTEntry {
	var entries []ShareGPTEntry
	if s.Profile != nil && len(s.Checklist) > 0 {
		entries = append(entries, ShareGPTEntry{From: "system", Value: guidanceSystemPrompt(s)})
	}
	for _, m := range s.Messages {
		switch m.Role {
		case "user":
			entries = append(entries, ShareGPTEntry{From: "human", Value: m.Content})
		case "assistant":
			entries = append(entries, ShareGPTEntry{From: "gpt", Value: m.Content})
		}
	}
	return entries
}
