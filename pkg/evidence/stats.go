package evidence

// Statistics summarizes a checklist by importance and difficulty tier.
type Statistics struct {
	Total          int `json:"total"`
	CoreCount      int `json:"core_count"`
	ImportantCount int `json:"important_count"`
	AuxiliaryCount int `json:"auxiliary_count"`
	EasyCount      int `json:"easy_count"`
	MediumCount    int `json:"medium_count"`
	HardCount      int `json:"hard_count"`
	Collected      int `json:"collected"`
}

// Summarize tallies the checklist. Unknown grades were normalized at intake,
// so every item lands in exactly one importance and one difficulty bucket.
func Summarize(items []Requirement) Statistics {
	s := Statistics{Total: len(items)}
	for _, item := range items {
		switch item.Importance {
		case ImportanceCore:
			s.CoreCount++
		case ImportanceAuxiliary:
			s.AuxiliaryCount++
		default:
			s.ImportantCount++
		}
		switch item.Difficulty {
		case DifficultyEasy:
			s.EasyCount++
		case DifficultyHard:
			s.HardCount++
		default:
			s.MediumCount++
		}
		if item.Status == StatusCollected {
			s.Collected++
		}
	}
	return s
}
