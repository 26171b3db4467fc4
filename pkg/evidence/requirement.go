package evidence

import "time"

// Importance grades how much a checklist item matters to the case.
type Importance string

const (
	ImportanceCore      Importance = "核心"
	ImportanceImportant Importance = "重要"
	ImportanceAuxiliary Importance = "辅助"
)

// Difficulty grades how hard an item usually is to collect.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "容易"
	DifficultyMedium Difficulty = "中等"
	DifficultyHard   Difficulty = "困难"
)

const (
	StatusNotCollected = "未收集"
	StatusCollected    = "已收集"

	defaultType = "未知证据"
)

// Requirement is one entry of the evidence checklist produced by the planner.
// Status and FilePath are the only mutable fields; both change when the
// client uploads a matching file.
type Requirement struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	Importance       Importance `json:"importance"`
	Description      string     `json:"description"`
	CollectionMethod string     `json:"collection_method"`
	LegalBasis       string     `json:"legal_basis"`
	Difficulty       Difficulty `json:"difficulty"`
	Notes            string     `json:"notes"`
	Status           string     `json:"status"`
	FilePath         string     `json:"file_path,omitempty"`
}

// InventoryItem is one piece of evidence the client reports holding, mapped
// to an analyzer category during inventory resolution.
type InventoryItem struct {
	Name        string    `json:"name"`
	Type        Category  `json:"type"`
	Description string    `json:"description"`
	AddedTime   time.Time `json:"added_time"`
}
