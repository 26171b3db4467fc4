package analysis

import (
	"time"

	"ai-laborlaw-be/pkg/evidence"
)

// Record is one completed analysis of one piece of evidence. Mocked marks
// results fabricated while the analyzer was unreachable; they must never be
// presented as real analyzer output.
type Record struct {
	EvidenceName string                 `json:"evidence_name"`
	Category     evidence.Category      `json:"category"`
	FileName     string                 `json:"file_name,omitempty"`
	Raw          map[string]interface{} `json:"raw_result"`
	Assessment   Assessment             `json:"assessment"`
	Mocked       bool                   `json:"mocked"`
	AnalyzedAt   time.Time              `json:"analyzed_at"`
}
