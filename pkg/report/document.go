package report

import (
	"time"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/lawcase"
)

// StrengthLevel grades the overall case.
type StrengthLevel string

const (
	StrengthStrong StrengthLevel = "强"
	StrengthMedium StrengthLevel = "中等"
	StrengthWeak   StrengthLevel = "弱"
)

// Document is the single intermediate model every report format renders
// from. Building it once and rendering it three ways keeps the text, HTML
// and JSON outputs from ever disagreeing.
type Document struct {
	CaseID      string    `json:"case_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Profile  *lawcase.CaseProfile    `json:"profile"`
	Summary  string                  `json:"summary"`
	Timeline []lawcase.TimelineEvent `json:"timeline"`

	Checklist  []evidence.Requirement `json:"checklist"`
	Statistics evidence.Statistics    `json:"statistics"`
	Records    []analysis.Record      `json:"records"`

	DisputeFocus []string      `json:"dispute_focus"`
	Legal        LegalAnalysis `json:"legal_analysis"`

	Recommendations []string    `json:"recommendations"`
	ActionPlan      ActionPlan  `json:"action_plan"`
	Consultation    ChatSummary `json:"consultation"`
}

// LegalAnalysis carries the strength assessment and its reasoning.
type LegalAnalysis struct {
	StrengthScore float64       `json:"strength_score"`
	StrengthLevel StrengthLevel `json:"strength_level"`
	Points        []string      `json:"points"`
}

// ActionPlan splits next steps across three horizons.
type ActionPlan struct {
	ShortTerm []string `json:"short_term"`
	MidTerm   []string `json:"mid_term"`
	LongTerm  []string `json:"long_term"`
}

// ChatSummary condenses the consultation transcript for the report.
type ChatSummary struct {
	TotalMessages int      `json:"total_messages"`
	UserQuestions []string `json:"recent_questions"`
}
