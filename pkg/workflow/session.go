package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/lawcase"
)

// Stage is the consultation's position in the intake pipeline.
type Stage int

const (
	// StageCollect gathers the client's account of the dispute, one message
	// at a time, until they signal there is nothing to add.
	StageCollect Stage = iota + 1
	// StageGuidance answers collection questions against the planned
	// checklist.
	StageGuidance
	// StageInventory asks what the client already holds and types it.
	StageInventory
	// StageAnalysis walks the inventory cursor, analyzing or skipping each
	// item in turn.
	StageAnalysis
	// StageReport produces the report and answers follow-up questions about
	// the analysis results.
	StageReport
	// StageFinished is terminal.
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageCollect:
		return "案情收集"
	case StageGuidance:
		return "取证指导"
	case StageInventory:
		return "证据清点"
	case StageAnalysis:
		return "证据分析"
	case StageReport:
		return "报告生成"
	case StageFinished:
		return "已结束"
	default:
		return "未知阶段"
	}
}

// Message is one transcript entry, tagged with the stage it was spoken in.
// Roles are "user", "assistant" and "system".
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Stage   string    `json:"stage,omitempty"`
	At      time.Time `json:"at"`
}

// Session is the full state of one consultation. It is a plain value so the
// session repository can cache or serialize it as a unit.
type Session struct {
	ID        string    `json:"id"`
	Stage     Stage     `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile   *lawcase.CaseProfile   `json:"profile,omitempty"`
	Checklist []evidence.Requirement `json:"checklist,omitempty"`

	// Proposed holds a resolved inventory awaiting the client's yes/no;
	// only confirmation moves it into Inventory and freezes it.
	Proposed  []evidence.InventoryItem `json:"proposed,omitempty"`
	Inventory []evidence.InventoryItem `json:"inventory,omitempty"`

	// Cursor indexes the inventory item currently up for analysis.
	Cursor  int               `json:"cursor"`
	Records []analysis.Record `json:"records,omitempty"`

	Messages []Message `json:"messages"`
}

// NewSession mints a session in the collect stage. The id embeds the
// creation time so artifact files sort chronologically.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        fmt.Sprintf("case_%s_%s", now.Format("20060102_150405"), uuid.NewString()[:8]),
		Stage:     StageCollect,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) append(role, content string, at time.Time) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content, Stage: s.Stage.String(), At: at})
	s.UpdatedAt = at
}

// UserAccount concatenates the client's collect-stage statements, the text
// the profile extractor runs over.
func (s *Session) UserAccount() string {
	var acc string
	for _, m := range s.Messages {
		if m.Role == "user" {
			acc += m.Content + "\n"
		}
	}
	return acc
}

// CurrentItem returns the inventory item under the cursor.
func (s *Session) CurrentItem() (evidence.InventoryItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Inventory) {
		return evidence.InventoryItem{}, false
	}
	return s.Inventory[s.Cursor], true
}

// Progress reports how far the analysis cursor has moved.
type Progress struct {
	Stage     string `json:"stage"`
	Total     int    `json:"total"`
	Done      int    `json:"done"`
	Remaining int    `json:"remaining"`
}

func (s *Session) Progress() Progress {
	done := s.Cursor
	if done > len(s.Inventory) {
		done = len(s.Inventory)
	}
	return Progress{
		Stage:     s.Stage.String(),
		Total:     len(s.Inventory),
		Done:      done,
		Remaining: len(s.Inventory) - done,
	}
}
