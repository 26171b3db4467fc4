package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/lawcase"
	"ai-laborlaw-be/pkg/llm"
	"ai-laborlaw-be/pkg/report"
)

var (
	// ErrWrongStage is returned when an operation is attempted outside the
	// stage it belongs to.
	ErrWrongStage = errors.New("operation not available in the current stage")
	// ErrUnanalyzableItem marks inventory items with no analyzer; they can
	// only be skipped.
	ErrUnanalyzableItem = errors.New("no analyzer for this evidence type, skip it")
	// ErrNoAnalyzedEvidence blocks report generation while the session has
	// zero analysis records.
	ErrNoAnalyzedEvidence = errors.New("at least one analyzed evidence item is required")
)

// Reply is what a consultation turn hands back to the caller.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
	Stage       Stage    `json:"stage"`
	StageName   string   `json:"stage_name"`
	Ended       bool     `json:"ended"`
}

// Engine drives consultations through the staged pipeline. It owns no
// session storage; callers load and persist sessions around each turn.
type Engine struct {
	extractor *lawcase.Extractor
	planner   *evidence.Planner
	resolver  *evidence.Resolver
	client    *analysis.Client
	catalog   *evidence.Catalog
	provider  llm.LLMProvider
	assembler *report.Assembler
	artifacts *ArtifactStore
	log       logger.ILogger

	now func() time.Time
}

func NewEngine(
	planner *evidence.Planner,
	resolver *evidence.Resolver,
	client *analysis.Client,
	catalog *evidence.Catalog,
	provider llm.LLMProvider,
	artifacts *ArtifactStore,
	log logger.ILogger,
) *Engine {
	return &Engine{
		extractor: lawcase.NewExtractor(),
		planner:   planner,
		resolver:  resolver,
		client:    client,
		catalog:   catalog,
		provider:  provider,
		assembler: report.NewAssembler(),
		artifacts: artifacts,
		log:       log,
		now:       time.Now,
	}
}

// Catalog exposes the analyzer catalog so callers can validate uploads
// against the current item's spec.
func (e *Engine) Catalog() *evidence.Catalog {
	return e.catalog
}

// Start opens a new consultation with the assistant's opening message
// already on the transcript.
func (e *Engine) Start() (*Session, *Reply) {
	s := NewSession(e.now())
	s.append("assistant", collectOpeningReply, e.now())
	e.log.Info("workflow", "session started", map[string]interface{}{"session_id": s.ID})
	return s, e.reply(s, collectOpeningReply, nil)
}

// Handle advances the consultation by one user message.
func (e *Engine) Handle(ctx context.Context, s *Session, text string) *Reply {
	if s.Stage == StageFinished {
		return e.replyEnded(s)
	}
	if isQuitToken(text) {
		return e.finish(s, farewellReply)
	}

	s.append("user", text, e.now())

	switch s.Stage {
	case StageCollect:
		return e.handleCollect(ctx, s, text)
	case StageGuidance:
		return e.handleGuidance(ctx, s, text)
	case StageInventory:
		return e.handleInventory(ctx, s, text)
	case StageAnalysis:
		return e.handleAnalysisCommand(s, text)
	case StageReport:
		return e.handleReportStage(ctx, s, text)
	default:
		return e.replyEnded(s)
	}
}

func (e *Engine) handleCollect(ctx context.Context, s *Session, text string) *Reply {
	if !isEndToken(text) {
		return e.respond(s, collectAckReply, nil)
	}

	s.Profile = e.extractor.Extract(s.UserAccount())
	s.Profile.CaseID = s.ID
	s.Checklist = e.planner.Plan(ctx, s.Profile)
	s.Stage = StageGuidance

	e.log.Info("workflow", "profile extracted", map[string]interface{}{
		"session_id":       s.ID,
		"dispute_category": string(s.Profile.DisputeCategory),
		"checklist_items":  len(s.Checklist),
	})

	text = "案情摘要：" + s.Profile.Summary() + "\n\n" + checklistReply(s.Checklist)
	return e.respond(s, text, guidanceSuggestions)
}

func (e *Engine) handleGuidance(ctx context.Context, s *Session, text string) *Reply {
	if isEndToken(text) {
		s.Stage = StageInventory
		return e.respond(s, inventoryPromptReply, nil)
	}
	return e.chat(ctx, s, guidanceSystemPrompt(s), guidanceWindow, guidanceSuggestions)
}

func (e *Engine) handleInventory(ctx context.Context, s *Session, text string) *Reply {
	if len(s.Proposed) > 0 {
		if isConfirmToken(text) {
			s.Inventory = s.Proposed
			s.Proposed = nil
			s.Cursor = 0
			s.Stage = StageAnalysis
			return e.respond(s, analysisOpeningReply+"\n\n"+e.currentItemPrompt(s), nil)
		}
		// anything but a confirmation discards the parse; a plain rejection
		// re-prompts, other text counts as a fresh description
		s.Proposed = nil
		if isRejectToken(text) || isEndToken(text) {
			return e.respond(s, inventoryPromptReply, nil)
		}
	}

	if isEndToken(text) {
		return e.respond(s, noEvidenceReply, nil)
	}

	items := e.resolver.Resolve(ctx, text)
	if len(items) == 0 {
		return e.respond(s, inventoryRetryReply, nil)
	}

	s.Proposed = items
	return e.respond(s, inventoryReply(items), nil)
}

func (e *Engine) handleAnalysisCommand(s *Session, text string) *Reply {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "list":
		return e.respond(s, e.listInventory(s), nil)
	case "progress":
		p := s.Progress()
		return e.respond(s, fmt.Sprintf("分析进度：共%d项，已处理%d项，剩余%d项。", p.Total, p.Done, p.Remaining), nil)
	case "skip":
		return e.skip(s)
	case "back":
		s.Inventory = nil
		s.Cursor = 0
		s.Stage = StageInventory
		return e.respond(s, inventoryPromptReply, nil)
	default:
		return e.respond(s, "当前处于证据分析阶段。"+e.currentItemPrompt(s)+"\n可用指令：skip / list / progress / back / quit。", nil)
	}
}

func (e *Engine) handleReportStage(ctx context.Context, s *Session, text string) *Reply {
	if isEndToken(text) {
		return e.finish(s, farewellReply)
	}
	if strings.EqualFold(strings.TrimSpace(text), "back") && len(s.Inventory) > 0 {
		s.Stage = StageAnalysis
		return e.respond(s, e.currentItemPrompt(s), nil)
	}
	return e.chat(ctx, s, analysisSystemPrompt(s), analysisWindow, analysisSuggestions)
}

// AnalyzeCurrent runs the analyzer on the inventory item under the cursor
// using the uploaded file at path, falling back to a mocked result when the
// analyzer fleet is unreachable. On success the cursor advances.
func (e *Engine) AnalyzeCurrent(ctx context.Context, s *Session, path string) (*Reply, error) {
	if s.Stage != StageAnalysis {
		return nil, ErrWrongStage
	}
	item, ok := s.CurrentItem()
	if !ok {
		return nil, ErrWrongStage
	}
	if item.Type == evidence.CategoryOther {
		return nil, fmt.Errorf("%w: %s", ErrUnanalyzableItem, item.Name)
	}

	mocked := false
	raw, err := e.client.Analyze(ctx, item.Type, path)
	if err != nil {
		if !errors.Is(err, analysis.ErrNetworkFailure) && !errors.Is(err, analysis.ErrServerFailure) &&
			!errors.Is(err, analysis.ErrParseFailure) {
			return nil, err
		}
		e.log.Warn("workflow", "analyzer unavailable, using mock result", map[string]interface{}{
			"session_id": s.ID,
			"category":   string(item.Type),
			"error":      err.Error(),
		})
		raw = analysis.MockResult(item.Type)
		mocked = true
	}

	record := analysis.Record{
		EvidenceName: item.Name,
		Category:     item.Type,
		FileName:     filepath.Base(path),
		Raw:          raw,
		Assessment:   analysis.Standardize(item.Type, raw),
		Mocked:       mocked,
		AnalyzedAt:   e.now(),
	}
	s.Records = append(s.Records, record)
	e.markCollected(s, item.Type, path)

	text := recordReply(record) + "\n\n" + e.advanceCursor(s)
	return e.respond(s, text, nil), nil
}

// Skip moves past the current inventory item without analyzing it.
func (e *Engine) Skip(s *Session) (*Reply, error) {
	if s.Stage != StageAnalysis {
		return nil, ErrWrongStage
	}
	return e.skip(s), nil
}

func (e *Engine) skip(s *Session) *Reply {
	item, ok := s.CurrentItem()
	if !ok {
		return e.respond(s, e.advanceCursor(s), nil)
	}
	text := fmt.Sprintf("已跳过：%s。", item.Name) + "\n" + e.advanceCursor(s)
	return e.respond(s, text, nil)
}

// GenerateReport assembles the report document and persists all three
// formats alongside the session artifacts.
func (e *Engine) GenerateReport(s *Session, writer *report.Writer) (*report.Document, report.Files, error) {
	if s.Stage != StageReport && s.Stage != StageFinished {
		return nil, report.Files{}, ErrWrongStage
	}
	if len(s.Records) == 0 {
		return nil, report.Files{}, ErrNoAnalyzedEvidence
	}

	doc := e.assembler.Assemble(report.Input{
		CaseID:    s.ID,
		Profile:   s.Profile,
		Checklist: s.Checklist,
		Records:   s.Records,
		Messages:  reportMessages(s.Messages),
	})
	files, err := writer.Save(doc)
	if err != nil {
		return nil, report.Files{}, fmt.Errorf("save report: %w", err)
	}
	e.log.Info("workflow", "report generated", map[string]interface{}{
		"session_id": s.ID,
		"strength":   string(doc.Legal.StrengthLevel),
	})
	return doc, files, nil
}

func (e *Engine) chat(ctx context.Context, s *Session, systemPrompt string, window int, suggestions []string) *Reply {
	history := []llm.Message{{Role: "system", Content: systemPrompt}}
	msgs := s.Messages
	if len(msgs) > window {
		msgs = msgs[len(msgs)-window:]
	}
	for _, m := range msgs {
		if m.Role == "user" || m.Role == "assistant" {
			history = append(history, llm.Message{Role: m.Role, Content: m.Content})
		}
	}

	answer, err := e.provider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			e.log.Warn("workflow", "chat provider failed", map[string]interface{}{
				"session_id": s.ID,
				"error":      err.Error(),
			})
		}
		return e.respond(s, chatUnavailableReply, suggestions)
	}
	return e.respond(s, answer, suggestions)
}

// advanceCursor moves to the next inventory item and handles the edges out
// of the analysis stage: an exhausted cursor goes to the report stage once
// at least one record exists, otherwise back to the inventory stage, as does
// an empty inventory.
func (e *Engine) advanceCursor(s *Session) string {
	s.Cursor++
	if len(s.Inventory) == 0 {
		s.Stage = StageInventory
		s.Cursor = 0
		return inventoryPromptReply
	}
	if s.Cursor >= len(s.Inventory) {
		if len(s.Records) == 0 {
			s.Stage = StageInventory
			s.Inventory = nil
			s.Cursor = 0
			return allSkippedReply
		}
		s.Stage = StageReport
		return "全部证据材料已处理完毕，可以生成咨询报告。您也可以继续就分析结果提问，回复\"没有\"结束咨询。"
	}
	return e.currentItemPrompt(s)
}

func (e *Engine) currentItemPrompt(s *Session) string {
	item, ok := s.CurrentItem()
	if !ok {
		return ""
	}
	if item.Type == evidence.CategoryOther {
		return fmt.Sprintf("当前材料：%s。该类型暂不支持自动分析，请使用 skip 跳过。", item.Name)
	}
	label := string(item.Type)
	if spec, ok := e.catalog.Spec(item.Type); ok {
		label = spec.Label
	}
	return fmt.Sprintf("当前材料：%s（%s）。请上传对应文件进行分析，或使用 skip 跳过。", item.Name, label)
}

func (e *Engine) listInventory(s *Session) string {
	var b strings.Builder
	b.WriteString("证据材料清单：\n")
	for i, item := range s.Inventory {
		marker := " "
		switch {
		case i < s.Cursor:
			marker = "✓"
		case i == s.Cursor:
			marker = "→"
		}
		fmt.Fprintf(&b, "%s %d. %s（%s）\n", marker, i+1, item.Name, item.Type)
	}
	return b.String()
}

func (e *Engine) markCollected(s *Session, category evidence.Category, path string) {
	spec, ok := e.catalog.Spec(category)
	if !ok {
		return
	}
	for i := range s.Checklist {
		if s.Checklist[i].Status != evidence.StatusCollected && strings.Contains(s.Checklist[i].Type, spec.Label) {
			s.Checklist[i].Status = evidence.StatusCollected
			s.Checklist[i].FilePath = path
			return
		}
	}
}

// finish closes the session and persists every artifact best effort; a
// failed save is logged, never surfaced, so the farewell always goes out.
func (e *Engine) finish(s *Session, text string) *Reply {
	s.Stage = StageFinished
	r := e.respond(s, text, nil)
	r.Ended = true
	if e.artifacts != nil {
		if err := e.artifacts.SaveAll(s); err != nil {
			e.log.Error("workflow", "artifact persistence failed", map[string]interface{}{
				"session_id": s.ID,
				"error":      err.Error(),
			})
		}
	}
	e.log.Info("workflow", "session finished", map[string]interface{}{"session_id": s.ID})
	return r
}

func (e *Engine) respond(s *Session, text string, suggestions []string) *Reply {
	s.append("assistant", text, e.now())
	return e.reply(s, text, suggestions)
}

func (e *Engine) reply(s *Session, text string, suggestions []string) *Reply {
	return &Reply{
		Text:        text,
		Suggestions: suggestions,
		Stage:       s.Stage,
		StageName:   s.Stage.String(),
		Ended:       s.Stage == StageFinished,
	}
}

func (e *Engine) replyEnded(s *Session) *Reply {
	r := e.reply(s, farewellReply, nil)
	r.Ended = true
	return r
}

func reportMessages(msgs []Message) []report.ChatMessage {
	out := make([]report.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, report.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
