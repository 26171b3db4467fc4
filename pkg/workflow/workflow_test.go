package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/llm"
	"ai-laborlaw-be/pkg/report"
)

// scriptedProvider answers Chat and Generate independently so one stub can
// play planner, resolver and consultation chat at once.
type scriptedProvider struct {
	chatReply string
	chatErr   error
	genReply  string
	genErr    error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.chatReply, p.chatErr
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.genReply, p.genErr
}

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
}

// newTestEngine wires an engine whose analyzers are unreachable, so analysis
// exercises the mock fallback.
func newTestEngine(t *testing.T, provider llm.LLMProvider, artifactDir string) *Engine {
	return newTestEngineAt(t, provider, artifactDir, "http://127.0.0.1:1/analyze")
}

func newTestEngineAt(t *testing.T, provider llm.LLMProvider, artifactDir, analyzerURL string) *Engine {
	t.Helper()
	log := testLogger(t)
	overrides := map[evidence.Category]string{}
	for _, c := range []evidence.Category{
		evidence.CategoryContract, evidence.CategoryPayslip, evidence.CategoryAttendance,
		evidence.CategoryInjury, evidence.CategoryRecording, evidence.CategoryChat,
	} {
		overrides[c] = analyzerURL
	}
	catalog := evidence.NewCatalog(overrides)
	var store *ArtifactStore
	if artifactDir != "" {
		store = NewArtifactStore(artifactDir)
	}
	return NewEngine(
		evidence.NewPlanner(provider, log),
		evidence.NewResolver(provider, log),
		analysis.NewClient(catalog, log),
		catalog,
		provider,
		store,
		log,
	)
}

func TestFullConsultationFlow(t *testing.T) {
	provider := &scriptedProvider{
		chatErr:  errors.New("model down"),
		genReply: `[{"name": "劳动合同", "type": "contract"}, {"name": "监控视频", "type": "video"}]`,
	}
	artifactDir := t.TempDir()
	e := newTestEngine(t, provider, artifactDir)

	s, opening := e.Start()
	assert.Equal(t, StageCollect, opening.Stage)
	assert.Contains(t, s.ID, "case_")

	r := e.Handle(context.Background(), s, "我叫张三，在某科技有限公司工作，月薪12000元，公司违法解除劳动合同")
	assert.Equal(t, StageCollect, r.Stage)

	// end of intake: profile extracted, checklist planned (template fallback
	// because the model is down)
	r = e.Handle(context.Background(), s, "没有")
	assert.Equal(t, StageGuidance, r.Stage)
	require.NotNil(t, s.Profile)
	assert.Equal(t, "张三", s.Profile.EmployeeName)
	assert.Len(t, s.Checklist, 8)
	assert.Contains(t, r.Text, "劳动合同")

	// guidance question with the model down falls back with suggestions
	r = e.Handle(context.Background(), s, "如何收集证据？")
	assert.Equal(t, StageGuidance, r.Stage)
	assert.Contains(t, r.Text, "暂时不可用")
	assert.Equal(t, guidanceSuggestions, r.Suggestions)

	r = e.Handle(context.Background(), s, "没有")
	assert.Equal(t, StageInventory, r.Stage)

	// the resolved inventory is only a proposal until the client confirms
	r = e.Handle(context.Background(), s, "我有劳动合同和一段监控视频")
	assert.Equal(t, StageInventory, r.Stage)
	require.Len(t, s.Proposed, 2)
	assert.Empty(t, s.Inventory)

	r = e.Handle(context.Background(), s, "是")
	assert.Equal(t, StageAnalysis, r.Stage)
	assert.Empty(t, s.Proposed)
	require.Len(t, s.Inventory, 2)
	assert.Equal(t, evidence.CategoryContract, s.Inventory[0].Type)
	assert.Equal(t, evidence.CategoryOther, s.Inventory[1].Type)

	// analyzer unreachable: contract analysis resolves through the mock path
	contractFile := filepath.Join(t.TempDir(), "合同.pdf")
	require.NoError(t, os.WriteFile(contractFile, []byte("pdf"), 0o644))
	ar, err := e.AnalyzeCurrent(context.Background(), s, contractFile)
	require.NoError(t, err)
	require.Len(t, s.Records, 1)
	assert.True(t, s.Records[0].Mocked)
	assert.Contains(t, ar.Text, "劳动合同")
	assert.Contains(t, ar.Text, "分析完成")
	assert.Equal(t, StageAnalysis, ar.Stage)

	// the matching checklist row records the uploaded file
	var bound bool
	for _, item := range s.Checklist {
		if item.Status == evidence.StatusCollected {
			assert.Equal(t, contractFile, item.FilePath)
			bound = true
		}
	}
	assert.True(t, bound)

	// the "other" item cannot be analyzed, only skipped
	_, err = e.AnalyzeCurrent(context.Background(), s, contractFile)
	assert.ErrorIs(t, err, ErrUnanalyzableItem)
	sr, err := e.Skip(s)
	require.NoError(t, err)
	assert.Equal(t, StageReport, sr.Stage)

	doc, files, err := e.GenerateReport(s, report.NewWriter(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, s.ID, doc.CaseID)
	assert.FileExists(t, files.Text)

	r = e.Handle(context.Background(), s, "没有")
	assert.True(t, r.Ended)
	assert.Equal(t, StageFinished, s.Stage)

	// every transcript entry carries the stage it was spoken in
	assert.Equal(t, StageCollect.String(), s.Messages[0].Stage)
	assert.Equal(t, StageFinished.String(), s.Messages[len(s.Messages)-1].Stage)

	// artifacts persisted on finish
	for _, suffix := range []string{"_case_info.json", "_evidence_list.json", "_evidence_inventory.json", "_analysis_results.json", "_chat_history.json", "_sharegpt_data.json"} {
		assert.FileExists(t, filepath.Join(artifactDir, s.ID+suffix))
	}
}

func TestQuitAbortsAnyStage(t *testing.T) {
	dir := t.TempDir()
	e := newTestEngine(t, &scriptedProvider{chatErr: errors.New("down"), genErr: errors.New("down")}, dir)

	s, _ := e.Start()
	e.Handle(context.Background(), s, "随便说点什么")
	r := e.Handle(context.Background(), s, "quit")

	assert.True(t, r.Ended)
	assert.Equal(t, StageFinished, s.Stage)
	// best-effort persistence still writes transcript and export
	assert.FileExists(t, filepath.Join(dir, s.ID+"_chat_history.json"))
	assert.NoFileExists(t, filepath.Join(dir, s.ID+"_case_info.json"))

	// the dialogue export is an object keyed by "conversations"
	data, err := os.ReadFile(filepath.Join(dir, s.ID+"_sharegpt_data.json"))
	require.NoError(t, err)
	var export map[string][]ShareGPTEntry
	require.NoError(t, json.Unmarshal(data, &export))
	assert.NotEmpty(t, export["conversations"])

	// an aborted session with no analysis records yields no report
	_, _, err = e.GenerateReport(s, report.NewWriter(t.TempDir()))
	assert.ErrorIs(t, err, ErrNoAnalyzedEvidence)
}

func TestInventoryRetryOnUnresolvableDescription(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{chatErr: errors.New("down"), genReply: "完全不是JSON"}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "有纠纷")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")
	require.Equal(t, StageInventory, s.Stage)

	r := e.Handle(context.Background(), s, "我有一堆材料")
	assert.Equal(t, StageInventory, r.Stage)
	assert.Contains(t, r.Text, "未能识别")
}

func TestNoEvidenceStaysInInventory(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{chatErr: errors.New("down")}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "有纠纷")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")

	// no inventory, no analysis records: the report stage is unreachable
	r := e.Handle(context.Background(), s, "没有")
	assert.Equal(t, StageInventory, r.Stage)
	assert.Contains(t, r.Text, "至少需要")

	_, _, err := e.GenerateReport(s, report.NewWriter(t.TempDir()))
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestAllSkippedItemsReturnToInventory(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{
		chatErr:  errors.New("down"),
		genReply: `[{"name": "工资条", "type": "payslip"}]`,
	}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "拖欠工资")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "我有工资条")
	e.Handle(context.Background(), s, "是")
	require.Equal(t, StageAnalysis, s.Stage)

	r := e.Handle(context.Background(), s, "skip")
	assert.Equal(t, StageInventory, r.Stage)
	assert.Empty(t, s.Records)
	assert.Empty(t, s.Inventory)

	_, _, err := e.GenerateReport(s, report.NewWriter(t.TempDir()))
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestInventoryRejectionDiscardsParse(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{
		chatErr:  errors.New("down"),
		genReply: `[{"name": "工资条", "type": "payslip"}]`,
	}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "拖欠工资")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")

	r := e.Handle(context.Background(), s, "我有工资条")
	assert.Equal(t, StageInventory, r.Stage)
	require.Len(t, s.Proposed, 1)

	r = e.Handle(context.Background(), s, "否")
	assert.Equal(t, StageInventory, r.Stage)
	assert.Empty(t, s.Proposed)
	assert.Empty(t, s.Inventory)

	// re-describing after a rejection proposes a fresh parse
	r = e.Handle(context.Background(), s, "只有最近三个月的工资条")
	assert.Equal(t, StageInventory, r.Stage)
	require.Len(t, s.Proposed, 1)
}

func TestAnalysisBackEdgeToInventory(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{
		chatErr:  errors.New("down"),
		genReply: `[{"name": "工资条", "type": "payslip"}]`,
	}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "拖欠工资")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "我有工资条")
	e.Handle(context.Background(), s, "是")
	require.Equal(t, StageAnalysis, s.Stage)

	r := e.Handle(context.Background(), s, "back")
	assert.Equal(t, StageInventory, r.Stage)
	assert.Empty(t, s.Inventory)
}

func TestReportBackEdgeToAnalysis(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{
		chatErr:  errors.New("down"),
		genReply: `[{"name": "工资条", "type": "payslip"}]`,
	}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "拖欠工资")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "我有工资条")
	e.Handle(context.Background(), s, "是")

	payslip := filepath.Join(t.TempDir(), "工资条.pdf")
	require.NoError(t, os.WriteFile(payslip, []byte("pdf"), 0o644))
	_, err := e.AnalyzeCurrent(context.Background(), s, payslip)
	require.NoError(t, err)
	require.Equal(t, StageReport, s.Stage)

	r := e.Handle(context.Background(), s, "back")
	assert.Equal(t, StageAnalysis, r.Stage)
}

func TestUnparseableAnalyzerReplyFallsBackToMock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	e := newTestEngineAt(t, &scriptedProvider{
		chatErr:  errors.New("down"),
		genReply: `[{"name": "劳动合同", "type": "contract"}]`,
	}, "", server.URL)
	s, _ := e.Start()
	e.Handle(context.Background(), s, "违法解除")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "没有")
	e.Handle(context.Background(), s, "我有劳动合同")
	e.Handle(context.Background(), s, "是")
	require.Equal(t, StageAnalysis, s.Stage)

	contract := filepath.Join(t.TempDir(), "合同.pdf")
	require.NoError(t, os.WriteFile(contract, []byte("pdf"), 0o644))
	_, err := e.AnalyzeCurrent(context.Background(), s, contract)

	require.NoError(t, err)
	require.Len(t, s.Records, 1)
	assert.True(t, s.Records[0].Mocked)
}

func TestEndTokensAreExactMatch(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{chatReply: "建议如下"}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "有纠纷")
	e.Handle(context.Background(), s, "没有")
	require.Equal(t, StageGuidance, s.Stage)

	// a sentence containing an end token must not end the stage
	r := e.Handle(context.Background(), s, "我没有劳动合同怎么办")
	assert.Equal(t, StageGuidance, r.Stage)
	assert.Equal(t, "建议如下", r.Text)

	r = e.Handle(context.Background(), s, "NO")
	assert.Equal(t, StageInventory, r.Stage)
}

func TestWrongStageOperations(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{chatErr: errors.New("down")}, "")
	s, _ := e.Start()

	_, err := e.AnalyzeCurrent(context.Background(), s, "x.pdf")
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = e.Skip(s)
	assert.ErrorIs(t, err, ErrWrongStage)
	_, _, err = e.GenerateReport(s, report.NewWriter(t.TempDir()))
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestShareGPTSystemEntry(t *testing.T) {
	e := newTestEngine(t, &scriptedProvider{chatErr: errors.New("down")}, "")
	s, _ := e.Start()
	e.Handle(context.Background(), s, "我被违法辞退了")

	entries := BuildShareGPT(s)
	require.NotEmpty(t, entries)
	assert.NotEqual(t, "system", entries[0].From)

	e.Handle(context.Background(), s, "没有")
	entries = BuildShareGPT(s)
	assert.Equal(t, "system", entries[0].From)
	var systems int
	for _, entry := range entries {
		if entry.From == "system" {
			systems++
		}
	}
	assert.Equal(t, 1, systems)

	var last string
	for _, entry := range entries {
		last = entry.From
	}
	assert.Equal(t, "gpt", last)
}

func TestSessionIDFormat(t *testing.T) {
	s := NewSession(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^case_20250601_080000_[0-9a-f]{8}$`, s.ID)
}
