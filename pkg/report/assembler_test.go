package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/lawcase"
)

func fixedAssembler() *Assembler {
	return &Assembler{Now: func() time.Time {
		return time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	}}
}

func sampleInput() Input {
	profile := &lawcase.CaseProfile{
		EmployeeName:    "张三",
		CompanyName:     "某科技有限公司",
		DisputeCategory: lawcase.DisputeWrongfulTermination,
		MonthlySalary:   12000,
		HireDate:        "2022-03-15",
		EvidenceStatus:  map[string]string{},
	}
	return Input{
		CaseID:    "case_20250601_150000_abcd1234",
		Profile:   profile,
		Checklist: evidence.TemplateChecklist(profile.DisputeCategory),
		Records: []analysis.Record{
			{
				EvidenceName: "劳动合同",
				Category:     evidence.CategoryContract,
				Raw:          analysis.MockResult(evidence.CategoryContract),
				Assessment:   analysis.Standardize(evidence.CategoryContract, analysis.MockResult(evidence.CategoryContract)),
				Mocked:       true,
			},
		},
		Messages: []ChatMessage{
			{Role: "user", Content: "我被公司辞退了怎么办"},
			{Role: "assistant", Content: "请先说明解除的理由"},
			{Role: "user", Content: "赔偿金怎么算？"},
		},
	}
}

func TestAssembleStrengthScore(t *testing.T) {
	doc := fixedAssembler().Assemble(sampleInput())

	// 0.5 base + 0.2 no training + 0.2 employer without evidence + 0.3 all valid
	assert.Equal(t, 1.0, doc.Legal.StrengthScore)
	assert.Equal(t, StrengthStrong, doc.Legal.StrengthLevel)
	assert.NotEmpty(t, doc.Legal.Points)
}

func TestAssembleWithoutProfileStillWorks(t *testing.T) {
	doc := fixedAssembler().Assemble(Input{CaseID: "case_x"})

	assert.Equal(t, lawcase.DefaultEmployeeName, doc.Profile.EmployeeName)
	assert.Equal(t, lawcase.DisputeGeneral, doc.Profile.DisputeCategory)
	assert.NotEmpty(t, doc.DisputeFocus)
	assert.NotEmpty(t, doc.Recommendations)
}

func TestAssembleChatSummary(t *testing.T) {
	doc := fixedAssembler().Assemble(sampleInput())

	assert.Equal(t, 3, doc.Consultation.TotalMessages)
	require.Len(t, doc.Consultation.UserQuestions, 2)
	assert.Equal(t, "我被公司辞退了怎么办", doc.Consultation.UserQuestions[0])
	assert.Equal(t, "赔偿金怎么算？", doc.Consultation.UserQuestions[1])
}

func TestRenderingsStayConsistent(t *testing.T) {
	doc := fixedAssembler().Assemble(sampleInput())

	text := RenderText(doc)
	htmlOut := RenderHTML(doc)
	jsonOut, err := RenderJSON(doc)
	require.NoError(t, err)

	// every format reports the same case id and strength level
	assert.Contains(t, text, doc.CaseID)
	assert.Contains(t, htmlOut, doc.CaseID)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonOut, &decoded))
	info := decoded["report_info"].(map[string]interface{})
	assert.Equal(t, doc.CaseID, info["case_id"])

	legal := decoded["legal_analysis"].(map[string]interface{})
	assert.Equal(t, string(doc.Legal.StrengthLevel), legal["strength_level"])
	assert.Contains(t, text, string(doc.Legal.StrengthLevel))
}

func TestRenderTextSectionsAndDisclaimer(t *testing.T) {
	doc := fixedAssembler().Assemble(sampleInput())
	text := RenderText(doc)

	for _, section := range []string{
		"一、案件基本信息", "二、争议焦点分析", "三、证据需求清单", "四、证据分析结果",
		"五、法律分析", "六、维权建议", "七、后续行动计划", "八、咨询记录摘要",
	} {
		assert.Contains(t, text, section)
	}
	assert.Contains(t, text, "注意事项")
	assert.Contains(t, text, "不构成正式法律意见")
	assert.Contains(t, text, "【核心证据】")
	assert.Contains(t, text, "模拟分析结果")
}

func TestRenderTextKeyInfoOrderIsStable(t *testing.T) {
	in := sampleInput()
	in.Records[0].Assessment.KeyInfo = map[string]string{
		"签订日期": "2022-03-15",
		"合同期限": "三年",
		"用人单位": "某科技有限公司",
		"岗位":   "工程师",
	}
	doc := fixedAssembler().Assemble(in)

	first := RenderText(doc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RenderText(doc))
	}
}

func TestRenderSummaryIsShort(t *testing.T) {
	doc := fixedAssembler().Assemble(sampleInput())

	summary := RenderSummary(doc)
	assert.Contains(t, summary, "案件分析摘要")
	assert.Contains(t, summary, doc.CaseID)
	assert.Less(t, len(summary), len(RenderText(doc)))
}

func TestWriterSavesAllFormats(t *testing.T) {
	doc := fixedAssembler().Assemble(sampleInput())
	w := NewWriter(t.TempDir())

	files, err := w.Save(doc)
	require.NoError(t, err)

	for _, path := range []string{files.Text, files.HTML, files.JSON} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.True(t, strings.HasSuffix(files.Text, ".txt"))
	assert.True(t, strings.HasSuffix(files.HTML, ".html"))
	assert.True(t, strings.HasSuffix(files.JSON, ".json"))
}
