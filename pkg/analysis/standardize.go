package analysis

import (
	"strings"

	"ai-laborlaw-be/pkg/evidence"
)

// Assessment is the normalized view of one analyzer result. Raw analyzer
// payloads vary per category; the assessment is what the report layer and
// the chat prompts consume.
type Assessment struct {
	IsValid         bool              `json:"is_valid"`
	Score           float64           `json:"effectiveness_score"`
	KeyInfo         map[string]string `json:"key_info"`
	Recommendations []string          `json:"recommendations"`
}

var validityFields = []string{"是否可以作为核心证据", "是否可以作为证据", "是否可以作为有效证据"}

var keyInfoFields = map[evidence.Category][]string{
	evidence.CategoryContract:   {"主体公司名称", "合同起始日期", "合同终止日期", "约定薪资"},
	evidence.CategoryPayslip:    {"发放单位", "月应发工资", "月实发工资"},
	evidence.CategoryAttendance: {"统计周期", "出勤情况"},
	evidence.CategoryInjury:     {"鉴定机构", "鉴定日期", "鉴定结论"},
	evidence.CategoryRecording:  {"录音内容摘要"},
	evidence.CategoryChat:       {"聊天内容摘要"},
}

// completeness is scored over this fixed field set regardless of category.
var completenessFields = []string{"主体公司名称", "合同起始日期", "约定薪资", "鉴定日期", "鉴定机构"}

// Standardize normalizes a raw analyzer payload into an Assessment.
func Standardize(category evidence.Category, raw map[string]interface{}) Assessment {
	a := Assessment{
		IsValid: isValidEvidence(raw),
		Score:   effectivenessScore(raw),
		KeyInfo: extractKeyInfo(category, raw),
	}
	a.Recommendations = recommendations(category, a)
	return a
}

// isValidEvidence reads the analyzer's own verdict. The first verdict field
// present decides; absent any verdict, the validity explanation decides, and
// absent that too the evidence is presumed usable.
func isValidEvidence(raw map[string]interface{}) bool {
	for _, field := range validityFields {
		if v, ok := stringField(raw, field); ok {
			return v == "是"
		}
	}
	if explanation, ok := stringField(raw, "文件有效性说明"); ok {
		if strings.Contains(explanation, "无效") {
			return false
		}
		if strings.Contains(explanation, "有效") {
			return true
		}
	}
	return true
}

// effectivenessScore grades the result in [0, 1]: a 0.5 base, the analyzer's
// verdict, quality keywords in the validity explanation, and how many of the
// completeness fields are filled.
func effectivenessScore(raw map[string]interface{}) float64 {
	score := 0.5

	if v, ok := stringField(raw, "是否可以作为核心证据"); ok && v == "是" {
		score += 0.3
	} else if v, ok := stringField(raw, "是否可以作为证据"); ok && v == "是" {
		score += 0.2
	}

	if explanation, ok := stringField(raw, "文件有效性说明"); ok {
		for _, keyword := range []string{"完整", "清晰", "规范"} {
			if strings.Contains(explanation, keyword) {
				score += 0.1
			}
		}
	}

	filled := 0
	for _, field := range completenessFields {
		if v, ok := stringField(raw, field); ok && v != "" {
			filled++
		}
	}
	score += float64(filled) / float64(len(completenessFields)) * 0.2

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

func extractKeyInfo(category evidence.Category, raw map[string]interface{}) map[string]string {
	info := map[string]string{}
	for _, field := range keyInfoFields[category] {
		if v, ok := stringField(raw, field); ok && v != "" {
			info[field] = v
		}
	}
	return info
}

func recommendations(category evidence.Category, a Assessment) []string {
	var recs []string
	if !a.IsValid {
		recs = append(recs, "该材料证明力有限，建议补充其他证据相互印证")
	}
	if a.Score < 0.6 {
		recs = append(recs, "建议提供更清晰完整的原件或扫描件")
	}

	switch category {
	case evidence.CategoryContract:
		recs = append(recs, "妥善保管劳动合同原件，仲裁时需出示")
	case evidence.CategoryPayslip:
		recs = append(recs, "配合银行流水使用，流水需加盖银行业务章")
	case evidence.CategoryAttendance:
		recs = append(recs, "考勤原始数据在公司手中的，可在仲裁中申请责令提交")
	case evidence.CategoryInjury:
		recs = append(recs, "核对鉴定书的机构资质与鉴定时限")
	case evidence.CategoryRecording:
		recs = append(recs, "建议对录音内容进行文字整理并办理公证")
	case evidence.CategoryChat:
		recs = append(recs, "保留原始聊天载体，截图需能与手机原件核对")
	default:
		recs = append(recs, "建议咨询律师确认该材料的证明用途")
	}
	return recs
}

func stringField(raw map[string]interface{}, field string) (string, bool) {
	v, ok := raw[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
