package report

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"

	"ai-laborlaw-be/pkg/evidence"
)

var disclaimerItems = []string{
	"本报告基于您提供的信息生成，仅供参考，不构成正式法律意见",
	"具体维权方案请咨询执业律师或当地法律援助机构",
	"劳动争议申请仲裁的时效期间为一年，请注意把握时间",
	"证据原件请妥善保管，提交仲裁或诉讼时使用复印件并当庭出示原件",
}

// RenderText renders the document as the canonical plain-text report.
func RenderText(doc *Document) string {
	var b strings.Builder

	b.WriteString("劳动争议案件分析报告\n")
	b.WriteString("=" + strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "案件编号：%s\n", doc.CaseID)
	fmt.Fprintf(&b, "生成时间：%s\n\n", doc.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("一、案件基本信息\n")
	fmt.Fprintf(&b, "当事人：%s\n", doc.Profile.EmployeeName)
	if doc.Profile.CompanyName != "" {
		fmt.Fprintf(&b, "用人单位：%s\n", doc.Profile.CompanyName)
	}
	fmt.Fprintf(&b, "争议类型：%s\n", doc.Profile.DisputeCategory)
	if doc.Profile.MonthlySalary > 0 {
		fmt.Fprintf(&b, "月平均工资：%d元\n", doc.Profile.MonthlySalary)
	}
	for _, ev := range doc.Timeline {
		fmt.Fprintf(&b, "%s  %s\n", ev.Date, ev.Event)
	}
	fmt.Fprintf(&b, "案情摘要：%s\n\n", doc.Summary)

	b.WriteString("二、争议焦点分析\n")
	for i, focus := range doc.DisputeFocus {
		fmt.Fprintf(&b, "%d. %s\n", i+1, focus)
	}
	b.WriteString("\n")

	b.WriteString("三、证据需求清单\n")
	renderChecklistGroup(&b, doc.Checklist, evidence.ImportanceCore, "【核心证据】")
	renderChecklistGroup(&b, doc.Checklist, evidence.ImportanceImportant, "【重要证据】")
	renderChecklistGroup(&b, doc.Checklist, evidence.ImportanceAuxiliary, "【辅助证据】")
	fmt.Fprintf(&b, "共%d项，已收集%d项\n\n", doc.Statistics.Total, doc.Statistics.Collected)

	b.WriteString("四、证据分析结果\n")
	if len(doc.Records) == 0 {
		b.WriteString("（本次咨询未进行证据文件分析）\n")
	}
	for i, r := range doc.Records {
		verdict := "有效"
		if !r.Assessment.IsValid {
			verdict = "证明力有限"
		}
		fmt.Fprintf(&b, "%d. %s（%s）：%s，有效性评分 %.2f", i+1, r.EvidenceName, r.Category, verdict, r.Assessment.Score)
		if r.Mocked {
			b.WriteString("（模拟分析结果，分析服务不可用时生成）")
		}
		b.WriteString("\n")
		fields := make([]string, 0, len(r.Assessment.KeyInfo))
		for field := range r.Assessment.KeyInfo {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(&b, "   %s：%s\n", field, r.Assessment.KeyInfo[field])
		}
	}
	b.WriteString("\n")

	b.WriteString("五、法律分析\n")
	fmt.Fprintf(&b, "案件强度：%s（%.2f）\n", doc.Legal.StrengthLevel, doc.Legal.StrengthScore)
	for _, point := range doc.Legal.Points {
		fmt.Fprintf(&b, "- %s\n", point)
	}
	b.WriteString("\n")

	b.WriteString("六、维权建议\n")
	for i, rec := range doc.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")

	b.WriteString("七、后续行动计划\n")
	b.WriteString("短期：\n")
	for _, step := range doc.ActionPlan.ShortTerm {
		fmt.Fprintf(&b, "- %s\n", step)
	}
	b.WriteString("中期：\n")
	for _, step := range doc.ActionPlan.MidTerm {
		fmt.Fprintf(&b, "- %s\n", step)
	}
	b.WriteString("长期：\n")
	for _, step := range doc.ActionPlan.LongTerm {
		fmt.Fprintf(&b, "- %s\n", step)
	}
	b.WriteString("\n")

	b.WriteString("八、咨询记录摘要\n")
	fmt.Fprintf(&b, "本次咨询共%d条消息\n", doc.Consultation.TotalMessages)
	for _, q := range doc.Consultation.UserQuestions {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\n注意事项：\n")
	for i, item := range disclaimerItems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}

	return b.String()
}

func renderChecklistGroup(b *strings.Builder, items []evidence.Requirement, importance evidence.Importance, header string) {
	var group []evidence.Requirement
	for _, item := range items {
		if item.Importance == importance {
			group = append(group, item)
		}
	}
	if len(group) == 0 {
		return
	}
	b.WriteString(header + "\n")
	for _, item := range group {
		fmt.Fprintf(b, "- %s（%s，收集难度：%s）\n", item.Type, item.Status, item.Difficulty)
		if item.Description != "" {
			fmt.Fprintf(b, "  证明内容：%s\n", item.Description)
		}
		if item.CollectionMethod != "" {
			fmt.Fprintf(b, "  收集方式：%s\n", item.CollectionMethod)
		}
		if item.LegalBasis != "" {
			fmt.Fprintf(b, "  法律依据：%s\n", item.LegalBasis)
		}
	}
}

const htmlShell = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>劳动争议案件分析报告 %s</title>
<style>
body { font-family: "PingFang SC", "Microsoft YaHei", sans-serif; background: #f5f6f8; margin: 0; padding: 24px; }
.report { max-width: 860px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,.08); }
pre { white-space: pre-wrap; word-break: break-word; font-family: inherit; line-height: 1.7; color: #2c3e50; }
</style>
</head>
<body>
<div class="report"><pre>%s</pre></div>
</body>
</html>
`

// RenderHTML wraps the canonical text rendering in a styled page. Rendering
// from the same document as RenderText keeps the two formats in lockstep.
func RenderHTML(doc *Document) string {
	return fmt.Sprintf(htmlShell, html.EscapeString(doc.CaseID), html.EscapeString(RenderText(doc)))
}

type jsonReport struct {
	ReportInfo struct {
		CaseID      string `json:"case_id"`
		GeneratedAt string `json:"generated_at"`
		ReportType  string `json:"report_type"`
	} `json:"report_info"`
	CaseSummary struct {
		Profile  interface{} `json:"profile"`
		Summary  string      `json:"summary"`
		Timeline interface{} `json:"timeline"`
		Focus    []string    `json:"dispute_focus"`
	} `json:"case_summary"`
	EvidenceAnalysis struct {
		Checklist  interface{} `json:"checklist"`
		Statistics interface{} `json:"statistics"`
		Records    interface{} `json:"records"`
	} `json:"evidence_analysis"`
	LegalAnalysis   LegalAnalysis `json:"legal_analysis"`
	Recommendations struct {
		Items      []string   `json:"items"`
		ActionPlan ActionPlan `json:"action_plan"`
	} `json:"recommendations"`
}

// RenderJSON renders the machine-readable report.
func RenderJSON(doc *Document) ([]byte, error) {
	var out jsonReport
	out.ReportInfo.CaseID = doc.CaseID
	out.ReportInfo.GeneratedAt = doc.GeneratedAt.Format("2006-01-02 15:04:05")
	out.ReportInfo.ReportType = "劳动争议案件分析报告"
	out.CaseSummary.Profile = doc.Profile
	out.CaseSummary.Summary = doc.Summary
	out.CaseSummary.Timeline = doc.Timeline
	out.CaseSummary.Focus = doc.DisputeFocus
	out.EvidenceAnalysis.Checklist = doc.Checklist
	out.EvidenceAnalysis.Statistics = doc.Statistics
	out.EvidenceAnalysis.Records = doc.Records
	out.LegalAnalysis = doc.Legal
	out.Recommendations.Items = doc.Recommendations
	out.Recommendations.ActionPlan = doc.ActionPlan
	return json.MarshalIndent(out, "", "  ")
}

// RenderSummary renders the short variant: basics, strength and the top
// recommendations only.
func RenderSummary(doc *Document) string {
	var b strings.Builder
	b.WriteString("案件分析摘要\n")
	fmt.Fprintf(&b, "案件编号：%s\n", doc.CaseID)
	fmt.Fprintf(&b, "当事人：%s\n", doc.Profile.EmployeeName)
	fmt.Fprintf(&b, "争议类型：%s\n", doc.Profile.DisputeCategory)
	fmt.Fprintf(&b, "案件强度：%s（%.2f）\n", doc.Legal.StrengthLevel, doc.Legal.StrengthScore)
	fmt.Fprintf(&b, "证据清单：共%d项，已收集%d项\n", doc.Statistics.Total, doc.Statistics.Collected)
	limit := len(doc.Recommendations)
	if limit > 3 {
		limit = 3
	}
	b.WriteString("重点建议：\n")
	for _, rec := range doc.Recommendations[:limit] {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}
