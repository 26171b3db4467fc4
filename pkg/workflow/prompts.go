package workflow

import (
	"fmt"
	"strings"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
)

// End tokens close the current conversational stage; quit tokens abort the
// whole consultation. Matching is exact after trimming, lowercased for the
// latin tokens, so ordinary questions never end a stage by accident.
var (
	endTokens  = map[string]struct{}{"没有": {}, "无": {}, "no": {}, "none": {}}
	quitTokens = map[string]struct{}{"quit": {}, "退出": {}}

	// Confirm/reject tokens only matter while a resolved inventory awaits
	// the client's approval.
	confirmTokens = map[string]struct{}{"是": {}, "确认": {}, "对": {}, "yes": {}, "y": {}, "ok": {}}
	rejectTokens  = map[string]struct{}{"否": {}, "不": {}, "不对": {}, "n": {}}
)

func isEndToken(text string) bool {
	_, ok := endTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func isQuitToken(text string) bool {
	_, ok := quitTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func isConfirmToken(text string) bool {
	_, ok := confirmTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func isRejectToken(text string) bool {
	_, ok := rejectTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

const (
	guidanceWindow = 10
	analysisWindow = 6
)

var guidanceSuggestions = []string{
	"如何收集劳动合同证据？",
	"公司不配合提供证据怎么办？",
	"什么是违法解除劳动合同？",
}

var analysisSuggestions = []string{
	"证据有效性如何？",
	"还需要补充什么证据？",
	"如何改进证据质量？",
}

const chatUnavailableReply = "抱歉，AI服务暂时不可用，请稍后再试。您也可以参考以下常见问题。"

const collectAckReply = "已记录。请继续补充您的情况，没有补充时回复\"没有\"进入下一步。"

const collectOpeningReply = "您好，我是劳动争议咨询助手。请描述您遇到的情况，可以分多条消息补充，说完后回复\"没有\"。"

const inventoryPromptReply = "请描述您目前已经掌握的证据材料（例如：劳动合同、工资条、谈话录音），没有证据可回复\"没有\"。"

const inventoryRetryReply = "未能识别出有效的证据材料，请换一种方式描述，例如\"我有劳动合同和最近六个月的工资条\"。"

const farewellReply = "本次咨询已结束，咨询记录与分析结果已保存。祝您维权顺利。"

const noEvidenceReply = "生成咨询报告前至少需要成功分析一项证据材料。请描述您掌握的证据；确实没有任何证据时，可回复\"quit\"结束咨询并保存记录。"

const allSkippedReply = "所有材料均已跳过，尚无任何分析结果。生成报告前至少需要成功分析一项证据，请重新描述您掌握的证据材料。"

const analysisOpeningReply = "接下来将逐项分析。请上传当前材料的文件进行分析，或使用指令：skip 跳过当前项，list 查看清单，progress 查看进度，quit 结束。"

func guidanceSystemPrompt(s *Session) string {
	var b strings.Builder
	b.WriteString("你是一位专业的劳动法律师助手，正在指导当事人收集证据。回答要具体、可操作，围绕证据收集展开。\n\n")
	if s.Profile != nil {
		b.WriteString("案件背景：\n" + s.Profile.Summary() + "\n\n")
	}
	if len(s.Checklist) > 0 {
		b.WriteString("证据需求清单：\n")
		for _, item := range s.Checklist {
			fmt.Fprintf(&b, "- %s（%s）\n", item.Type, item.Importance)
		}
	}
	return b.String()
}

func analysisSystemPrompt(s *Session) string {
	var b strings.Builder
	b.WriteString("你是一位专业的劳动法律师助手，正在为当事人解读证据分析结果。回答要结合已有分析结论。\n\n")
	if s.Profile != nil {
		b.WriteString("案件背景：\n" + s.Profile.Summary() + "\n\n")
	}
	if len(s.Records) > 0 {
		b.WriteString("已完成的证据分析：\n")
		for _, r := range s.Records {
			verdict := "有效"
			if !r.Assessment.IsValid {
				verdict = "证明力有限"
			}
			fmt.Fprintf(&b, "- %s：%s，评分%.2f\n", r.EvidenceName, verdict, r.Assessment.Score)
		}
	}
	return b.String()
}

func checklistReply(items []evidence.Requirement) string {
	var b strings.Builder
	b.WriteString("根据您的描述，建议收集以下证据：\n")
	for _, importance := range []evidence.Importance{evidence.ImportanceCore, evidence.ImportanceImportant, evidence.ImportanceAuxiliary} {
		for _, item := range items {
			if item.Importance == importance {
				fmt.Fprintf(&b, "- 【%s】%s（收集难度：%s）\n", item.Importance, item.Type, item.Difficulty)
			}
		}
	}
	b.WriteString("\n关于如何收集这些证据，您可以随时提问；没有问题请回复\"没有\"。")
	return b.String()
}

func inventoryReply(items []evidence.InventoryItem) string {
	var b strings.Builder
	b.WriteString("已识别出以下证据材料：\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s（%s）", i+1, item.Name, item.Type)
		if item.Description != "" {
			fmt.Fprintf(&b, "：%s", item.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n确认无误请回复\"是\"进入逐项分析；回复\"否\"或直接重新描述可重新识别。")
	return b.String()
}

func recordReply(r analysis.Record) string {
	var b strings.Builder
	verdict := "有效"
	if !r.Assessment.IsValid {
		verdict = "证明力有限"
	}
	fmt.Fprintf(&b, "「%s」分析完成：%s，有效性评分 %.2f。", r.EvidenceName, verdict, r.Assessment.Score)
	if r.Mocked {
		b.WriteString("（分析服务暂不可用，以上为模拟结果。）")
	}
	for _, rec := range r.Assessment.Recommendations {
		b.WriteString("\n- " + rec)
	}
	return b.String()
}
