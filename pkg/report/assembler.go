package report

import (
	"time"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/lawcase"
)

// Input is everything a consultation has accumulated by report time.
type Input struct {
	CaseID    string
	Profile   *lawcase.CaseProfile
	Checklist []evidence.Requirement
	Records   []analysis.Record
	Messages  []ChatMessage
}

// ChatMessage is the report layer's view of one transcript entry.
type ChatMessage struct {
	Role    string
	Content string
}

// Assembler builds the report document. All derived values, the strength
// score included, are computed here exactly once.
type Assembler struct {
	Now func() time.Time
}

func NewAssembler() *Assembler {
	return &Assembler{Now: time.Now}
}

func (a *Assembler) Assemble(in Input) *Document {
	profile := in.Profile
	if profile == nil {
		profile = &lawcase.CaseProfile{
			EmployeeName:    lawcase.DefaultEmployeeName,
			DisputeCategory: lawcase.DisputeGeneral,
			EvidenceStatus:  map[string]string{},
		}
	}

	doc := &Document{
		CaseID:       in.CaseID,
		GeneratedAt:  a.Now(),
		Profile:      profile,
		Summary:      profile.Summary(),
		Timeline:     profile.Timeline(),
		Checklist:    in.Checklist,
		Statistics:   evidence.Summarize(in.Checklist),
		Records:      in.Records,
		DisputeFocus: disputeFocus(profile.DisputeCategory),
		Consultation: summarizeChat(in.Messages),
	}
	doc.Legal = legalAnalysis(profile, in.Records)
	doc.Recommendations = recommendations(profile, doc.Legal, in.Records)
	doc.ActionPlan = actionPlan(profile.DisputeCategory)
	return doc
}

// legalAnalysis scores case strength in [0, 1]. Wrongful termination cases
// gain from procedural gaps on the employer side; every case gains from the
// share of evidence assessed as valid.
func legalAnalysis(profile *lawcase.CaseProfile, records []analysis.Record) LegalAnalysis {
	score := 0.5
	var points []string

	if profile.DisputeCategory == lawcase.DisputeWrongfulTermination {
		if !profile.HadTraining {
			score += 0.2
			points = append(points, "公司以不能胜任为由解除前未安排培训，不符合法定程序")
		}
		if !profile.EmployerHasEvidence {
			score += 0.2
			points = append(points, "公司未能出示不能胜任工作的考核证据，举证处于劣势")
		}
		if profile.PerformanceRating == lawcase.PerformanceQualified ||
			profile.PerformanceRating == lawcase.PerformanceGood ||
			profile.PerformanceRating == lawcase.PerformanceExcellent {
			points = append(points, "绩效考核为"+profile.PerformanceRating+"，与不能胜任的主张矛盾")
		}
	}

	if len(records) > 0 {
		valid := 0
		for _, r := range records {
			if r.Assessment.IsValid {
				valid++
			}
		}
		fraction := float64(valid) / float64(len(records))
		score += fraction * 0.3
		points = append(points, "已分析证据中有效证据占比较高，证据链具备基础")
		if valid < len(records) {
			points[len(points)-1] = "部分已分析证据证明力不足，需补强证据链"
		}
	} else {
		points = append(points, "尚未完成证据分析，以上判断基于口述情况")
	}

	if score > 1 {
		score = 1
	}

	level := StrengthWeak
	switch {
	case score >= 0.8:
		level = StrengthStrong
	case score >= 0.6:
		level = StrengthMedium
	}
	return LegalAnalysis{StrengthScore: score, StrengthLevel: level, Points: points}
}

func disputeFocus(category lawcase.DisputeCategory) []string {
	switch category {
	case lawcase.DisputeWrongfulTermination:
		return []string{
			"解除劳动合同的理由是否成立",
			"解除程序是否符合法定要求（培训或调岗前置）",
			"违法解除赔偿金的计算基数与年限",
		}
	case lawcase.DisputeWage:
		return []string{
			"拖欠工资的金额与期间认定",
			"工资标准的举证",
			"经济补偿金是否同时主张",
		}
	case lawcase.DisputeWorkInjury:
		return []string{
			"工伤认定与伤残等级",
			"停工留薪期待遇",
			"各项工伤保险待遇的计算",
		}
	case lawcase.DisputeOvertime:
		return []string{
			"加班事实的举证",
			"加班费基数与倍数的计算",
		}
	default:
		return []string{
			"劳动关系的认定",
			"双方权利义务的确定",
		}
	}
}

func recommendations(profile *lawcase.CaseProfile, legal LegalAnalysis, records []analysis.Record) []string {
	recs := []string{
		"优先收集清单中的核心证据，原件妥善保管",
	}
	if legal.StrengthLevel == StrengthStrong {
		recs = append(recs, "可直接申请劳动仲裁，主张违法解除赔偿金或相应待遇")
	} else {
		recs = append(recs, "先尝试与公司协商，同时完善证据后再申请仲裁")
	}
	for _, r := range records {
		recs = append(recs, r.Assessment.Recommendations...)
	}
	recs = append(recs, "注意仲裁时效：劳动争议申请仲裁的时效期间为一年")
	return dedupe(recs)
}

func actionPlan(category lawcase.DisputeCategory) ActionPlan {
	plan := ActionPlan{
		ShortTerm: []string{
			"一周内：整理并备份全部证据材料，补充缺失的核心证据",
			"向公司寄送书面函件，固定沟通记录",
		},
		MidTerm: []string{
			"一个月内：向劳动争议仲裁委员会提交仲裁申请",
			"准备仲裁庭审的证据清单与质证意见",
		},
		LongTerm: []string{
			"对仲裁结果不服的，十五日内向法院提起诉讼",
		},
	}
	if category == lawcase.DisputeWorkInjury {
		plan.ShortTerm = append([]string{"确认工伤认定申请是否在一年时限内提出"}, plan.ShortTerm...)
	}
	return plan
}

func summarizeChat(messages []ChatMessage) ChatSummary {
	s := ChatSummary{TotalMessages: len(messages)}
	for i := len(messages) - 1; i >= 0 && len(s.UserQuestions) < 3; i-- {
		if messages[i].Role == "user" {
			s.UserQuestions = append(s.UserQuestions, messages[i].Content)
		}
	}
	// restore chronological order
	for i, j := 0, len(s.UserQuestions)-1; i < j; i, j = i+1, j-1 {
		s.UserQuestions[i], s.UserQuestions[j] = s.UserQuestions[j], s.UserQuestions[i]
	}
	return s
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
