package lawcase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extractor turns a free-form consultation transcript into a CaseProfile by
// applying fixed rule tables. It never calls a model, so extraction stays
// deterministic and replayable. Patterns within one field are ordered and
// the first match wins.
type Extractor struct {
	// Now supplies the processing clock. Month-and-day dates without a year
	// are completed with Now's year.
	Now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{Now: time.Now}
}

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`我叫([\x{4e00}-\x{9fa5}]{2,4})`),
		regexp.MustCompile(`我是([\x{4e00}-\x{9fa5}]{2,4})`),
		regexp.MustCompile(`姓名.*?([\x{4e00}-\x{9fa5}]{2,4})`),
	}

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`在([\x{4e00}-\x{9fa5}]+(?:科技|有限|股份|集团|公司)+[\x{4e00}-\x{9fa5}]*公司)`),
		regexp.MustCompile(`([\x{4e00}-\x{9fa5}]+(?:科技|有限|股份|集团|公司)+[\x{4e00}-\x{9fa5}]*公司)`),
		regexp.MustCompile(`公司.*?名称.*?([\x{4e00}-\x{9fa5}]+公司)`),
	}

	hireDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日入职`),
		regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日.*?入职`),
		regexp.MustCompile(`入职.*?(\d{4})年(\d{1,2})月(\d{1,2})日`),
	}

	terminationDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`解除劳动合同日期是(\d{1,2})月(\d{1,2})[日号]`),
		regexp.MustCompile(`(\d{1,2})月(\d{1,2})[日号].*?解除劳动合同`),
		regexp.MustCompile(`(\d{1,2})月(\d{1,2})[日号]被辞退`),
	}

	noticeDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})月(\d{1,2})[日号]收到`),
		regexp.MustCompile(`收到.*?通知.*?(\d{1,2})月(\d{1,2})[日号]`),
	}

	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`月平均工资(\d+)元`),
		regexp.MustCompile(`月平均(\d+)元`),
		regexp.MustCompile(`月薪(\d+)元`),
		regexp.MustCompile(`月工资.*?(\d+)元`),
		regexp.MustCompile(`月收入.*?(\d+)元`),
		regexp.MustCompile(`(\d+)元/月`),
		regexp.MustCompile(`工资.*?(\d+)元`),
		regexp.MustCompile(`薪资.*?(\d+)元`),
	}

	reasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`理由是(.+?)(?:[。，\n]|$)`),
		regexp.MustCompile(`以(.+?)为由`),
		regexp.MustCompile(`说我(.+?)(?:[。，\n]|$)`),
	}

	trainingPattern     = regexp.MustCompile(`培训`)
	noTrainingPattern   = regexp.MustCompile(`没有?.{0,6}培训|未.{0,6}培训|不提供培训`)
	transferPattern     = regexp.MustCompile(`调岗|调整岗位|转岗`)
	noTransferPattern   = regexp.MustCompile(`没有?.{0,6}调岗|未.{0,6}调岗|不同意调岗`)
	hasEvidencePattern  = regexp.MustCompile(`公司.{0,8}(证据|证明材料)`)
	noEvidencePattern   = regexp.MustCompile(`公司.{0,8}没有?.{0,6}(证据|证明)|拿不出(证据|证明)`)
	performancePatterns = []string{PerformanceNotQualified, PerformanceExcellent, PerformanceGood, PerformanceQualified}

	collectedDocPatterns = map[string]*regexp.Regexp{
		"labor_contract":     regexp.MustCompile(`(有|保留|签|拿到).{0,8}劳动合同`),
		"termination_notice": regexp.MustCompile(`(收到|有).{0,8}(解除|辞退).{0,4}通知`),
		"payslip":            regexp.MustCompile(`(有|保留|拿到).{0,8}(工资单|工资条|银行流水)`),
		"social_insurance":   regexp.MustCompile(`(有|查到|打印).{0,8}(社保|公积金).{0,4}(记录|缴费)`),
	}
)

// Extract parses the transcript into a CaseProfile. The transcript is the
// concatenation of the client's intake answers; the assistant's own lines
// should not be included.
func (e *Extractor) Extract(transcript string) *CaseProfile {
	now := e.now()
	p := &CaseProfile{
		EmployeeName:    DefaultEmployeeName,
		DisputeCategory: classifyDispute(transcript),
		EvidenceStatus:  map[string]string{},
		CreatedAt:       now,
	}

	if m := firstMatch(namePatterns, transcript); m != "" {
		p.EmployeeName = m
	}
	if m := firstMatch(companyPatterns, transcript); m != "" {
		p.CompanyName = m
	}
	if y, mo, d, ok := firstDate(hireDatePatterns, transcript); ok {
		p.HireDate = formatDate(y, mo, d)
	}
	if mo, d, ok := firstMonthDay(terminationDatePatterns, transcript); ok {
		p.TerminationDate = formatDate(now.Year(), mo, d)
	}
	if mo, d, ok := firstMonthDay(noticeDatePatterns, transcript); ok {
		p.NoticeDate = formatDate(now.Year(), mo, d)
	}
	if m := firstMatch(salaryPatterns, transcript); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			p.MonthlySalary = n
		}
	}
	p.TerminationReason = extractReason(transcript)

	p.HadTraining = trainingPattern.MatchString(transcript) && !noTrainingPattern.MatchString(transcript)
	p.HadTransferOffer = transferPattern.MatchString(transcript) && !noTransferPattern.MatchString(transcript)
	p.EmployerHasEvidence = hasEvidencePattern.MatchString(transcript) && !noEvidencePattern.MatchString(transcript)

	for _, rating := range performancePatterns {
		if strings.Contains(transcript, rating) {
			p.PerformanceRating = rating
			break
		}
	}

	for slug, pat := range collectedDocPatterns {
		if pat.MatchString(transcript) {
			p.EvidenceStatus[slug] = EvidenceStatusCollected
		} else {
			p.EvidenceStatus[slug] = EvidenceStatusNotCollected
		}
	}

	return p
}

func (e *Extractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// classifyDispute picks the dispute category by fixed priority: wrongful
// termination beats wage arrears beats work injury beats overtime, with a
// general fallback so the category is never empty.
func classifyDispute(text string) DisputeCategory {
	switch {
	case strings.Contains(text, "违法辞退") || strings.Contains(text, "违法解除"):
		return DisputeWrongfulTermination
	case strings.Contains(text, "工资") && (strings.Contains(text, "拖欠") || strings.Contains(text, "未支付")):
		return DisputeWage
	case strings.Contains(text, "工伤"):
		return DisputeWorkInjury
	case strings.Contains(text, "加班费"):
		return DisputeOvertime
	default:
		return DisputeGeneral
	}
}

func extractReason(text string) string {
	for _, pat := range reasonPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			reason := strings.TrimSpace(m[1])
			if strings.Contains(reason, "不能胜任") {
				return "不能胜任岗位"
			}
			return reason
		}
	}
	if strings.Contains(text, "不能胜任") {
		return "不能胜任岗位"
	}
	return ""
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, pat := range patterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func firstDate(patterns []*regexp.Regexp, text string) (year, month, day int, ok bool) {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
		if validDate(month, day) {
			return year, month, day, true
		}
	}
	return 0, 0, 0, false
}

func firstMonthDay(patterns []*regexp.Regexp, text string) (month, day int, ok bool) {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		if validDate(month, day) {
			return month, day, true
		}
	}
	return 0, 0, false
}

func validDate(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func formatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
