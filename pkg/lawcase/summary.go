package lawcase

import (
	"fmt"
	"sort"
	"strings"
)

// Summary renders a one-paragraph Chinese summary of the profile, suitable
// for prompts and for the final report.
func (p *CaseProfile) Summary() string {
	var b strings.Builder

	b.WriteString(p.EmployeeName)
	if p.CompanyName != "" {
		b.WriteString("在" + p.CompanyName + "工作")
	}
	if p.HireDate != "" {
		b.WriteString("，" + p.HireDate + "入职")
	}
	if p.MonthlySalary > 0 {
		b.WriteString(fmt.Sprintf("，月平均工资%d元", p.MonthlySalary))
	}
	b.WriteString("。")

	switch p.DisputeCategory {
	case DisputeWrongfulTermination:
		b.WriteString("公司")
		if p.TerminationReason != "" {
			b.WriteString("以" + p.TerminationReason + "为由")
		}
		b.WriteString("解除劳动合同")
		if p.TerminationDate != "" {
			b.WriteString("（" + p.TerminationDate + "）")
		}
		b.WriteString("，涉嫌违法解除。")
	case DisputeWage:
		b.WriteString("公司存在拖欠工资的情况。")
	case DisputeWorkInjury:
		b.WriteString("涉及工伤赔偿争议。")
	case DisputeOvertime:
		b.WriteString("涉及加班费争议。")
	default:
		b.WriteString("存在劳动争议。")
	}

	return b.String()
}

// Timeline lists the dated milestones of the case in chronological order.
// Dates are ISO formatted so a plain string sort is chronological.
func (p *CaseProfile) Timeline() []TimelineEvent {
	var events []TimelineEvent
	if p.HireDate != "" {
		events = append(events, TimelineEvent{
			Date:        p.HireDate,
			Event:       "入职",
			Description: fmt.Sprintf("%s入职%s", p.EmployeeName, p.CompanyName),
		})
	}
	if p.NoticeDate != "" {
		events = append(events, TimelineEvent{
			Date:        p.NoticeDate,
			Event:       "收到通知",
			Description: "收到公司解除劳动合同通知",
		})
	}
	if p.TerminationDate != "" {
		events = append(events, TimelineEvent{
			Date:        p.TerminationDate,
			Event:       "解除劳动合同",
			Description: "劳动合同解除",
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events
}
