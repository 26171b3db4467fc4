package lawcase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedExtractor() *Extractor {
	return &Extractor{Now: func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	}}
}

func TestExtractBasicProfile(t *testing.T) {
	transcript := "我叫张三，在北京字节科技有限公司工作，2022年3月15日入职，月平均工资12000元。公司违法解除劳动合同，理由是不能胜任工作。"

	p := fixedExtractor().Extract(transcript)

	assert.Equal(t, "张三", p.EmployeeName)
	assert.Equal(t, "北京字节科技有限公司", p.CompanyName)
	assert.Equal(t, "2022-03-15", p.HireDate)
	assert.Equal(t, 12000, p.MonthlySalary)
	assert.Equal(t, DisputeWrongfulTermination, p.DisputeCategory)
	assert.Equal(t, "不能胜任岗位", p.TerminationReason)
}

func TestExtractDefaults(t *testing.T) {
	p := fixedExtractor().Extract("我们之间有一些纠纷")

	assert.Equal(t, DefaultEmployeeName, p.EmployeeName)
	assert.Equal(t, DisputeGeneral, p.DisputeCategory)
	assert.Empty(t, p.CompanyName)
	assert.Zero(t, p.MonthlySalary)
	assert.Empty(t, p.HireDate)
}

func TestExtractDisputePriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DisputeCategory
	}{
		{"wrongful beats wage", "公司违法辞退我，还拖欠工资", DisputeWrongfulTermination},
		{"wage arrears", "公司拖欠工资三个月", DisputeWage},
		{"wage needs arrears keyword", "我的工资是8000元", DisputeGeneral},
		{"work injury", "我在车间受了工伤", DisputeWorkInjury},
		{"overtime", "公司一直不付加班费", DisputeOvertime},
		{"fallback", "和公司有劳动方面的矛盾", DisputeGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fixedExtractor().Extract(tt.text)
			assert.Equal(t, tt.want, p.DisputeCategory)
		})
	}
}

func TestExtractMonthDayUsesProcessingYear(t *testing.T) {
	p := fixedExtractor().Extract("解除劳动合同日期是4月30号，3月1日收到解除通知")

	assert.Equal(t, "2025-04-30", p.TerminationDate)
	assert.Equal(t, "2025-03-01", p.NoticeDate)
}

func TestExtractSalaryFirstPatternWins(t *testing.T) {
	p := fixedExtractor().Extract("月薪15000元，之前工资是9000元")
	assert.Equal(t, 15000, p.MonthlySalary)
}

func TestExtractInvalidDateRejected(t *testing.T) {
	p := fixedExtractor().Extract("解除劳动合同日期是13月40号")
	assert.Empty(t, p.TerminationDate)
}

func TestExtractFlagsAndRating(t *testing.T) {
	p := fixedExtractor().Extract("公司没有提供培训，也没有调岗，绩效考核是良好，公司拿不出证据")

	assert.False(t, p.HadTraining)
	assert.False(t, p.HadTransferOffer)
	assert.False(t, p.EmployerHasEvidence)
	assert.Equal(t, PerformanceGood, p.PerformanceRating)
}

func TestSummaryAndTimeline(t *testing.T) {
	transcript := "我叫李四，在恒大集团有限公司工作，2021年1月5日入职，月平均工资9000元。公司违法解除劳动合同，解除劳动合同日期是5月20号，5月10日收到通知。"
	p := fixedExtractor().Extract(transcript)

	summary := p.Summary()
	assert.Contains(t, summary, "李四")
	assert.Contains(t, summary, "9000")
	assert.Contains(t, summary, "违法解除")

	events := p.Timeline()
	assert.Len(t, events, 3)
	assert.Equal(t, "入职", events[0].Event)
	assert.Equal(t, "收到通知", events[1].Event)
	assert.Equal(t, "解除劳动合同", events[2].Event)
}
