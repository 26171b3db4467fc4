package analysis

import "ai-laborlaw-be/pkg/evidence"

// MockResult fabricates an analyzer response for the category. It is used
// when the real analyzer is down so consultations can proceed end to end;
// records produced this way are flagged as mocked.
func MockResult(category evidence.Category) map[string]interface{} {
	base := map[string]interface{}{
		"文件有效性说明":   "文件格式正确，内容清晰可读。",
		"与案件关联性分析":  "与本案件具有直接关联性。",
		"是否可以作为核心证据": "是",
	}

	switch category {
	case evidence.CategoryContract:
		base["文件类型"] = "劳动合同"
		base["主体公司名称"] = "XX科技有限公司"
		base["合同起始日期"] = "2022年09月01日"
		base["合同终止日期"] = "2025年08月31日"
		base["约定薪资"] = "12000元/月"
	case evidence.CategoryPayslip:
		base["文件类型"] = "工资单"
		base["发放单位"] = "XX科技有限公司"
		base["月应发工资"] = "12000元"
		base["月实发工资"] = "11200元"
	case evidence.CategoryAttendance:
		base["文件类型"] = "考勤记录"
		base["统计周期"] = "2024年01月至2024年06月"
		base["出勤情况"] = "出勤正常，无旷工记录"
	case evidence.CategoryInjury:
		base["文件类型"] = "伤残鉴定"
		base["鉴定机构"] = "市劳动能力鉴定委员会"
		base["鉴定日期"] = "2024年05月20日"
		base["鉴定结论"] = "劳动功能障碍十级"
	case evidence.CategoryRecording:
		base["文件类型"] = "录音证据"
		base["录音内容摘要"] = "双方就解除劳动合同事宜进行沟通"
		base["是否可以作为核心证据"] = "否，建议作为辅助证据"
	case evidence.CategoryChat:
		base["文件类型"] = "聊天记录"
		base["聊天内容摘要"] = "与公司人事就离职补偿进行沟通"
	default:
		base["文件类型"] = "其他材料"
	}
	return base
}
