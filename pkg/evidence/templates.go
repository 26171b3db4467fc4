package evidence

import "ai-laborlaw-be/pkg/lawcase"

// TemplateChecklist returns the static fallback checklist for a dispute
// category. It is used whenever the planner model is unavailable or returns
// something unusable, so the workflow can always move forward.
func TemplateChecklist(category lawcase.DisputeCategory) []Requirement {
	var items []Requirement
	switch category {
	case lawcase.DisputeWrongfulTermination:
		items = wrongfulTerminationTemplate()
	case lawcase.DisputeWage:
		items = wageTemplate()
	case lawcase.DisputeWorkInjury:
		items = injuryTemplate()
	default:
		items = generalTemplate()
	}
	for i := range items {
		items[i] = standardize(items[i])
	}
	return items
}

func wrongfulTerminationTemplate() []Requirement {
	return []Requirement{
		{
			Type:             "劳动合同",
			Importance:       ImportanceCore,
			Description:      "与公司签订的书面劳动合同，证明劳动关系的存在、岗位和工资约定",
			CollectionMethod: "查找本人留存的合同原件，如遗失可要求公司提供或向劳动监察部门求助",
			LegalBasis:       "《劳动合同法》第十条、第八十二条",
			Difficulty:       DifficultyEasy,
			Notes:            "合同原件最佳，复印件需配合其他证据使用",
		},
		{
			Type:             "解除劳动合同通知书",
			Importance:       ImportanceCore,
			Description:      "公司出具的解除或终止劳动合同的书面通知，证明解除事实和解除理由",
			CollectionMethod: "保留公司送达的书面通知原件，邮件或微信通知应当截图并公证",
			LegalBasis:       "《劳动合同法》第三十九条、第四十条、第四十八条",
			Difficulty:       DifficultyEasy,
			Notes:            "通知上记载的解除理由是判断违法解除的关键",
		},
		{
			Type:             "工资单/银行流水",
			Importance:       ImportanceCore,
			Description:      "近十二个月的工资发放记录，用于确定月平均工资和赔偿基数",
			CollectionMethod: "向银行打印代发工资流水，或保留公司发放的工资条",
			LegalBasis:       "《劳动合同法》第四十七条、第八十七条",
			Difficulty:       DifficultyEasy,
			Notes:            "银行流水需加盖银行业务章",
		},
		{
			Type:             "绩效考核记录",
			Importance:       ImportanceImportant,
			Description:      "历次绩效考核结果，用于反驳公司主张的不能胜任工作",
			CollectionMethod: "保存考核表、考核邮件或系统截图",
			LegalBasis:       "《劳动合同法》第四十条第二项",
			Difficulty:       DifficultyMedium,
			Notes:            "考核结果为合格及以上的记录尤为重要",
		},
		{
			Type:             "培训记录",
			Importance:       ImportanceImportant,
			Description:      "公司是否对不能胜任的员工安排过培训的记录",
			CollectionMethod: "收集培训通知、签到表或培训证书；公司未安排培训的，说明该事实",
			LegalBasis:       "《劳动合同法》第四十条第二项",
			Difficulty:       DifficultyMedium,
			Notes:            "以不能胜任为由解除前，公司负有培训或调岗义务",
		},
		{
			Type:             "调岗记录",
			Importance:       ImportanceImportant,
			Description:      "公司是否提出过调整工作岗位的记录",
			CollectionMethod: "保存调岗通知、协商记录或相关沟通截图",
			LegalBasis:       "《劳动合同法》第四十条第二项",
			Difficulty:       DifficultyMedium,
			Notes:            "公司未培训也未调岗直接解除的，构成违法解除的有力证据",
		},
		{
			Type:             "社保缴费记录",
			Importance:       ImportanceAuxiliary,
			Description:      "社会保险缴费明细，辅助证明劳动关系和工作年限",
			CollectionMethod: "通过当地社保局官网、App或窗口打印缴费明细",
			LegalBasis:       "《社会保险法》第四条",
			Difficulty:       DifficultyEasy,
			Notes:            "缴费单位名称应与用人单位一致",
		},
		{
			Type:             "工作成果/邮件记录",
			Importance:       ImportanceAuxiliary,
			Description:      "日常工作邮件、工作成果等，辅助证明工作表现正常",
			CollectionMethod: "导出工作邮箱邮件，保存项目文档和工作汇报",
			LegalBasis:       "《民事诉讼法》第六十六条",
			Difficulty:       DifficultyMedium,
			Notes:            "注意在离职前完成导出，避免账号被停用",
		},
	}
}

func wageTemplate() []Requirement {
	return []Requirement{
		{
			Type:             "劳动合同",
			Importance:       ImportanceCore,
			Description:      "证明劳动关系及约定的工资标准",
			CollectionMethod: "查找本人留存的合同原件",
			LegalBasis:       "《劳动合同法》第十条、第三十条",
			Difficulty:       DifficultyEasy,
			Notes:            "重点关注合同中的工资条款",
		},
		{
			Type:             "工资单",
			Importance:       ImportanceCore,
			Description:      "公司发放的工资明细，证明应发与实发的差额",
			CollectionMethod: "保留纸质工资条或工资系统截图",
			LegalBasis:       "《工资支付暂行规定》第六条",
			Difficulty:       DifficultyEasy,
			Notes:            "拖欠期间的工资单最为关键",
		},
		{
			Type:             "银行流水",
			Importance:       ImportanceCore,
			Description:      "工资入账记录，证明实际发放情况和拖欠事实",
			CollectionMethod: "向银行打印代发工资账户的交易流水",
			LegalBasis:       "《劳动合同法》第三十条、第八十五条",
			Difficulty:       DifficultyEasy,
			Notes:            "流水应覆盖拖欠前后的完整期间",
		},
		{
			Type:             "考勤记录",
			Importance:       ImportanceImportant,
			Description:      "证明拖欠期间正常出勤提供了劳动",
			CollectionMethod: "导出打卡记录或申请公司提供考勤表",
			LegalBasis:       "《工资支付暂行规定》第六条",
			Difficulty:       DifficultyMedium,
			Notes:            "公司掌握考勤的，仲裁时可申请责令其提交",
		},
	}
}

func injuryTemplate() []Requirement {
	return []Requirement{
		{
			Type:             "工伤认定书",
			Importance:       ImportanceCore,
			Description:      "社保行政部门出具的工伤认定决定书，是工伤赔偿的前提",
			CollectionMethod: "向用人单位所在地社保行政部门申请工伤认定并领取决定书",
			LegalBasis:       "《工伤保险条例》第十七条、第二十条",
			Difficulty:       DifficultyMedium,
			Notes:            "事故发生之日起一年内必须提出认定申请",
		},
		{
			Type:             "劳动能力鉴定书",
			Importance:       ImportanceCore,
			Description:      "劳动能力鉴定委员会出具的伤残等级结论，决定赔偿档位",
			CollectionMethod: "伤情稳定后向市级劳动能力鉴定委员会申请鉴定",
			LegalBasis:       "《工伤保险条例》第二十一条至第二十三条",
			Difficulty:       DifficultyMedium,
			Notes:            "对结论不服的可在十五日内申请再次鉴定",
		},
		{
			Type:             "医疗费票据",
			Importance:       ImportanceImportant,
			Description:      "治疗工伤产生的医疗费用凭证",
			CollectionMethod: "保存全部门诊、住院发票及费用清单、病历",
			LegalBasis:       "《工伤保险条例》第三十条",
			Difficulty:       DifficultyEasy,
			Notes:            "票据与病历应对应，避免遗漏",
		},
	}
}

func generalTemplate() []Requirement {
	return []Requirement{
		{
			Type:             "劳动合同",
			Importance:       ImportanceCore,
			Description:      "证明劳动关系存在及双方权利义务约定",
			CollectionMethod: "查找本人留存的合同原件",
			LegalBasis:       "《劳动合同法》第十条",
			Difficulty:       DifficultyEasy,
			Notes:            "没有书面合同的，可用工牌、考勤、工资发放记录证明事实劳动关系",
		},
		{
			Type:             "工资单",
			Importance:       ImportanceImportant,
			Description:      "证明工资标准和发放情况",
			CollectionMethod: "保留工资条或打印银行代发流水",
			LegalBasis:       "《工资支付暂行规定》第六条",
			Difficulty:       DifficultyEasy,
			Notes:            "",
		},
		{
			Type:             "社保记录",
			Importance:       ImportanceAuxiliary,
			Description:      "辅助证明劳动关系和在职期间",
			CollectionMethod: "通过社保局官网或窗口打印缴费明细",
			LegalBasis:       "《社会保险法》第四条",
			Difficulty:       DifficultyEasy,
			Notes:            "",
		},
	}
}
