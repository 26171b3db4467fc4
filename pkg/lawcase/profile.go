package lawcase

import "time"

// DisputeCategory classifies the labor dispute driving a consultation.
type DisputeCategory string

const (
	DisputeWrongfulTermination DisputeCategory = "违法解除劳动合同"
	DisputeWage                DisputeCategory = "工资拖欠"
	DisputeWorkInjury          DisputeCategory = "工伤赔偿"
	DisputeOvertime            DisputeCategory = "加班费争议"
	DisputeGeneral             DisputeCategory = "劳动争议"
)

const (
	// DefaultEmployeeName stands in when no name pattern matches the transcript.
	DefaultEmployeeName = "当事人"

	PerformanceExcellent    = "优秀"
	PerformanceGood         = "良好"
	PerformanceQualified    = "合格"
	PerformanceNotQualified = "不合格"
)

// CaseProfile is the structured view of one dispute, extracted once from the
// intake transcript. Dispute category is always set; everything else may stay
// at its zero value when no pattern matched.
type CaseProfile struct {
	CaseID            string          `json:"case_id,omitempty"`
	EmployeeName      string          `json:"employee_name"`
	CompanyName       string          `json:"company_name,omitempty"`
	DisputeCategory   DisputeCategory `json:"dispute_category"`
	MonthlySalary     int             `json:"monthly_salary,omitempty"`
	HireDate          string          `json:"hire_date,omitempty"`
	TerminationDate   string          `json:"termination_date,omitempty"`
	NoticeDate        string          `json:"notice_date,omitempty"`
	TerminationReason string          `json:"termination_reason,omitempty"`

	HadTraining         bool `json:"had_training"`
	HadTransferOffer    bool `json:"had_transfer_offer"`
	EmployerHasEvidence bool `json:"employer_has_evidence"`

	PerformanceRating string `json:"performance_rating,omitempty"`

	// EvidenceStatus tracks which baseline documents the transcript already
	// confirms the client holds, keyed by document slug.
	EvidenceStatus map[string]string `json:"evidence_status"`

	CreatedAt time.Time `json:"created_at"`
}

// TimelineEvent is one dated entry of the case timeline, sorted by date.
type TimelineEvent struct {
	Date        string `json:"date"`
	Event       string `json:"event"`
	Description string `json:"description"`
}

const (
	EvidenceStatusCollected    = "已收集"
	EvidenceStatusNotCollected = "未收集"
)
