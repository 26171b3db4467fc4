package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConsultationArchive stores a finished consultation for later review.
type ConsultationArchive struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_id"`
	EmployeeName    string         `gorm:"type:varchar(100)" json:"employee_name"`
	CompanyName     string         `gorm:"type:varchar(200)" json:"company_name"`
	DisputeCategory string         `gorm:"type:varchar(50);index" json:"dispute_category"`
	StrengthLevel   string         `gorm:"type:varchar(10)" json:"strength_level"`
	StrengthScore   float64        `json:"strength_score"`
	Profile         datatypes.JSON `gorm:"type:jsonb" json:"profile,omitempty"`
	Checklist       datatypes.JSON `gorm:"type:jsonb" json:"checklist,omitempty"`
	Records         datatypes.JSON `gorm:"type:jsonb" json:"records,omitempty"`
	Transcript      datatypes.JSON `gorm:"type:jsonb" json:"transcript,omitempty"`
	Report          datatypes.JSON `gorm:"type:jsonb" json:"report,omitempty"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
