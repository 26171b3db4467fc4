package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/lawcase"
	"ai-laborlaw-be/pkg/report"
	"ai-laborlaw-be/pkg/workflow"
)

func TestBuildArchive(t *testing.T) {
	cs := &consumerService{assembler: report.NewAssembler()}

	session := workflow.NewSession(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	session.Profile = &lawcase.CaseProfile{
		CaseID:          session.ID,
		EmployeeName:    "张三",
		CompanyName:     "北京字节科技有限公司",
		DisputeCategory: lawcase.DisputeWrongfulTermination,
		MonthlySalary:   12000,
	}
	session.Checklist = evidence.TemplateChecklist(lawcase.DisputeWrongfulTermination)

	archive, err := cs.buildArchive(session)
	require.NoError(t, err)

	assert.Equal(t, session.ID, archive.SessionID)
	assert.Equal(t, "张三", archive.EmployeeName)
	assert.Equal(t, string(lawcase.DisputeWrongfulTermination), archive.DisputeCategory)
	assert.NotEmpty(t, archive.StrengthLevel)
	assert.Greater(t, archive.StrengthScore, 0.0)

	var checklist []evidence.Requirement
	require.NoError(t, json.Unmarshal(archive.Checklist, &checklist))
	assert.Len(t, checklist, len(session.Checklist))

	var doc report.Document
	require.NoError(t, json.Unmarshal(archive.Report, &doc))
	assert.Equal(t, session.ID, doc.CaseID)
}

func TestBuildArchiveWithoutProfile(t *testing.T) {
	cs := &consumerService{assembler: report.NewAssembler()}

	session := workflow.NewSession(time.Now())
	archive, err := cs.buildArchive(session)
	require.NoError(t, err)

	assert.Equal(t, session.ID, archive.SessionID)
	assert.Empty(t, archive.EmployeeName)
}
