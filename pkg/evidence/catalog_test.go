package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogFormFields(t *testing.T) {
	c := NewCatalog(nil)

	tests := []struct {
		category Category
		field    string
	}{
		{CategoryContract, "file"},
		{CategoryPayslip, "file"},
		{CategoryAttendance, "attendance_file"},
		{CategoryInjury, "attendance_file"},
		{CategoryRecording, "Record_file"},
		{CategoryChat, "file"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			spec, ok := c.Spec(tt.category)
			assert.True(t, ok)
			assert.Equal(t, tt.field, spec.FormField)
		})
	}
}

func TestCatalogOtherHasNoAnalyzer(t *testing.T) {
	c := NewCatalog(nil)
	_, ok := c.Spec(CategoryOther)
	assert.False(t, ok)
}

func TestCatalogEndpointOverride(t *testing.T) {
	c := NewCatalog(map[Category]string{CategoryContract: "http://analyzer:9000/contract"})

	spec, _ := c.Spec(CategoryContract)
	assert.Equal(t, "http://analyzer:9000/contract", spec.Endpoint)

	spec, _ = c.Spec(CategoryPayslip)
	assert.Equal(t, "http://localhost:8002/analyze-payslip", spec.Endpoint)
}

func TestSpecAllowsFile(t *testing.T) {
	c := NewCatalog(nil)

	tests := []struct {
		category Category
		name     string
		want     bool
	}{
		{CategoryContract, "合同.pdf", true},
		{CategoryContract, "合同.ZIP", true},
		{CategoryContract, "合同.mp3", false},
		{CategoryRecording, "录音.m4a", true},
		{CategoryRecording, "录音.pdf", false},
		{CategoryChat, "截图.gif", true},
		{CategoryPayslip, "工资.docx", false},
		{CategoryContract, "noextension", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, _ := c.Spec(tt.category)
			assert.Equal(t, tt.want, spec.AllowsFile(tt.name))
		})
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryContract, ParseCategory("contract"))
	assert.Equal(t, CategoryRecording, ParseCategory(" Recording "))
	assert.Equal(t, CategoryOther, ParseCategory("video"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}
