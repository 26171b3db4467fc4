package evidence

import (
	"path/filepath"
	"strings"
)

// Category identifies which specialist analyzer a piece of evidence belongs to.
type Category string

const (
	CategoryContract   Category = "contract"
	CategoryPayslip    Category = "payslip"
	CategoryAttendance Category = "attendance"
	CategoryInjury     Category = "injury"
	CategoryRecording  Category = "recording"
	CategoryChat       Category = "chat"
	CategoryOther      Category = "other"
)

// Spec describes how one category is shipped to its analyzer. Field names
// and paths are not uniform across the analyzer fleet, so each category
// carries its own values and callers must never assume a shared shape.
type Spec struct {
	Category   Category
	Endpoint   string
	FormField  string
	Extensions []string
	Label      string
}

// Catalog maps evidence categories to their analyzer endpoints. Endpoints can
// be overridden per category through Overrides, keyed by category.
type Catalog struct {
	specs map[Category]Spec
}

var defaultSpecs = []Spec{
	{
		Category:   CategoryContract,
		Endpoint:   "http://localhost:8001/analyze_contract",
		FormField:  "file",
		Extensions: []string{".pdf", ".docx", ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp", ".zip"},
		Label:      "劳动合同",
	},
	{
		Category:   CategoryPayslip,
		Endpoint:   "http://localhost:8002/analyze-payslip",
		FormField:  "file",
		Extensions: []string{".pdf", ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"},
		Label:      "工资单",
	},
	{
		Category:   CategoryAttendance,
		Endpoint:   "http://localhost:8003/analyze_attendance",
		FormField:  "attendance_file",
		Extensions: []string{".pdf", ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"},
		Label:      "考勤记录",
	},
	{
		Category:   CategoryInjury,
		Endpoint:   "http://localhost:8004/analyze_injury_assessment",
		FormField:  "attendance_file",
		Extensions: []string{".pdf", ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"},
		Label:      "伤残鉴定",
	},
	{
		Category:   CategoryRecording,
		Endpoint:   "http://localhost:8005/analyze_recording",
		FormField:  "Record_file",
		Extensions: []string{".mp3", ".wav", ".m4a", ".aac", ".flac", ".ogg"},
		Label:      "录音证据",
	},
	{
		Category:   CategoryChat,
		Endpoint:   "http://localhost:8006/analyze_single",
		FormField:  "file",
		Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"},
		Label:      "聊天记录",
	},
}

// NewCatalog builds the default catalog, applying endpoint overrides where a
// non-empty URL is supplied.
func NewCatalog(overrides map[Category]string) *Catalog {
	specs := make(map[Category]Spec, len(defaultSpecs))
	for _, s := range defaultSpecs {
		if url, ok := overrides[s.Category]; ok && url != "" {
			s.Endpoint = url
		}
		specs[s.Category] = s
	}
	return &Catalog{specs: specs}
}

// Spec looks up the analyzer spec for a category. CategoryOther has no
// analyzer, so ok is false for it.
func (c *Catalog) Spec(cat Category) (Spec, bool) {
	s, ok := c.specs[cat]
	return s, ok
}

// Categories lists the analyzable categories in a stable order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(defaultSpecs))
	for _, s := range defaultSpecs {
		out = append(out, s.Category)
	}
	return out
}

// AllowsFile reports whether the file's extension is accepted by the
// category. The comparison ignores case.
func (s Spec) AllowsFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range s.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ParseCategory maps a free-form type string to a Category, falling back to
// CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryContract, CategoryPayslip, CategoryAttendance, CategoryInjury, CategoryRecording, CategoryChat:
		return Category(strings.ToLower(strings.TrimSpace(s)))
	default:
		return CategoryOther
	}
}
