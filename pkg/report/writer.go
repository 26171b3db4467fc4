package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Files holds the paths of one saved report set.
type Files struct {
	Text string `json:"text"`
	HTML string `json:"html"`
	JSON string `json:"json"`
}

// Writer persists a report set on disk, all three formats side by side.
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Save renders and writes each format, returning the written paths. The
// timestamp in the filenames comes from the document so repeated saves of
// the same document land on the same names.
func (w *Writer) Save(doc *Document) (Files, error) {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return Files{}, fmt.Errorf("create report dir: %w", err)
	}

	stamp := doc.GeneratedAt.Format("20060102_150405")
	base := fmt.Sprintf("%s_report_%s", doc.CaseID, stamp)
	files := Files{
		Text: filepath.Join(w.root, base+".txt"),
		HTML: filepath.Join(w.root, base+".html"),
		JSON: filepath.Join(w.root, base+".json"),
	}

	if err := os.WriteFile(files.Text, []byte(RenderText(doc)), 0o644); err != nil {
		return Files{}, fmt.Errorf("write text report: %w", err)
	}
	if err := os.WriteFile(files.HTML, []byte(RenderHTML(doc)), 0o644); err != nil {
		return Files{}, fmt.Errorf("write html report: %w", err)
	}
	data, err := RenderJSON(doc)
	if err != nil {
		return Files{}, fmt.Errorf("render json report: %w", err)
	}
	if err := os.WriteFile(files.JSON, data, 0o644); err != nil {
		return Files{}, fmt.Errorf("write json report: %w", err)
	}
	return files, nil
}
