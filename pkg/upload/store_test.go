package upload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
)

func contractSpec(t *testing.T) evidence.Spec {
	t.Helper()
	spec, ok := evidence.NewCatalog(nil).Spec(evidence.CategoryContract)
	require.True(t, ok)
	return spec
}

func TestSaveAndList(t *testing.T) {
	s := NewStore(t.TempDir())

	path, err := s.Save("case_1", contractSpec(t), "劳动合同.pdf", strings.NewReader("pdf content"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf content", string(data))
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.Equal(t, "case_1", filepath.Base(filepath.Dir(path)))

	paths, err := s.List("case_1")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Save("case_1", contractSpec(t), "录音.mp3", strings.NewReader("x"))
	assert.ErrorIs(t, err, analysis.ErrInvalidFormat)
}

func TestSaveEnforcesSizeCap(t *testing.T) {
	s := NewStore(t.TempDir())

	over := bytes.NewReader(make([]byte, MaxUploadSize+1))
	_, err := s.Save("case_1", contractSpec(t), "大.pdf", over)
	assert.ErrorIs(t, err, analysis.ErrFileTooLarge)

	paths, err := s.List("case_1")
	require.NoError(t, err)
	assert.Empty(t, paths, "oversize upload must not leave a partial file")

	exact := bytes.NewReader(make([]byte, MaxUploadSize))
	_, err = s.Save("case_1", contractSpec(t), "刚好.pdf", exact)
	assert.NoError(t, err)
}

func TestSaveAvoidsCollisions(t *testing.T) {
	s := NewStore(t.TempDir())
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, err := s.Save("case_1", contractSpec(t), "合同.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := s.Save("case_1", contractSpec(t), "合同.pdf", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	data, _ := os.ReadFile(second)
	assert.Equal(t, "b", string(data))
}

func TestSaveStripsPathComponents(t *testing.T) {
	s := NewStore(t.TempDir())

	path, err := s.Save("case_1", contractSpec(t), "../../etc/evil name!.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	assert.Equal(t, "case_1", filepath.Base(filepath.Dir(path)))
	assert.NotContains(t, filepath.Base(path), "!")
}

func TestListUnknownSessionIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir())
	paths, err := s.List("missing")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
