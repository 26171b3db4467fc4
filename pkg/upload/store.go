package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
)

// MaxUploadSize caps a single intake upload. The analyzer fleet accepts more,
// but the consultation surface stays conservative.
const MaxUploadSize = 10 * 1024 * 1024

var unsafeChars = regexp.MustCompile(`[^\w.\x{4e00}-\x{9fa5}-]+`)

// Store keeps uploaded evidence files on disk, one directory per session.
// Stored names are timestamped and sanitized so concurrent uploads of files
// with the same client-side name never collide.
type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

// Save validates the upload against the category spec and writes it under
// the session's directory, returning the stored path.
func (s *Store) Save(sessionID string, spec evidence.Spec, filename string, r io.Reader) (string, error) {
	if !spec.AllowsFile(filename) {
		return "", fmt.Errorf("%w: %s does not accept %s", analysis.ErrInvalidFormat, spec.Category, filepath.Ext(filename))
	}

	dir := filepath.Join(s.root, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path, err := s.uniquePath(dir, filename)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	// read one byte past the cap to tell "exactly at the limit" from "over it"
	n, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	closeErr := f.Close()
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if closeErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", closeErr)
	}
	if n > MaxUploadSize {
		os.Remove(path)
		return "", fmt.Errorf("%w: larger than %d bytes", analysis.ErrFileTooLarge, MaxUploadSize)
	}
	return path, nil
}

// List returns the stored file paths for a session, oldest first by name.
// A session with no uploads yields an empty slice.
func (s *Store) List(sessionID string) ([]string, error) {
	dir := filepath.Join(s.root, sessionID)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func (s *Store) uniquePath(dir, filename string) (string, error) {
	base := sanitize(filename)
	stamped := s.now().Format("20060102_150405") + "_" + base

	path := filepath.Join(dir, stamped)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("probe upload path: %w", err)
		}
		ext := filepath.Ext(stamped)
		stem := strings.TrimSuffix(stamped, ext)
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

// sanitize strips path components and replaces anything outside word
// characters, CJK, dots and dashes. The extension is preserved as-is apart
// from lowercasing.
func sanitize(filename string) string {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = unsafeChars.ReplaceAllString(stem, "_")
	if stem == "" || stem == "." {
		stem = "file"
	}
	return stem + ext
}
