package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/pkg/evidence"
)

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// newTestClient wires the client at a single category to the test server and
// records backoff sleeps instead of waiting them out.
func newTestClient(t *testing.T, category evidence.Category, serverURL string) (*Client, *[]time.Duration) {
	t.Helper()
	catalog := evidence.NewCatalog(map[evidence.Category]string{category: serverURL})
	c := NewClient(catalog, testLogger(t))
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func TestAnalyzeSuccess(t *testing.T) {
	var gotField string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for field := range r.MultipartForm.File {
			gotField = field
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"文件类型": "录音证据", "是否可以作为核心证据": "是"}`))
	}))
	defer server.Close()

	c, slept := newTestClient(t, evidence.CategoryRecording, server.URL)
	path := writeTempFile(t, "谈话.mp3", []byte("audio"))

	result, err := c.Analyze(context.Background(), evidence.CategoryRecording, path)

	require.NoError(t, err)
	assert.Equal(t, "录音证据", result["文件类型"])
	assert.Equal(t, "Record_file", gotField)
	assert.Empty(t, *slept)
}

func TestAnalyzeRetriesServerFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c, slept := newTestClient(t, evidence.CategoryContract, server.URL)
	path := writeTempFile(t, "合同.pdf", []byte("pdf"))

	_, err := c.Analyze(context.Background(), evidence.CategoryContract, path)

	assert.ErrorIs(t, err, ErrServerFailure)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
}

func TestAnalyzeRecoversOnRetry(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"文件类型": "劳动合同"}`))
	}))
	defer server.Close()

	c, slept := newTestClient(t, evidence.CategoryContract, server.URL)
	path := writeTempFile(t, "合同.pdf", []byte("pdf"))

	result, err := c.Analyze(context.Background(), evidence.CategoryContract, path)

	require.NoError(t, err)
	assert.Equal(t, "劳动合同", result["文件类型"])
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{time.Second}, *slept)
}

func TestAnalyzeClientErrorIsTerminal(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	c, slept := newTestClient(t, evidence.CategoryPayslip, server.URL)
	path := writeTempFile(t, "工资单.pdf", []byte("pdf"))

	_, err := c.Analyze(context.Background(), evidence.CategoryPayslip, path)

	assert.ErrorIs(t, err, ErrClientRequest)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept)
}

func TestAnalyzeNonJSONResponseIsTerminal(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	c, _ := newTestClient(t, evidence.CategoryContract, server.URL)
	path := writeTempFile(t, "合同.pdf", []byte("pdf"))

	_, err := c.Analyze(context.Background(), evidence.CategoryContract, path)

	assert.ErrorIs(t, err, ErrParseFailure)
	assert.Equal(t, 1, calls)
}

func TestAnalyzeRejectsBadExtensionBeforeUpload(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	c, _ := newTestClient(t, evidence.CategoryRecording, server.URL)
	path := writeTempFile(t, "不是录音.pdf", []byte("pdf"))

	_, err := c.Analyze(context.Background(), evidence.CategoryRecording, path)

	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Zero(t, calls)
}

func TestAnalyzeRejectsOversizeFileBeforeUpload(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "大文件.pdf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxFileSize+1))
	require.NoError(t, f.Close())

	c, _ := newTestClient(t, evidence.CategoryContract, server.URL)
	_, err = c.Analyze(context.Background(), evidence.CategoryContract, path)

	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Zero(t, calls)
}

func TestAnalyzeAcceptsFileAtSizeCap(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"是否可以作为核心证据": "是"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "临界.pdf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxFileSize))
	require.NoError(t, f.Close())

	c, _ := newTestClient(t, evidence.CategoryContract, server.URL)
	result, err := c.Analyze(context.Background(), evidence.CategoryContract, path)

	require.NoError(t, err)
	assert.NotEmpty(t, result)
	assert.Equal(t, 1, calls)
}

func TestAnalyzeUnknownCategory(t *testing.T) {
	c, _ := newTestClient(t, evidence.CategoryContract, "http://localhost:0")
	path := writeTempFile(t, "x.pdf", []byte("pdf"))

	_, err := c.Analyze(context.Background(), evidence.CategoryOther, path)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c, _ := newTestClient(t, evidence.CategoryContract, server.URL+"/analyze_contract")
	assert.True(t, c.Healthy(context.Background(), evidence.CategoryContract))

	server.Close()
	assert.False(t, c.Healthy(context.Background(), evidence.CategoryContract))
}
