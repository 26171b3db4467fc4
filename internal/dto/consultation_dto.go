package dto

import (
	"time"

	"ai-laborlaw-be/pkg/workflow"
)

// StartSessionRequest optionally carries a full intake transcript. When
// present the session fast-forwards through case collection, landing in the
// guidance stage with the checklist planned.
type StartSessionRequest struct {
	Transcript string `json:"transcript,omitempty"`
}

type SessionResponse struct {
	Id        string    `json:"id"`
	Stage     string    `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	Greeting  string    `json:"greeting,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type InventoryRequest struct {
	Description string `json:"description" validate:"required"`
}

type InventoryConfirmRequest struct {
	Confirm *bool `json:"confirm" validate:"required"`
}

type ReportRequest struct {
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text html json"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

type UploadResponse struct {
	SessionId string `json:"session_id"`
	FileName  string `json:"file_name"`
	Path      string `json:"path"`
}

type ChatResponse struct {
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions,omitempty"`
	Stage       string   `json:"stage"`
	Ended       bool     `json:"ended"`
}

type AnalyzeResponse struct {
	Reply    string `json:"reply"`
	Stage    string `json:"stage"`
	FileName string `json:"file_name"`
	Mocked   bool   `json:"mocked"`
}

type ReportResponse struct {
	CaseId      string `json:"case_id"`
	Summary     string `json:"summary"`
	Content     string `json:"content,omitempty"`
	TextPath    string `json:"text_path"`
	HTMLPath    string `json:"html_path"`
	JSONPath    string `json:"json_path"`
	GeneratedAt string `json:"generated_at"`
}

type ProgressResponse struct {
	Stage     string `json:"stage"`
	Total     int    `json:"total"`
	Done      int    `json:"done"`
	Remaining int    `json:"remaining"`
}

type UploadsResponse struct {
	SessionId string   `json:"session_id"`
	Files     []string `json:"files"`
}

// ArchiveSessionMessage is the payload queued for the archive consumer when
// a consultation finishes.
type ArchiveSessionMessage struct {
	SessionId string `json:"session_id"`
}

type ExportResponse struct {
	SessionId     string                   `json:"session_id"`
	Conversations []workflow.ShareGPTEntry `json:"conversations"`
}

// AnalyzerHealthResponse reports per-category reachability of the external
// analysis services.
type AnalyzerHealthResponse struct {
	Services map[string]bool `json:"services"`
}
