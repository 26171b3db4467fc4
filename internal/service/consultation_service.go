package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"ai-laborlaw-be/internal/constant"
	"ai-laborlaw-be/internal/dto"
	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/internal/repository"
	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/events"
	"ai-laborlaw-be/pkg/evidence"
	pktNats "ai-laborlaw-be/pkg/nats"
	"ai-laborlaw-be/pkg/report"
	"ai-laborlaw-be/pkg/upload"
	"ai-laborlaw-be/pkg/workflow"
)

// IConsultationService drives the staged consultation over HTTP. Session
// state is loaded and persisted around every turn so the API stays
// stateless.
type IConsultationService interface {
	StartSession(ctx context.Context, request *dto.StartSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*workflow.Session, error)
	SendChat(ctx context.Context, sessionId string, request *dto.ChatRequest) (*dto.ChatResponse, error)
	SubmitInventory(ctx context.Context, sessionId string, request *dto.InventoryRequest) (*dto.ChatResponse, error)
	ConfirmInventory(ctx context.Context, sessionId string, request *dto.InventoryConfirmRequest) (*dto.ChatResponse, error)
	UploadEvidence(ctx context.Context, sessionId string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	AnalyzeEvidence(ctx context.Context, sessionId string, file *multipart.FileHeader) (*dto.AnalyzeResponse, error)
	SkipEvidence(ctx context.Context, sessionId string) (*dto.ChatResponse, error)
	GetProgress(ctx context.Context, sessionId string) (*dto.ProgressResponse, error)
	GetUploads(ctx context.Context, sessionId string) (*dto.UploadsResponse, error)
	GenerateReport(ctx context.Context, sessionId string, request *dto.ReportRequest) (*dto.ReportResponse, error)
	ExportConversation(ctx context.Context, sessionId string) (*dto.ExportResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	CheckAnalyzers(ctx context.Context) *dto.AnalyzerHealthResponse
}

type consultationService struct {
	engine           *workflow.Engine
	sessionRepo      repository.ISessionRepository
	uploadStore      *upload.Store
	reportWriter     *report.Writer
	analysisClient   *analysis.Client
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewConsultationService(
	engine *workflow.Engine,
	sessionRepo repository.ISessionRepository,
	uploadStore *upload.Store,
	reportWriter *report.Writer,
	analysisClient *analysis.Client,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsultationService {
	return &consultationService{
		engine:           engine,
		sessionRepo:      sessionRepo,
		uploadStore:      uploadStore,
		reportWriter:     reportWriter,
		analysisClient:   analysisClient,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *consultationService) StartSession(ctx context.Context, request *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	session, reply := s.engine.Start()

	// A supplied transcript is treated as the whole case collection stage:
	// feed it, then the end token to trigger extraction and planning.
	if request != nil && request.Transcript != "" {
		s.engine.Handle(ctx, session, request.Transcript)
		reply = s.engine.Handle(ctx, session, "没有")
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, constant.EventConsultationStarted, map[string]interface{}{
		"session_id": session.ID,
	})

	return &dto.SessionResponse{
		Id:        session.ID,
		Stage:     reply.StageName,
		CreatedAt: session.CreatedAt,
		Greeting:  reply.Text,
	}, nil
}

func (s *consultationService) GetSession(ctx context.Context, sessionId string) (*workflow.Session, error) {
	return s.sessionRepo.Get(ctx, sessionId)
}

func (s *consultationService) SendChat(ctx context.Context, sessionId string, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	reply := s.engine.Handle(ctx, session, request.Message)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	if reply.Ended {
		s.onFinished(ctx, session)
	}

	return chatResponse(reply), nil
}

func (s *consultationService) SubmitInventory(ctx context.Context, sessionId string, request *dto.InventoryRequest) (*dto.ChatResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Stage != workflow.StageInventory {
		return nil, workflow.ErrWrongStage
	}

	reply := s.engine.Handle(ctx, session, request.Description)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return chatResponse(reply), nil
}

// ConfirmInventory accepts or rejects the proposed inventory. Acceptance
// freezes it and enters the analysis stage; a rejection discards the parse
// so the client can re-describe.
func (s *consultationService) ConfirmInventory(ctx context.Context, sessionId string, request *dto.InventoryConfirmRequest) (*dto.ChatResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Stage != workflow.StageInventory || len(session.Proposed) == 0 {
		return nil, workflow.ErrWrongStage
	}

	answer := "是"
	if !*request.Confirm {
		answer = "否"
	}
	reply := s.engine.Handle(ctx, session, answer)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return chatResponse(reply), nil
}

// UploadEvidence stores a file for the current inventory item without
// running the analyzer.
func (s *consultationService) UploadEvidence(ctx context.Context, sessionId string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	spec, err := s.currentSpec(session)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	path, err := s.uploadStore.Save(sessionId, spec, file.Filename, src)
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		SessionId: sessionId,
		FileName:  file.Filename,
		Path:      path,
	}, nil
}

func (s *consultationService) AnalyzeEvidence(ctx context.Context, sessionId string, file *multipart.FileHeader) (*dto.AnalyzeResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	spec, err := s.currentSpec(session)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	path, err := s.uploadStore.Save(sessionId, spec, file.Filename, src)
	if err != nil {
		return nil, err
	}

	reply, err := s.engine.AnalyzeCurrent(ctx, session, path)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	record := session.Records[len(session.Records)-1]
	return &dto.AnalyzeResponse{
		Reply:    reply.Text,
		Stage:    reply.StageName,
		FileName: record.FileName,
		Mocked:   record.Mocked,
	}, nil
}

func (s *consultationService) SkipEvidence(ctx context.Context, sessionId string) (*dto.ChatResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	reply, err := s.engine.Skip(session)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return chatResponse(reply), nil
}

func (s *consultationService) GetProgress(ctx context.Context, sessionId string) (*dto.ProgressResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	p := session.Progress()
	return &dto.ProgressResponse{
		Stage:     p.Stage,
		Total:     p.Total,
		Done:      p.Done,
		Remaining: p.Remaining,
	}, nil
}

func (s *consultationService) GetUploads(ctx context.Context, sessionId string) (*dto.UploadsResponse, error) {
	if _, err := s.sessionRepo.Get(ctx, sessionId); err != nil {
		return nil, err
	}
	files, err := s.uploadStore.List(sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.UploadsResponse{SessionId: sessionId, Files: files}, nil
}

func (s *consultationService) currentSpec(session *workflow.Session) (evidence.Spec, error) {
	item, ok := session.CurrentItem()
	if !ok || session.Stage != workflow.StageAnalysis {
		return evidence.Spec{}, workflow.ErrWrongStage
	}
	spec, ok := s.engine.Catalog().Spec(item.Type)
	if !ok {
		return evidence.Spec{}, fmt.Errorf("%w: %s", workflow.ErrUnanalyzableItem, item.Name)
	}
	return spec, nil
}

func (s *consultationService) GenerateReport(ctx context.Context, sessionId string, request *dto.ReportRequest) (*dto.ReportResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	doc, files, err := s.engine.GenerateReport(session, s.reportWriter)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	summary := report.RenderSummary(doc)

	// The report-mailer consumer picks this event up and mails the files.
	// An explicit recipient in the request overrides the configured one.
	s.publishEvent(ctx, constant.EventReportGenerated, map[string]interface{}{
		"session_id":     session.ID,
		"case_id":        doc.CaseID,
		"strength_level": string(doc.Legal.StrengthLevel),
		"summary":        summary,
		"notify_email":   request.Email,
		"text_path":      files.Text,
		"html_path":      files.HTML,
		"json_path":      files.JSON,
	})

	res := &dto.ReportResponse{
		CaseId:      doc.CaseID,
		Summary:     summary,
		TextPath:    files.Text,
		HTMLPath:    files.HTML,
		JSONPath:    files.JSON,
		GeneratedAt: doc.GeneratedAt.Format(time.RFC3339),
	}

	switch request.Format {
	case "text":
		res.Content = report.RenderText(doc)
	case "html":
		res.Content = report.RenderHTML(doc)
	case "json":
		data, err := report.RenderJSON(doc)
		if err != nil {
			return nil, err
		}
		res.Content = string(data)
	}

	return res, nil
}

func (s *consultationService) ExportConversation(ctx context.Context, sessionId string) (*dto.ExportResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.ExportResponse{
		SessionId:     session.ID,
		Conversations: workflow.BuildShareGPT(session),
	}, nil
}

func (s *consultationService) DeleteSession(ctx context.Context, sessionId string) error {
	if _, err := s.sessionRepo.Get(ctx, sessionId); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionId)
}

// CheckAnalyzers probes every configured analysis service. A down analyzer
// is not an error, the analysis stage falls back to mock results.
func (s *consultationService) CheckAnalyzers(ctx context.Context) *dto.AnalyzerHealthResponse {
	res := &dto.AnalyzerHealthResponse{Services: map[string]bool{}}
	for _, category := range s.engine.Catalog().Categories() {
		res.Services[string(category)] = s.analysisClient.Healthy(ctx, category)
	}
	return res
}

// onFinished queues the session for archival and emits the finished event.
// Both are auxiliary, the farewell reply already went out.
func (s *consultationService) onFinished(ctx context.Context, session *workflow.Session) {
	msgJson, err := json.Marshal(dto.ArchiveSessionMessage{SessionId: session.ID})
	if err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.log.Warn("consultation", "archive publish failed", map[string]interface{}{
				"session_id": session.ID,
				"error":      err.Error(),
			})
		}
	}

	s.publishEvent(ctx, constant.EventConsultationFinished, map[string]interface{}{
		"session_id": session.ID,
		"stage":      session.Stage.String(),
		"messages":   len(session.Messages),
	})
}

func (s *consultationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("consultation", "event publish failed", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func chatResponse(reply *workflow.Reply) *dto.ChatResponse {
	return &dto.ChatResponse{
		Reply:       reply.Text,
		Suggestions: reply.Suggestions,
		Stage:       reply.StageName,
		Ended:       reply.Ended,
	}
}
