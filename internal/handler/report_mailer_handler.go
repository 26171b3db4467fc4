package handler

import (
	"context"
	"os"

	"ai-laborlaw-be/internal/constant"
	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/internal/pkg/mailer"
	"ai-laborlaw-be/pkg/events"
	"ai-laborlaw-be/pkg/report"
)

// ReportMailerHandler consumes REPORT_GENERATED events and mails the report
// files to the configured recipient.
type ReportMailerHandler struct {
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewReportMailerHandler(emailService mailer.IEmailService, log logger.ILogger) *ReportMailerHandler {
	return &ReportMailerHandler{
		emailService: emailService,
		logger:       log,
	}
}

// Handle implements nats.EventHandler.
func (h *ReportMailerHandler) Handle(_ context.Context, event events.Event) error {
	data := event.Payload()
	toEmail, _ := data["notify_email"].(string)
	if toEmail == "" {
		toEmail = os.Getenv(constant.ReportNotifyEmailEnvParam)
	}
	if toEmail == "" {
		// No recipient configured, nothing to do.
		return nil
	}

	caseID, _ := data["case_id"].(string)
	summary, _ := data["summary"].(string)
	files := report.Files{}
	files.Text, _ = data["text_path"].(string)
	files.HTML, _ = data["html_path"].(string)
	files.JSON, _ = data["json_path"].(string)

	if caseID == "" {
		h.logger.Warn("ReportMailerHandler", "event missing case_id, dropping", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	if err := h.emailService.SendReport(toEmail, caseID, summary, files); err != nil {
		h.logger.Error("ReportMailerHandler", "failed to mail report", map[string]interface{}{
			"case_id": caseID,
			"to":      toEmail,
			"error":   err.Error(),
		})
		return err
	}

	h.logger.Info("ReportMailerHandler", "report mailed", map[string]interface{}{
		"case_id": caseID,
		"to":      toEmail,
	})
	return nil
}
