package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Watermill topic for finished consultations awaiting archival.
	ConsultationArchiveTopic = "consultation.archive"

	// NATS event types, published on the shared EVENTS stream.
	EventConsultationStarted  = "CONSULTATION_STARTED"
	EventConsultationFinished = "CONSULTATION_FINISHED"
	EventReportGenerated      = "REPORT_GENERATED"

	// Durable consumer that mails generated reports.
	ReportMailerDurable       = "report-mailer"
	ReportGeneratedSubject    = "events.REPORT_GENERATED"
	ReportNotifyEmailEnvParam = "REPORT_NOTIFY_EMAIL"
)
