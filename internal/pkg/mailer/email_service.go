// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"ai-laborlaw-be/pkg/report"
)

type IEmailService interface {
	SendReport(toEmail, caseID, summary string, files report.Files) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendReport(toEmail, caseID, summary string, files report.Files) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("劳动争议案件分析报告 - %s", caseID))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>案件分析报告已生成</h2>
			<p>案件编号：%s</p>
			<pre style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; white-space: pre-wrap;">%s</pre>
			<p>完整报告见附件。本报告仅供参考，具体法律行动请咨询专业律师。</p>
		</div>
	`, caseID, html.EscapeString(summary))

	m.SetBody("text/html", body)
	for _, path := range []string{files.Text, files.HTML, files.JSON} {
		if path != "" {
			m.Attach(path)
		}
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send report for %s to %s: %v\n", caseID, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Report for %s sent to %s\n", caseID, toEmail)
	return nil
}
