package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSessionSummary(toEmail, sessionId, summary, reportURL string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	configured  bool
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		configured:  host != "" && senderEmail != "",
	}
}

// SendSessionSummary mails the closing summary to the recruiter inbox. A
// missing SMTP configuration is a silent no-op so finalization never depends
// on mail delivery.
func (s *emailService) SendSessionSummary(toEmail, sessionId, summary, reportURL string) error {
	if !s.configured || toEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Interview summary for session %s", sessionId))

	htmlSummary := strings.ReplaceAll(summary, "\n", "<br>")
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Interview session completed</h2>
			<p>%s</p>
			<p><a href="%s">Full report</a></p>
		</div>
	`, htmlSummary, reportURL)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
