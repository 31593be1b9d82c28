package service

import (
	"context"
	"fmt"
	"html"

	"investiga-web/internal/domain"
	"investiga-web/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailSender is the part of the SendGrid client used here
type MailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type reportService struct {
	client    MailSender
	fromEmail string
	fromName  string
	toEmail   string
}

func NewReportService(apiKey, fromEmail, fromName, toEmail string) ReportService {
	return NewReportServiceWithSender(sendgrid.NewSendClient(apiKey), fromEmail, fromName, toEmail)
}

func NewReportServiceWithSender(client MailSender, fromEmail, fromName, toEmail string) ReportService {
	return &reportService{client: client, fromEmail: fromEmail, fromName: fromName, toEmail: toEmail}
}

func (s *reportService) SendIssueReport(ctx context.Context, r domain.IssueReport) error {
	logger.ExternalServiceCall("sendgrid", "send_issue_report", "reference", r.Reference)

	subject := fmt.Sprintf("[Investiga] Issue report %s", r.Reference)
	plain := fmt.Sprintf("Reference: %s\nPath: %s\nReporter: %s\nUser agent: %s\n\n%s",
		r.Reference, r.Path, r.Email, r.UserAgent, r.Description)
	htmlContent := fmt.Sprintf(`<h2>Issue report %s</h2>
<p><strong>Path:</strong> %s<br><strong>Reporter:</strong> %s<br><strong>User agent:</strong> %s</p>
<pre>%s</pre>`,
		html.EscapeString(r.Reference), html.EscapeString(r.Path), html.EscapeString(r.Email),
		html.EscapeString(r.UserAgent), html.EscapeString(r.Description))

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		subject,
		mail.NewEmail("Investiga", s.toEmail),
		plain,
		htmlContent,
	)
	if r.Email != "" {
		message.SetReplyTo(mail.NewEmail("", r.Email))
	}

	response, err := s.client.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send issue report: %w", err)
	} else if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send_issue_report", err, "reference", r.Reference)
	return err
}

type disabledReportService struct{}

// NewDisabledReportService logs reports instead of emailing them
func NewDisabledReportService() ReportService {
	return disabledReportService{}
}

func (disabledReportService) SendIssueReport(ctx context.Context, r domain.IssueReport) error {
	logger.WarnContext(ctx, "Issue report received but email reporting is not configured",
		"reference", r.Reference, "path", r.Path, "description", r.Description)
	return nil
}
