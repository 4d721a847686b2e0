package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/kerjahub/hris-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Service sends the transactional mails the HRIS needs: employee
// invitations with an accept link.
type Service interface {
	SendInvitation(to, employeeName, inviterName, organizationName, invitationLink, expiresAt string) error
}

type emailService struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewService(cfg config.SMTPConfig) (Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailService{cfg: cfg, templates: tmpl}, nil
}

type invitationEmailData struct {
	EmployeeName     string
	InviterName      string
	OrganizationName string
	InvitationLink   string
	ExpiresAt        string
}

// SendInvitation sends an invitation email to the employee
func (s *emailService) SendInvitation(to, employeeName, inviterName, organizationName, invitationLink, expiresAt string) error {
	data := invitationEmailData{
		EmployeeName:     employeeName,
		InviterName:      inviterName,
		OrganizationName: organizationName,
		InvitationLink:   invitationLink,
		ExpiresAt:        expiresAt,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "invitation.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("You have been invited to join %s", organizationName), body.String())
}

func (s *emailService) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	headers := fmt.Sprintf("From: %s\r\n", s.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, message)
		if err == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
