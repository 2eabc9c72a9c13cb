package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"sync"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/model"
)

// ErrNotConfigured is returned when SMTP settings are absent. Callers treat it
// as an expected condition: the contact form works without a mailer.
var ErrNotConfigured = errors.New("mailer not configured")

// Mailer sends contact form notifications over SMTP.
type Mailer struct {
	cfg *config.EmailConfig

	// The transport handle is built lazily exactly once, even when the first
	// submissions arrive concurrently.
	once sync.Once
	auth smtp.Auth
	addr string
	from string
	to   string

	// sendMail is swappable in tests; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a Mailer for the given configuration.
func New(cfg *config.EmailConfig) *Mailer {
	return &Mailer{cfg: cfg, sendMail: smtp.SendMail}
}

// Configured reports whether the SMTP transport settings are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

// setup initializes the process-wide transport handle.
func (m *Mailer) setup() {
	m.auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	m.addr = fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	m.from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.Username)

	m.to = m.cfg.To
	if m.to == "" {
		m.to = m.cfg.Username
	}
}

// Notify sends a single notification email about a stored contact message to
// the configured destination. The send is bounded by ctx; transport failures
// are returned to the caller, which treats them as best-effort.
func (m *Mailer) Notify(ctx context.Context, msg *model.ContactMessage) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	m.once.Do(m.setup)

	subject := "[Portfolio] " + msg.Subject
	body := buildMessage(m.from, m.to, subject, htmlBody(msg), textBody(msg))

	done := make(chan error, 1)
	go func() {
		done <- m.sendMail(m.addr, m.auth, m.cfg.Username, []string{m.to}, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send notification email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// htmlBody renders the rich part of the notification, with submitted newlines
// converted to line breaks.
func htmlBody(msg *model.ContactMessage) string {
	escaped := html.EscapeString(msg.Message)
	return fmt.Sprintf(`<h2>New contact form submission</h2>
<p><strong>From:</strong> %s &lt;%s&gt;</p>
<p><strong>Subject:</strong> %s</p>
<hr>
<p>%s</p>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject),
		strings.ReplaceAll(escaped, "\n", "<br>"))
}

// textBody renders the plain text part of the notification.
func textBody(msg *model.ContactMessage) string {
	return fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s",
		msg.Name, msg.Email, msg.Subject, msg.Message)
}

// buildMessage assembles a multipart/alternative message with plain text and
// HTML parts.
func buildMessage(from, to, subject, htmlPart, textPart string) []byte {
	boundary := "----=_NextPart_1234567890"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(textPart + "\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(htmlPart + "\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
