package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/sunflowertrip/tour-booking-backend/internal/service"
)

// ReportMailer sends plain-text contact reports over SMTP.
type ReportMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewReportMailer(host, port, username, password, from string) *ReportMailer {
	return &ReportMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *ReportMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if m == nil || m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, to, []byte(message.String()))
}

var _ service.ReportMailer = (*ReportMailer)(nil)
