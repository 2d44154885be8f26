package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SMTPMailer sends plain-text mail through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for host:port.  Auth is skipped when
// username is empty.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
		send: smtp.SendMail,
	}
}

// Send delivers one message.  net/smtp has no context support, so the
// call runs in a goroutine and Send returns early if ctx ends first.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := BuildMessage(m.from, to, subject, body, time.Now())
	errc := make(chan error, 1)
	go func() { errc <- m.send(m.addr, m.auth, m.from, []string{to}, msg) }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BuildMessage renders an RFC 5322 plain-text message.  Header values are
// stripped of CR and LF.
func BuildMessage(from, to, subject, body string, now time.Time) []byte {
	clean := strings.NewReplacer("\r", "", "\n", "")
	var b strings.Builder
	b.WriteString("From: " + clean.Replace(from) + "\r\n")
	b.WriteString("To: " + clean.Replace(to) + "\r\n")
	b.WriteString("Subject: " + clean.Replace(subject) + "\r\n")
	b.WriteString("Date: " + now.UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// LogMailer writes mail to the log instead of sending it.  It is used when
// no SMTP relay is configured.
type LogMailer struct{ Log *zap.Logger }

func (m LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.Log.Info("notify.LogMailer email not sent, smtp disabled",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// LogMessenger is the Messenger used when no broker is configured.
type LogMessenger struct{ Log *zap.Logger }

func (m LogMessenger) Send(_ context.Context, to, body string) error {
	m.Log.Info("notify.LogMessenger message not sent, messaging disabled",
		zap.String("to", to),
		zap.Int("length", len(body)),
	)
	return nil
}
