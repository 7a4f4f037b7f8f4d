package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"organizer/internal/app/server/config"

	"golang.org/x/exp/slog"
)

// SMTPSender отправляет HTML-письма через SMTP с PLAIN-аутентификацией
type SMTPSender struct {
	cfg      config.SMTP
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (p *SMTPSender) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if p.cfg.Username != "" {
		auth = smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)

	return p.sendMail(addr, auth, p.cfg.From, to, buildMessage(p.cfg.From, to, subject, htmlBody))
}

func buildMessage(from string, to []string, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// LogSender пишет письма в лог; используется, когда SMTP не настроен
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log.With("component", "mail")}
}

func (s *LogSender) Send(_ context.Context, to []string, subject string, htmlBody string) error {
	s.log.Info("email not sent, SMTP is not configured", "to", to, "subject", subject, "body", htmlBody)
	return nil
}
