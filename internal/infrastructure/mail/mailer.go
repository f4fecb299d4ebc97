// Package mail delivers one-time verification codes to donors and charities.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/daana/backend/internal/infrastructure/config"
)

// Mailer sends transactional messages. Delivery is best effort: callers
// issue the code first and treat a failed send as a warning, not an error.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

// SMTPMailer sends mail through a plain SMTP relay using net/smtp.
type SMTPMailer struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer backed by the configured SMTP relay.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendVerificationCode mails a six digit account verification code.
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"Your verification code is %s.\r\n\r\nThe code expires in 10 minutes. If you did not request it, ignore this message.\r\n",
		code,
	)
	return m.send(ctx, to, subject, body)
}

// SendPasswordResetCode mails a six digit password reset code.
func (m *SMTPMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	subject := "Your password reset code"
	body := fmt.Sprintf(
		"Your password reset code is %s.\r\n\r\nThe code expires in 10 minutes. If you did not request a reset, ignore this message.\r\n",
		code,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("recipient address is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, to, subject, body)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		m.logger.Warn("Failed to send mail",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Debug("Mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// LogMailer logs codes instead of sending mail. Used when mail delivery is
// disabled, which keeps local development and tests self contained.
type LogMailer struct {
	logger *zap.Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	m.logger.Info("Verification code issued (mail disabled)",
		zap.String("to", to),
		zap.String("code", code))
	return nil
}

func (m *LogMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	m.logger.Info("Password reset code issued (mail disabled)",
		zap.String("to", to),
		zap.String("code", code))
	return nil
}

// New selects the SMTP mailer when delivery is enabled, otherwise the
// logging mailer.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.Enabled {
		return NewSMTPMailer(cfg, logger)
	}
	return NewLogMailer(logger)
}
