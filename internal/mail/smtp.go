package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/MorgandeCesso/regulus-back/config"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"

	"github.com/pkg/errors"
)

// SMTPSender sends plain-text mail over STARTTLS (gmail-style submission).
type SMTPSender struct {
	cfg    config.SMTP
	logger *logger.Logger
}

func NewSMTPSender(cfg config.SMTP, logger *logger.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

func (s *SMTPSender) SendVerificationCode(ctx context.Context, email, code string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Sender, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Registration confirmation\r\n\r\nYour verification code: %s\r\n",
		s.cfg.Sender, email, code,
	)

	// net/smtp negotiates STARTTLS automatically when the server offers it
	if err := smtp.SendMail(addr, auth, s.cfg.Sender, []string{email}, []byte(msg)); err != nil {
		return errors.Wrap(err, "mail.SendVerificationCode: ")
	}
	s.logger.Info("verification code sent", "email", email)
	return nil
}
