// Package mailer delivers transactional email over SMTP. Delivery is
// best-effort: callers log failures and move on, the purchase itself is
// already committed.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"cine-taquilla/pkg/utils"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// Message is a single outbound email. Attachments are filename -> raw bytes
// and are sent base64-encoded.
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments map[string][]byte
}

type Sender interface {
	Send(msg Message) error
}

type SMTPSender struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// Send delivers the message, retrying transient SMTP failures.
func (s *SMTPSender) Send(msg Message) error {
	body, contentType, err := buildMIME(msg)
	if err != nil {
		return fmt.Errorf("build mime message: %w", err)
	}

	var raw bytes.Buffer
	fmt.Fprintf(&raw, "From: %s\r\n", s.config.From)
	fmt.Fprintf(&raw, "To: %s\r\n", msg.To)
	fmt.Fprintf(&raw, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&raw, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&raw, "Content-Type: %s\r\n\r\n", contentType)
	raw.Write(body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	err = retry.Do(
		func() error {
			return smtp.SendMail(addr, auth, s.config.From, []string{msg.To}, raw.Bytes())
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warn("SMTP send retry",
				zap.Uint("attempt", n+1),
				zap.String("to", msg.To),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	s.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMIME(msg Message) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=UTF-8")
	part, err := writer.CreatePart(htmlHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, "", err
	}

	for name, data := range msg.Attachments {
		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", "image/png")
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

		att, err := writer.CreatePart(attHeader)
		if err != nil {
			return nil, "", err
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		if _, err := att.Write([]byte(encoded)); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	contentType := fmt.Sprintf("multipart/mixed; boundary=%s", writer.Boundary())
	return buf.Bytes(), contentType, nil
}
