// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/email"
	"go.uber.org/zap"
)

// Email is one outgoing message. TextBody is required; HTMLBody is optional
// and, when set, is sent as the HTML alternative.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config describes the SMTP relay. STARTTLS is required unless Port is
// 465, which uses implicit TLS.
type Config struct {
	Host     string
	Port     int
	User     string // empty for relays without auth
	Pass     string
	From     string
	FromName string
	Timeout  time.Duration // per SMTP session; zero uses the sender default
}

// transport is the part of email.Sender the Mailer uses.
type transport interface {
	Send(ctx context.Context, msg email.Message) error
}

// Mailer sends email through an SMTP relay.
type Mailer struct {
	sender transport
	log    *zap.Logger
}

// New creates a Mailer backed by the pantry email sender.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		sender: email.NewSender(email.Config{
			Host:        cfg.Host,
			Port:        cfg.Port,
			Username:    cfg.User,
			Password:    cfg.Pass,
			FromAddress: cfg.From,
			FromName:    cfg.FromName,
			UseSSL:      cfg.Port == 465,
			Timeout:     cfg.Timeout,
		}),
		log: logger,
	}
}

// Send delivers e. The SMTP session is bounded by ctx.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return errors.New("mailer: empty recipient")
	}
	if err := m.sender.Send(ctx, toMessage(e)); err != nil {
		return err
	}
	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

func toMessage(e Email) email.Message {
	return email.Message{
		To:       []string{e.To},
		ReplyTo:  e.ReplyTo,
		Subject:  e.Subject,
		TextBody: e.TextBody,
		HTMLBody: e.HTMLBody,
	}
}
