// Package transport builds a mailer.Transport from a declarative Config,
// so the delivery provider can be chosen in a config file.
//
// Queue-backed transports (redisqueue, riverqueue) need live clients and
// are constructed directly instead.
package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer/mailgun"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer/resend"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer/smtp"
)

// Supported transport types.
const (
	TypeJSON    = "json"
	TypeSMTP    = "smtp"
	TypeResend  = "resend"
	TypeMailgun = "mailgun"
)

// ErrUnknownType is returned for an unsupported Config.Type.
var ErrUnknownType = errors.New("transport: unknown type")

// Config selects and configures a transport. Only the section matching
// Type is read.
type Config struct {
	Type    string         `yaml:"type" env:"MAIL_TRANSPORT" envDefault:"json"`
	SMTP    smtp.Config    `yaml:"smtp"`
	Resend  resend.Config  `yaml:"resend"`
	Mailgun mailgun.Config `yaml:"mailgun"`
}

// New constructs the transport described by cfg. An empty Type yields the
// JSON dry-run transport.
func New(cfg Config, log *slog.Logger) (mailer.Transport, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", TypeJSON:
		return mailer.NewJSONTransport(), nil
	case TypeSMTP:
		return wrap(smtp.New(cfg.SMTP, smtp.WithLogger(log)))
	case TypeResend:
		return wrap(resend.New(cfg.Resend))
	case TypeMailgun:
		return wrap(mailgun.New(cfg.Mailgun))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}
}

// wrap avoids returning a typed nil inside the interface.
func wrap[T mailer.Transport](t T, err error) (mailer.Transport, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
