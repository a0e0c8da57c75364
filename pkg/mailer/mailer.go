package mailer

import (
	"context"
	"fmt"

	"wellness-booking/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Event keys the template used for a notification.
type Event string

const (
	EventBookingReceived    Event = "booking_received"
	EventBookingConfirmed   Event = "booking_confirmed"
	EventBookingCancelled   Event = "booking_cancelled"
	EventBookingRescheduled Event = "booking_rescheduled"
	EventPaymentReceived    Event = "payment_received"
)

// Message is the template context for one notification.
type Message struct {
	To            string
	Event         Event
	CustomerName  string
	Reference     string
	ProductTitle  string
	PreferredDate string
	TotalAmount   float64
	Currency      string
	AdminMessage  string
}

// Notifier delivers customer notifications. Implementations must be safe
// for concurrent use; callers treat delivery as best-effort and never let
// a send failure fail the primary request.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

// NewNotifier builds the SMTP notifier, or a no-op one when email is
// disabled in config. Constructed once at startup and injected.
func NewNotifier(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	if !cfg.Enabled || cfg.Host == "" {
		log.Warn("Email notifications disabled")
		return &noopNotifier{log: log.With(zap.String("notifier", "noop"))}
	}

	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log.With(zap.String("notifier", "smtp")),
	}
}

func (n *smtpNotifier) Send(_ context.Context, msg Message) error {
	subject, body, err := renderEmail(msg)
	if err != nil {
		return fmt.Errorf("render %s email: %w", msg.Event, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %s email to %s: %w", msg.Event, msg.To, err)
	}

	n.log.Info("Notification sent",
		zap.String("event", string(msg.Event)),
		zap.String("to", msg.To),
		zap.String("reference", msg.Reference),
	)

	return nil
}

type noopNotifier struct {
	log *zap.Logger
}

func (n *noopNotifier) Send(_ context.Context, msg Message) error {
	n.log.Debug("Notification skipped",
		zap.String("event", string(msg.Event)),
		zap.String("to", msg.To),
	)
	return nil
}
