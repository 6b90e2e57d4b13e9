// Package mailer relays orders and contact-form messages over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("smtp not configured")

// Config describes the relay and the mailbox orders go to.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string

	// MaxDesignBytes caps a single decoded design.
	MaxDesignBytes int
	// MaxInlineDesignBytes is the size above which image designs are sent
	// as a downscaled JPEG preview instead of the original file.
	MaxInlineDesignBytes int
}

type dialer interface {
	Dial() (gomail.SendCloser, error)
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	cfg    Config
	dialer dialer
	logger *zap.Logger
	now    func() time.Time
}

func New(cfg Config, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
		now:    time.Now,
	}
}

// Configured reports which required settings are missing, if any.
func (m *Mailer) Configured() error {
	var missing []string
	if m.cfg.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if m.cfg.Username == "" {
		missing = append(missing, "SMTP_USER")
	}
	if m.cfg.Password == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}
	if m.cfg.To == "" {
		missing = append(missing, "ORDER_EMAIL_TO")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Verify connects and authenticates against the relay without sending.
func (m *Mailer) Verify(ctx context.Context) error {
	if err := m.Configured(); err != nil {
		return err
	}
	return m.withContext(ctx, func() error {
		conn, err := m.dialer.Dial()
		if err != nil {
			return fmt.Errorf("dial smtp: %w", err)
		}
		return conn.Close()
	})
}

// SendOrder emails an order to the shop and returns its Message-ID.
func (m *Mailer) SendOrder(ctx context.Context, o domain.Order) (string, error) {
	if err := m.Configured(); err != nil {
		return "", err
	}
	view, attachments := m.orderView(o)
	text, html, err := renderOrder(view)
	if err != nil {
		return "", err
	}

	msg, id := m.newMessage()
	msg.SetHeader("Subject", fmt.Sprintf("New order from %s (%d items)", o.ContactInfo.FullName, len(o.Items)))
	msg.SetHeader("Reply-To", o.ContactInfo.Email)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)
	for _, a := range attachments {
		msg.Attach(a.name,
			gomail.SetCopyFunc(a.copy),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.mediaType}}),
		)
	}

	if err := m.send(ctx, msg); err != nil {
		return "", err
	}
	m.logger.Info("order email sent",
		zap.String("message_id", id),
		zap.Int("items", len(o.Items)),
		zap.Int("attachments", len(attachments)))
	return id, nil
}

// SendContact emails a contact-form message and returns its Message-ID.
func (m *Mailer) SendContact(ctx context.Context, c domain.ContactMessage) (string, error) {
	if err := m.Configured(); err != nil {
		return "", err
	}
	text, html, err := renderContact(c)
	if err != nil {
		return "", err
	}

	msg, id := m.newMessage()
	msg.SetHeader("Subject", "Contact form: "+c.Subject)
	msg.SetHeader("Reply-To", c.Email)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.send(ctx, msg); err != nil {
		return "", err
	}
	m.logger.Info("contact email sent", zap.String("message_id", id))
	return id, nil
}

func (m *Mailer) newMessage() (*gomail.Message, string) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), hostOf(m.from()))
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Message-ID", id)
	msg.SetDateHeader("Date", m.now())
	return msg, id
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

// send refuses to start once ctx is done but never abandons a send in
// flight: a delivered message must not be reported as failed.
func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// withContext runs fn but stops waiting once ctx is done. gomail has no
// cancellation, so fn itself keeps running until the relay answers. Only the
// Verify probe uses it.
func (m *Mailer) withContext(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func hostOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		return strings.TrimSuffix(addr[i+1:], ">")
	}
	return "localhost"
}
