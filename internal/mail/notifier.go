package mail

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"

	"whoami/app/internal/content"
)

// Settings configures the SMTP notification sender. Notifications are
// disabled entirely when the host or recipient is empty.
type Settings struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// Enabled reports whether the settings describe a usable SMTP target.
func (s Settings) Enabled() bool {
	return s.Host != "" && s.From != "" && s.Recipient != ""
}

// Notifier delivers contact messages to the site owner over SMTP.
type Notifier struct {
	settings Settings
	client   *gomail.Client
	logger   *logrus.Logger
}

var _ content.Notifier = (*Notifier)(nil)

// NewNotifier constructs the SMTP notifier. Returns nil without error when
// notifications are not configured, so callers can wire it unconditionally.
func NewNotifier(settings Settings, logger *logrus.Logger) (*Notifier, error) {
	if !settings.Enabled() {
		return nil, nil
	}

	opts := []gomail.Option{
		gomail.WithPort(settings.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if settings.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(settings.Username),
			gomail.WithPassword(settings.Password),
		)
	}

	client, err := gomail.NewClient(settings.Host, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "creating smtp client")
	}

	return &Notifier{settings: settings, client: client, logger: logger}, nil
}

// NotifyContact sends a plain-text notification for one contact message. The
// sender's address goes into Reply-To so the owner can answer directly.
func (n *Notifier) NotifyContact(ctx context.Context, contact content.Contact) error {
	msg := gomail.NewMsg()

	if err := msg.From(n.settings.From); err != nil {
		return eris.Wrap(err, "setting mail sender")
	}
	if err := msg.To(n.settings.Recipient); err != nil {
		return eris.Wrap(err, "setting mail recipient")
	}
	if err := msg.ReplyTo(contact.Email); err != nil {
		return eris.Wrap(err, "setting reply-to")
	}

	msg.Subject(fmt.Sprintf("New contact message from %s", contact.Name))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Name: %s\nEmail: %s\n\n%s\n", contact.Name, contact.Email, contact.Message,
	))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return eris.Wrap(err, "sending contact notification")
	}

	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{
			"component":  "mail",
			"contact_id": contact.ID,
		}).Info("contact notification sent")
	}

	return nil
}
