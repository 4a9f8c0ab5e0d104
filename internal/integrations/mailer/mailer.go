package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/heavyrent/rental-service/internal/domain"
)

var ErrSend = fmt.Errorf("%w: mailer: send failed", domain.ErrExternalService)

var errEmptyRecipient = errors.New("mailer: empty recipient")

// Message is a single transactional email.
type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// SendGrid delivers transactional email through the SendGrid v3 API.
type SendGrid struct {
	client *sendgrid.Client
	from   *mail.Email
}

type Option func(*SendGrid)

// WithEndpoint overrides the mail send URL.
func WithEndpoint(url string) Option {
	return func(s *SendGrid) {
		s.client.BaseURL = url
	}
}

func NewSendGrid(apiKey, fromEmail, fromName string, opts ...Option) *SendGrid {
	s := &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" {
		return errEmptyRecipient
	}
	html := msg.HTML
	if html == "" {
		html = "<p>" + msg.PlainText + "</p>"
	}

	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	email := mail.NewSingleEmail(s.from, msg.Subject, to, msg.PlainText, html)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d: %s", ErrSend, resp.StatusCode, resp.Body)
	}
	return nil
}
