package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no Resend API key is set.
var ErrNotConfigured = errors.New("email service not configured")

// Sender delivers transactional email through Resend.
type Sender struct {
	client *resend.Client
	from   string
	appURL string
	logger zerolog.Logger
}

// NewSender returns a Sender. An empty apiKey yields a Sender whose sends all
// fail with ErrNotConfigured.
func NewSender(apiKey, from, appURL string, logger zerolog.Logger) *Sender {
	s := &Sender{
		from:   from,
		appURL: strings.TrimRight(appURL, "/"),
		logger: logger,
	}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

// WithBaseURL points the client at another Resend-compatible endpoint.
func (s *Sender) WithBaseURL(raw string) (*Sender, error) {
	if s.client == nil {
		return s, nil
	}
	u, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid email base URL: %w", err)
	}
	s.client.BaseURL = u
	return s, nil
}

func (s *Sender) Configured() bool {
	return s.client != nil
}

// Send delivers one HTML email and returns the provider message ID.
func (s *Sender) Send(ctx context.Context, to, subject, html string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Info().Str("to", to).Str("id", resp.Id).Msg("email sent")
	return resp.Id, nil
}

// SendWelcome sends the post-registration greeting.
func (s *Sender) SendWelcome(ctx context.Context, to, name string) error {
	body, err := render(welcomeTemplate, map[string]string{
		"Name":         firstNonEmpty(name, "there"),
		"DashboardURL": s.appURL + "/dashboard",
	})
	if err != nil {
		return err
	}
	_, err = s.Send(ctx, to, "💕 Welcome to Vivaha", body)
	return err
}

// SendTest sends a short message confirming the email setup works.
func (s *Sender) SendTest(ctx context.Context, to string) (string, error) {
	body, err := render(testTemplate, map[string]string{"From": s.from})
	if err != nil {
		return "", err
	}
	return s.Send(ctx, to, "✅ Test Email from Vivaha", body)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
