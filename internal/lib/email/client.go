// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders
// email bodies from HTML templates.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/deppfellow/go-profile/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// DefaultTemplateDir is where template files are looked up, relative to the
// working directory of the process.
const DefaultTemplateDir = "templates/emails"

// Client wraps the Resend client and a logger.
type Client struct {
	client      *resend.Client
	from        string
	templateDir string
	logger      *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client:      resend.NewClient(cfg.Integration.ResendAPIKey),
		from:        fmt.Sprintf("%s <%s>", "Profile", cfg.Integration.EmailFrom),
		templateDir: DefaultTemplateDir,
		logger:      logger,
	}
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	return render(c.templateDir, templateName, data)
}

func render(dir string, templateName Template, data map[string]string) (string, error) {
	tmplPath := filepath.Join(dir, string(templateName)+".html")

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	body, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}

// SendEmailChangedEmail tells a user their profile email was changed and
// needs to be verified again.
func (c *Client) SendEmailChangedEmail(to, name string) error {
	return c.SendEmail(
		to,
		"Your email address was changed",
		TemplateEmailChanged,
		map[string]string{
			"UserName":  name,
			"UserEmail": to,
		},
	)
}
