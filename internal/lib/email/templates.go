package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateEmailChanged corresponds to templates/emails/email_changed.html
	TemplateEmailChanged Template = "email_changed"
)
