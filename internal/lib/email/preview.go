package email

import "fmt"

// PreviewData holds sample template data, keyed by template, for rendering
// templates without a real user.
var PreviewData = map[Template]map[string]string{
	TemplateEmailChanged: {
		"UserName":  "Jane Doe",
		"UserEmail": "jane@example.com",
	},
}

// Preview renders templateName with its PreviewData from dir.
func Preview(dir string, templateName Template) (string, error) {
	data, ok := PreviewData[templateName]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", templateName)
	}
	return render(dir, templateName, data)
}
