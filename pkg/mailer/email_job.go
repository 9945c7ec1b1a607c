package mailer

// EmailJob is one email to render and send. Html is optional; Text is
// recommended as fallback. Template and Data select an embedded template
// instead of a literal body.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "member_registered" or "password_changed"
	Data     map[string]any `json:"data,omitempty"`
}
