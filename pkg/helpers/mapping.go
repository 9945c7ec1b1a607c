package helpers

import (
	"fmt"

	"github.com/oksasatya/go-member-account/pkg/mailer"
	mailtpl "github.com/oksasatya/go-member-account/pkg/mailer/templates"
)

var eventTemplates = map[string]string{
	"member.registered":       mailtpl.MemberRegistered,
	"member.password_changed": mailtpl.PasswordChanged,
}

// TemplateForEvent returns the email template rendered for a member event type.
func TemplateForEvent(eventType string) (string, bool) {
	t, ok := eventTemplates[eventType]
	return t, ok
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}
