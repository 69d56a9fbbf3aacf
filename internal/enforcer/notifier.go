package enforcer

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/credwatch/keyage-enforcer-aws/internal/aws"
)

// sourceMailPattern validates the configured sender address. Recipient
// addresses come from user tags and are passed through as-is.
var sourceMailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

const (
	mailSubjectTemplate = "Rotate your AWS Credentials (KeyID: %s)"
	mailBodyTemplate    = "Dear %s,\n\nPlease rotate your AWS Access Key immediately.\n It will be disabled otherwise shortly if not rotated.\n\n Your AWS Keyrotation Service"
)

// Notifier dispatches rotation reminders. Best effort: every failure is
// logged and swallowed so a broken mail path never aborts a run.
type Notifier struct {
	mail   aws.MailSender
	source string
	logger *slog.Logger
}

// NewNotifier creates a Notifier sending from the given source address.
func NewNotifier(mail aws.MailSender, source string, logger *slog.Logger) *Notifier {
	return &Notifier{mail: mail, source: source, logger: logger}
}

// Notify sends a rotation reminder for the given key to the contact address.
func (n *Notifier) Notify(ctx context.Context, contactEmail, keyID string) {
	if n.source == "" {
		n.logger.Warn("SOURCEMAIL environment variable not found, notification skipped")
		return
	}
	if !sourceMailPattern.MatchString(n.source) {
		n.logger.Warn("SOURCEMAIL is not a valid e-mail, notifications will not be sent",
			"source", n.source)
		return
	}

	subject := fmt.Sprintf(mailSubjectTemplate, keyID)
	body := fmt.Sprintf(mailBodyTemplate, contactEmail)

	if err := n.mail.SendEmail(ctx, n.source, contactEmail, subject, body); err != nil {
		n.logger.Warn("notification could not be sent",
			"recipient", contactEmail, "key_id", keyID, "error", err)
		return
	}

	n.logger.Info("notification sent", "recipient", contactEmail, "key_id", keyID)
}
