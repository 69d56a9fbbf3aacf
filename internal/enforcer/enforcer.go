// Package enforcer applies the access key age policy to an AWS account.
package enforcer

import (
	"context"
	"log/slog"
	"time"

	"github.com/credwatch/keyage-enforcer-aws/internal/aws"
	"github.com/credwatch/keyage-enforcer-aws/internal/telemetry"
)

// Config holds the enforcer configuration.
type Config struct {
	// NotifyKeyAgeDays is the key age past which owners are reminded to
	// rotate. Keys older than this plus the grace window are disabled.
	NotifyKeyAgeDays int

	// SourceMail is the sender address for rotation reminders. Empty
	// disables sending.
	SourceMail string

	// Logger receives run events. Defaults to slog.Default.
	Logger *slog.Logger

	// Now overrides the run clock, for tests.
	Now func() time.Time
}

// Enforcer walks the account's access keys once per invocation and applies
// the age policy. It keeps no state between runs; a key disabled on one run
// reads back as Inactive on the next and is skipped.
type Enforcer struct {
	config   Config
	identity aws.IdentityClient
	notifier *Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new Enforcer over the given identity and mail capabilities.
func New(config Config, identity aws.IdentityClient, mail aws.MailSender) *Enforcer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Enforcer{
		config:   config,
		identity: identity,
		notifier: NewNotifier(mail, config.SourceMail, logger),
		logger:   logger,
		now:      now,
	}
}

// Run builds the key inventory and applies the age policy to every active
// key. Identity provider failures abort the run; mail failures do not.
func (e *Enforcer) Run(ctx context.Context) error {
	e.logger.Info("enforcing access key age policy",
		"notify_after_days", e.config.NotifyKeyAgeDays,
		"deactivate_after_days", e.config.NotifyKeyAgeDays+GraceWindowDays)

	inventory, err := e.buildInventory(ctx)
	if err != nil {
		return err
	}

	thresholds := NewThresholds(e.now(), e.config.NotifyKeyAgeDays)
	return e.apply(ctx, inventory, thresholds)
}

// apply classifies every key in the inventory and performs the resulting
// action. A key is either reminded about or disabled on a given run, never
// both.
func (e *Enforcer) apply(ctx context.Context, inventory []KeyRecord, thresholds Thresholds) error {
	for _, rec := range inventory {
		switch thresholds.Classify(rec.Key) {
		case ActionNotify:
			e.logger.Info("access key past notify threshold",
				"user", rec.Key.UserName, "key_id", rec.Key.ID)
			if rec.ContactEmail == "" {
				e.logger.Warn("contact details for credentials not provided",
					"user", rec.Key.UserName, "key_id", rec.Key.ID)
				continue
			}
			e.notifier.Notify(ctx, rec.ContactEmail, rec.Key.ID)

		case ActionDeactivate:
			if err := e.identity.DeactivateAccessKey(ctx, rec.Key.UserName, rec.Key.ID); err != nil {
				return err
			}
			e.logger.Log(ctx, telemetry.LevelCritical, "access key disabled",
				"user", rec.Key.UserName, "key_id", rec.Key.ID)
		}
	}
	return nil
}
