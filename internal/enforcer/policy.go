package enforcer

import (
	"time"

	"github.com/credwatch/keyage-enforcer-aws/internal/aws"
)

// Action is the policy outcome for a single access key.
type Action int

// Policy outcomes.
const (
	ActionNone Action = iota
	ActionNotify
	ActionDeactivate
)

// Thresholds holds the cutoff instants for one run. Keys created before
// NotifyBefore are due for a rotation reminder; keys created before
// DeactivateBefore are disabled.
type Thresholds struct {
	NotifyBefore     time.Time
	DeactivateBefore time.Time
}

// NewThresholds derives both cutoffs from the configured notify age. The
// deactivate cutoff always trails the notify cutoff by the grace window.
func NewThresholds(now time.Time, notifyAfterDays int) Thresholds {
	return Thresholds{
		NotifyBefore:     now.AddDate(0, 0, -notifyAfterDays),
		DeactivateBefore: now.AddDate(0, 0, -(notifyAfterDays + GraceWindowDays)),
	}
}

// Classify decides the policy action for a key. Inactive keys are never
// acted on. Both sides of the comparison are normalized to UTC; IAM returns
// UTC-equivalent instants, so this preserves the provider's clock.
func (t Thresholds) Classify(key aws.AccessKey) Action {
	if !key.IsActive() {
		return ActionNone
	}

	created := key.CreateDate.UTC()
	switch {
	case created.Before(t.DeactivateBefore.UTC()):
		return ActionDeactivate
	case created.Before(t.NotifyBefore.UTC()):
		return ActionNotify
	}
	return ActionNone
}
