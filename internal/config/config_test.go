package config

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NOTIFYKEYAGE", "")
	t.Setenv("SOURCEMAIL", "")
	t.Setenv("SESREGION", "")
	t.Setenv("ROLE_ARN", "")
	t.Setenv("EXTERNAL_ID", "")

	env := Load(testLogger())

	if env.NotifyKeyAgeDays != DefaultNotifyKeyAgeDays {
		t.Fatalf("expected default notify age %d, got %d", DefaultNotifyKeyAgeDays, env.NotifyKeyAgeDays)
	}
	if env.SourceMail != "" {
		t.Fatalf("expected empty source mail, got %q", env.SourceMail)
	}
	if env.MailRegion != DefaultMailRegion {
		t.Fatalf("expected default mail region %q, got %q", DefaultMailRegion, env.MailRegion)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("NOTIFYKEYAGE", "45")
	t.Setenv("SOURCEMAIL", "keyrotation@example.com")
	t.Setenv("SESREGION", "us-east-1")
	t.Setenv("ROLE_ARN", "arn:aws:iam::123456789012:role/KeyAgeEnforcer")
	t.Setenv("EXTERNAL_ID", "ext-42")

	env := Load(testLogger())

	if env.NotifyKeyAgeDays != 45 {
		t.Fatalf("expected 45 days, got %d", env.NotifyKeyAgeDays)
	}
	if env.SourceMail != "keyrotation@example.com" {
		t.Fatalf("unexpected source mail: %q", env.SourceMail)
	}
	if env.MailRegion != "us-east-1" {
		t.Fatalf("unexpected mail region: %q", env.MailRegion)
	}
	if env.RoleARN != "arn:aws:iam::123456789012:role/KeyAgeEnforcer" {
		t.Fatalf("unexpected role ARN: %q", env.RoleARN)
	}
	if env.ExternalID != "ext-42" {
		t.Fatalf("unexpected external ID: %q", env.ExternalID)
	}
}

func TestLoadFallsBackOnBadNotifyAge(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "30.5"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("NOTIFYKEYAGE", raw)
			env := Load(testLogger())
			if env.NotifyKeyAgeDays != DefaultNotifyKeyAgeDays {
				t.Fatalf("value %q: expected fallback to %d, got %d",
					raw, DefaultNotifyKeyAgeDays, env.NotifyKeyAgeDays)
			}
		})
	}
}

func TestLoadAcceptsZeroNotifyAge(t *testing.T) {
	t.Setenv("NOTIFYKEYAGE", "0")
	env := Load(testLogger())
	if env.NotifyKeyAgeDays != 0 {
		t.Fatalf("expected 0 days, got %d", env.NotifyKeyAgeDays)
	}
}
