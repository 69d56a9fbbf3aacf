package enforcer

import (
	"context"
	"io"
	"log/slog"

	"github.com/credwatch/keyage-enforcer-aws/internal/aws"
)

// fakeIdentity is a very small in-memory IdentityClient used in unit tests.
type fakeIdentity struct {
	users []aws.User
	keys  map[string][]aws.AccessKey
	tags  map[string]map[string]string

	listUsersErr  error
	listKeysErr   error
	getTagsErr    error
	deactivateErr error

	getTagsCalls    int
	deactivateCalls int
	deactivated     []string
}

func (f *fakeIdentity) GetCallerIdentity(ctx context.Context) (string, error) {
	return "123456789012", nil
}

func (f *fakeIdentity) ListUsers(ctx context.Context) ([]aws.User, error) {
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.users, nil
}

func (f *fakeIdentity) GetUserTags(ctx context.Context, userName string) (map[string]string, error) {
	f.getTagsCalls++
	if f.getTagsErr != nil {
		return nil, f.getTagsErr
	}
	return f.tags[userName], nil
}

func (f *fakeIdentity) ListAccessKeys(ctx context.Context, userName string) ([]aws.AccessKey, error) {
	if f.listKeysErr != nil {
		return nil, f.listKeysErr
	}
	return f.keys[userName], nil
}

func (f *fakeIdentity) DeactivateAccessKey(ctx context.Context, userName, keyID string) error {
	f.deactivateCalls++
	if f.deactivateErr != nil {
		return f.deactivateErr
	}
	f.deactivated = append(f.deactivated, keyID)
	return nil
}

// sentMail captures the arguments of one SendEmail call.
type sentMail struct {
	source    string
	recipient string
	subject   string
	body      string
}

// mailRecorder records outgoing mail instead of sending it.
type mailRecorder struct {
	sends []sentMail
	err   error
}

func (m *mailRecorder) SendEmail(ctx context.Context, source, recipient, subject, body string) error {
	m.sends = append(m.sends, sentMail{source, recipient, subject, body})
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
