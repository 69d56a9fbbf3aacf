package enforcer

import (
	"context"

	"github.com/credwatch/keyage-enforcer-aws/internal/aws"
)

// KeyRecord pairs an access key with its resolved notification contact.
// Records are rebuilt from the identity provider on every run.
type KeyRecord struct {
	Key          aws.AccessKey
	ContactEmail string
}

// buildInventory lists every user's access keys and attaches the contact
// address resolved from the user's tags. Users without keys are omitted
// entirely and their contact is never resolved.
func (e *Enforcer) buildInventory(ctx context.Context) ([]KeyRecord, error) {
	users, err := e.identity.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var inventory []KeyRecord
	for _, user := range users {
		keys, err := e.identity.ListAccessKeys(ctx, user.UserName)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			continue
		}

		contact, err := e.resolveContact(ctx, user.UserName)
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			if key.UserName == "" {
				key.UserName = user.UserName
			}
			inventory = append(inventory, KeyRecord{Key: key, ContactEmail: contact})
		}
	}

	return inventory, nil
}

// resolveContact fetches the user's detail record and reads the Contact tag.
// A missing tag is logged and yields an empty contact, never an error. The
// tag value is not validated here; only the sender address is (see Notifier).
func (e *Enforcer) resolveContact(ctx context.Context, userName string) (string, error) {
	tags, err := e.identity.GetUserTags(ctx, userName)
	if err != nil {
		return "", err
	}

	contact, ok := tags[ContactTagKey]
	if !ok {
		e.logger.Warn("contact details for user not provided", "user", userName)
		return "", nil
	}
	return contact, nil
}
