// Package aws provides AWS API client functionality.
package aws

import "time"

// User represents an IAM user with its profile tags.
type User struct {
	UserName string
	Tags     map[string]string
}

// Tag returns the value of the named tag and whether it is present.
func (u User) Tag(key string) (string, bool) {
	v, ok := u.Tags[key]
	return v, ok
}

// AccessKeyStatus is the activation state of an access key.
type AccessKeyStatus string

// Access key states as reported by IAM.
const (
	AccessKeyActive   AccessKeyStatus = "Active"
	AccessKeyInactive AccessKeyStatus = "Inactive"
)

// AccessKey represents a single long-lived access key pair.
type AccessKey struct {
	ID         string
	UserName   string
	Status     AccessKeyStatus
	CreateDate time.Time
}

// IsActive returns true if the key is currently usable.
func (k AccessKey) IsActive() bool {
	return k.Status == AccessKeyActive
}
