package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// IdentityClient provides access to the IAM identity store.
type IdentityClient interface {
	// GetCallerIdentity returns the account ID of the current credentials.
	GetCallerIdentity(ctx context.Context) (string, error)

	// ListUsers returns every IAM user in the account, following pagination.
	ListUsers(ctx context.Context) ([]User, error)

	// GetUserTags returns the tags attached to the user's profile.
	GetUserTags(ctx context.Context, userName string) (map[string]string, error)

	// ListAccessKeys returns all access keys belonging to the user.
	ListAccessKeys(ctx context.Context, userName string) ([]AccessKey, error)

	// DeactivateAccessKey sets the key's status to Inactive.
	DeactivateAccessKey(ctx context.Context, userName, keyID string) error
}

// MailSender sends a single-recipient plaintext email.
type MailSender interface {
	SendEmail(ctx context.Context, source, recipient, subject, body string) error
}

// AWSClient implements the IdentityClient interface using AWS SDK v2.
type AWSClient struct {
	cfg aws.Config
}

// NewClient creates a new AWS client using the default credential chain.
func NewClient(ctx context.Context) (*AWSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &AWSClient{cfg: cfg}, nil
}

// NewClientWithRole creates a new AWS client that assumes the specified role.
func NewClientWithRole(ctx context.Context, roleARN, externalID string) (*AWSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	stsClient := sts.NewFromConfig(cfg)
	creds := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		if externalID != "" {
			o.ExternalID = &externalID
		}
		o.Duration = 1 * time.Hour
	})

	cfg.Credentials = aws.NewCredentialsCache(creds)

	return &AWSClient{cfg: cfg}, nil
}

// GetCallerIdentity returns the account ID of the current credentials.
func (c *AWSClient) GetCallerIdentity(ctx context.Context) (string, error) {
	stsClient := sts.NewFromConfig(c.cfg)
	output, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting caller identity: %w", err)
	}
	return *output.Account, nil
}

// ListUsers returns every IAM user in the account, following pagination
// until the provider reports no further pages.
func (c *AWSClient) ListUsers(ctx context.Context) ([]User, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListUsersPaginator(iamClient, &iam.ListUsersInput{})

	var users []User
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}

		for _, u := range output.Users {
			users = append(users, User{
				UserName: aws.ToString(u.UserName),
				Tags:     tagMap(u.Tags),
			})
		}
	}

	return users, nil
}

// GetUserTags returns the tags attached to the user's profile. ListUsers does
// not populate tags, so the detail record has to be fetched per user.
func (c *AWSClient) GetUserTags(ctx context.Context, userName string) (map[string]string, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	output, err := iamClient.GetUser(ctx, &iam.GetUserInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", userName, err)
	}
	if output.User == nil {
		return nil, nil
	}
	return tagMap(output.User.Tags), nil
}

// ListAccessKeys returns all access keys belonging to the user.
func (c *AWSClient) ListAccessKeys(ctx context.Context, userName string) ([]AccessKey, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListAccessKeysPaginator(iamClient, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})

	var keys []AccessKey
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing access keys for %s: %w", userName, err)
		}

		for _, k := range output.AccessKeyMetadata {
			key := AccessKey{
				ID:       aws.ToString(k.AccessKeyId),
				UserName: aws.ToString(k.UserName),
				Status:   AccessKeyStatus(k.Status),
			}
			if k.CreateDate != nil {
				key.CreateDate = *k.CreateDate
			}
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// DeactivateAccessKey sets the key's status to Inactive.
func (c *AWSClient) DeactivateAccessKey(ctx context.Context, userName, keyID string) error {
	iamClient := iam.NewFromConfig(c.cfg)
	_, err := iamClient.UpdateAccessKey(ctx, &iam.UpdateAccessKeyInput{
		UserName:    aws.String(userName),
		AccessKeyId: aws.String(keyID),
		Status:      iamtypes.StatusTypeInactive,
	})
	if err != nil {
		return fmt.Errorf("deactivating access key %s: %w", keyID, err)
	}
	return nil
}

// tagMap flattens IAM tag pairs into a lookup map.
func tagMap(tags []iamtypes.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return m
}

// SESMailer implements the MailSender interface using Amazon SES.
type SESMailer struct {
	client *ses.Client
}

// NewMailer creates a new SES mailer in the given region.
func NewMailer(ctx context.Context, region string) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg)}, nil
}

// SendEmail sends a single-recipient plaintext email.
func (m *SESMailer) SendEmail(ctx context.Context, source, recipient, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &sestypes.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data: aws.String(subject),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data: aws.String(body),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
