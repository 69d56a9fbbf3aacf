// keyage-enforcer scans an AWS account's IAM users and enforces the access
// key age policy: owners of aging keys are reminded to rotate, and keys past
// the grace window are disabled.
//
// This binary is designed to run as a scheduled Lambda function.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/credwatch/keyage-enforcer-aws/internal/aws"
	"github.com/credwatch/keyage-enforcer-aws/internal/config"
	"github.com/credwatch/keyage-enforcer-aws/internal/enforcer"
	"github.com/credwatch/keyage-enforcer-aws/internal/telemetry"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	telemetry.SetupLogger(os.Getenv("LOGFORMAT"), os.Getenv("LOGLEVEL"))

	// RUN_LOCAL=true runs a single enforcement pass outside the Lambda runtime.
	if os.Getenv("RUN_LOCAL") == "true" {
		if err := handler(context.Background()); err != nil {
			slog.Error("enforcement run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	lambda.Start(handler)
}

// handler performs one enforcement pass. Errors surface to the Lambda
// runtime so the scheduler marks the invocation as failed.
func handler(ctx context.Context) error {
	logger := slog.Default().With("version", Version)
	env := config.Load(logger)

	identity, err := newIdentityClient(ctx, env)
	if err != nil {
		return err
	}

	accountID, err := identity.GetCallerIdentity(ctx)
	if err != nil {
		return err
	}
	logger.Info("connected to account", "account_id", accountID)

	mailer, err := aws.NewMailer(ctx, env.MailRegion)
	if err != nil {
		return err
	}

	e := enforcer.New(enforcer.Config{
		NotifyKeyAgeDays: env.NotifyKeyAgeDays,
		SourceMail:       env.SourceMail,
		Logger:           logger,
	}, identity, mailer)

	return e.Run(ctx)
}

// newIdentityClient builds the IAM client, assuming a role when configured.
func newIdentityClient(ctx context.Context, env config.Env) (*aws.AWSClient, error) {
	if env.RoleARN != "" {
		return aws.NewClientWithRole(ctx, env.RoleARN, env.ExternalID)
	}
	return aws.NewClient(ctx)
}
