// Package notify sends plan lifecycle emails through AWS SES v2.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/osteele/liquid"

	appconfig "github.com/kitmedia/creator-planner/internal/config"
	"github.com/kitmedia/creator-planner/internal/domain"
)

// Mailer sends plan confirmation emails. It satisfies plan.Notifier.
type Mailer struct {
	client *sesv2.Client
	sender string
	engine *liquid.Engine
}

// NewMailer creates an SES v2 mailer from the notify config section.
func NewMailer(ctx context.Context, cfg appconfig.NotifyConfig) (*Mailer, error) {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKey,
		cfg.SecretKey,
		"", // session token (empty for static creds)
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Mailer{
		client: sesv2.NewFromConfig(awsCfg),
		sender: cfg.Sender,
		engine: liquid.NewEngine(),
	}, nil
}

// PlanConfirmed emails the plan owner a confirmation summary.
func (m *Mailer) PlanConfirmed(ctx context.Context, p *domain.SavedPlan) error {
	subject, html, err := renderConfirmation(m.engine, p)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	_, err = m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{p.UserEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send confirmation for plan %s: %w", p.ID, err)
	}

	log.Printf("[notify] confirmation sent to %s for plan %s", p.UserEmail, p.ID)
	return nil
}
