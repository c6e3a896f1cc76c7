package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/dvdk01/urlwatch/internal/schema"
)

// publishAPI is the slice of the SNS client we use, kept as an interface so
// tests can fake delivery.
type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier sends SMS alerts through AWS Simple Notification Service to a
// single phone number. Credentials come from the named shared-config profile.
type SNSNotifier struct {
	client publishAPI
	phone  string
}

type SNSConfig struct {
	Profile string
	Phone   string
}

func NewSNS(ctx context.Context, cfg SNSConfig) (*SNSNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithSharedConfigProfile(cfg.Profile),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS profile %q: %w", cfg.Profile, err)
	}

	return &SNSNotifier{
		client: sns.NewFromConfig(awsCfg),
		phone:  cfg.Phone,
	}, nil
}

func (n *SNSNotifier) Send(ctx context.Context, ev schema.Event) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.phone),
		Message:     aws.String(Message(ev)),
	})
	if err != nil {
		return fmt.Errorf("publishing to SNS: %w", err)
	}
	return nil
}

// Announce publishes a free-form message. Used at startup so a delivery
// failure surfaces before monitoring begins; it doubles as the credential
// check.
func (n *SNSNotifier) Announce(ctx context.Context, msg string) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.phone),
		Message:     aws.String(msg),
	})
	if err != nil {
		return fmt.Errorf("publishing to SNS: %w", err)
	}
	return nil
}

// Message renders the short SMS body for an event.
func Message(ev schema.Event) string {
	return fmt.Sprintf("urlwatch %s: %s", ev.Kind, ev.Detail)
}
