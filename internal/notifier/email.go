package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"tailorshop/internal/config"
	"tailorshop/internal/metrics"
)

// Mailer sends account emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends email through Amazon SES.
type SESMailer struct {
	client   sesAPI
	sender   string
	shopName string
}

// NewSESMailer builds an SES client. Static keys are used when present,
// otherwise the default AWS credential chain.
func NewSESMailer(ctx context.Context, cfg config.SESConfig, shopName string) (*SESMailer, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(awsCfg), sender: cfg.SenderEmail, shopName: shopName}, nil
}

func (m *SESMailer) SendVerification(ctx context.Context, to, name, link string) error {
	if to == "" {
		return fmt.Errorf("recipient email address is empty")
	}
	subject := fmt.Sprintf("Verify your email - %s", m.shopName)
	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Please confirm your email address to start booking appointments.</p>
            <p><a href="%s">Verify my email</a></p>
            <p>This link expires in 24 hours.</p>
            <p>%s</p>
        </body>
        </html>`, name, link, m.shopName)
	bodyText := fmt.Sprintf(
		"Dear %s,\n\nPlease confirm your email address to start booking appointments:\n%s\n\n"+
			"This link expires in 24 hours.\n\n%s", name, link, m.shopName)

	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(bodyHTML)},
				Text: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(bodyText)},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		metrics.NotificationsSent.WithLabelValues("email", "failed").Inc()
		return fmt.Errorf("send verification email: %w", err)
	}
	metrics.NotificationsSent.WithLabelValues("email", "sent").Inc()
	slog.InfoContext(ctx, "verification email sent", "to", to)
	return nil
}

// LogMailer logs the verification link instead of mailing it.
type LogMailer struct{}

func (LogMailer) SendVerification(ctx context.Context, to, _ string, link string) error {
	metrics.NotificationsSent.WithLabelValues("email", "logged").Inc()
	slog.InfoContext(ctx, "verification email not sent (SES disabled)", "to", to, "link", link)
	return nil
}

// NewMailer returns an SES mailer when a sender is configured and a
// LogMailer otherwise.
func NewMailer(ctx context.Context, cfg config.SESConfig, shopName string) (Mailer, error) {
	if !cfg.Enabled() {
		return LogMailer{}, nil
	}
	return NewSESMailer(ctx, cfg, shopName)
}
