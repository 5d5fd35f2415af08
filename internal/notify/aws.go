package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
)

// AWSConfig holds the shared AWS settings for the SNS and SQS sinks. Empty
// keys fall back to the SDK's default credential chain.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

func loadAWSConfig(ctx context.Context, cfg AWSConfig) (aws.Config, error) {
	var opts []func(*awscfg.LoadOptions) error
	if r := strings.TrimSpace(cfg.Region); r != "" {
		opts = append(opts, awscfg.WithRegion(r))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		opts = append(opts, awscfg.WithCredentialsProvider(creds))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// snsClient defines the minimal subset of the SNS client used by SNS.
type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes the digest text to an SNS topic.
type SNS struct {
	topicARN string
	subject  string
	client   snsClient
}

// NewSNS builds an SNS sink for topicARN.
func NewSNS(ctx context.Context, topicARN string, cfg AWSConfig) (*SNS, error) {
	if strings.TrimSpace(topicARN) == "" {
		return nil, errors.New("sns topic arn is empty")
	}
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &SNS{topicARN: strings.TrimSpace(topicARN), subject: "Daily Developer Jobs", client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *SNS) Name() string { return "sns" }

func (s *SNS) Send(ctx context.Context, text string) error {
	resp, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(s.subject),
		Message:  aws.String(text),
	})
	if err != nil {
		return fmt.Errorf("send message to sns: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("message_id", aws.ToString(resp.MessageId)).Msg("sns delivered digest")
	return nil
}

// sqsClient defines the minimal subset of the SQS client used by SQS.
type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQS enqueues the digest text on an SQS queue.
type SQS struct {
	queueURL string
	client   sqsClient
}

// NewSQS builds an SQS sink for queueURL.
func NewSQS(ctx context.Context, queueURL string, cfg AWSConfig) (*SQS, error) {
	if strings.TrimSpace(queueURL) == "" {
		return nil, errors.New("sqs queue url is empty")
	}
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &SQS{queueURL: strings.TrimSpace(queueURL), client: sqs.NewFromConfig(awsCfg)}, nil
}

func (s *SQS) Name() string { return "sqs" }

func (s *SQS) Send(ctx context.Context, text string) error {
	resp, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(text),
	})
	if err != nil {
		return fmt.Errorf("send message to sqs: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("message_id", aws.ToString(resp.MessageId)).Msg("sqs delivered digest")
	return nil
}
