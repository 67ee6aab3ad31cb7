package infrastructure

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/draftea/order-saga/shared/config"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ events.Subscriber = (*SQSSubscriberAdapter)(nil)

// SQSSubscriberAdapter implements events.Subscriber over one SQS queue per
// saga topic. Each queue is subscribed to the SNS topic of the same name.
type SQSSubscriberAdapter struct {
	client         sqsAPI
	queueURLPrefix string
	fifo           bool
	logger         *zap.Logger
	opts           []SQSSubscriberOption
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(ctx context.Context, cfg config.AWS, logger *zap.Logger, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqsClient := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.EndpointSQS != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointSQS)
		}
	})

	return &SQSSubscriberAdapter{
		client:         sqsClient,
		queueURLPrefix: cfg.SQSQueueURLPrefix,
		fifo:           cfg.FIFO,
		logger:         logger,
		opts:           opts,
	}, nil
}

// QueueURL returns the queue consumed for topic
func (s *SQSSubscriberAdapter) QueueURL(topic events.Topic) string {
	url := s.queueURLPrefix + topic.String()
	if s.fifo && !strings.HasSuffix(url, fifoSuffix) {
		url += fifoSuffix
	}
	return url
}

// Subscribe starts one pool per topic queue and blocks until ctx is done
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, handler events.EventHandler, topics ...events.Topic) error {
	if len(topics) == 0 {
		return events.ErrInvalidTopic
	}

	subscribers := make([]*SQSEventSubscriber, 0, len(topics))
	for _, topic := range topics {
		subscriber := NewSQSEventSubscriber(s.client, s.QueueURL(topic), handler, s.logger, s.opts...)
		if err := subscriber.Start(ctx); err != nil {
			return errors.Wrapf(err, "failed to start SQS subscriber for %s", topic)
		}
		subscribers = append(subscribers, subscriber)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, subscriber := range subscribers {
		if err := subscriber.Stop(stopCtx); err != nil {
			return errors.Wrap(err, "failed to stop SQS subscriber")
		}
	}
	return nil
}

// Close is a no-op; Subscribe stops its pools when its context ends
func (s *SQSSubscriberAdapter) Close() error {
	return nil
}
