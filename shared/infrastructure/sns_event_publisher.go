package infrastructure

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

const (
	maxBatchSize = 10
	fifoSuffix   = ".fifo"
)

type snsAPI interface {
	PublishBatch(ctx context.Context, params *sns.PublishBatchInput, optFns ...func(*sns.Options)) (*sns.PublishBatchOutput, error)
}

// SNSEventPublisher publishes saga events to one SNS topic per saga channel.
// On FIFO topics the order id is the message group, so hops of one saga stay
// ordered while different sagas fan out.
type SNSEventPublisher struct {
	client    snsAPI
	arnPrefix string
	fifo      bool
}

// NewSNSEventPublisher creates a publisher resolving topic ARNs as arnPrefix + topic
func NewSNSEventPublisher(client snsAPI, arnPrefix string, fifo bool) *SNSEventPublisher {
	return &SNSEventPublisher{
		client:    client,
		arnPrefix: arnPrefix,
		fifo:      fifo,
	}
}

// TopicArn returns the ARN events of topic are published to
func (p *SNSEventPublisher) TopicArn(topic events.Topic) string {
	arn := p.arnPrefix + topic.String()
	if p.fifo && !strings.HasSuffix(arn, fifoSuffix) {
		arn += fifoSuffix
	}
	return arn
}

// Publish publishes events to SNS, batching per topic
func (p *SNSEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	byTopic := make(map[events.Topic][]*events.Event)
	for _, event := range evts {
		byTopic[event.Topic] = append(byTopic[event.Topic], event)
	}

	gr, ctx := errgroup.WithContext(ctx)

	for topic, topicEvents := range byTopic {
		topicArn := p.TopicArn(topic)
		for _, eventBatch := range splitToChunks(topicEvents, maxBatchSize) {
			eventBatch := eventBatch
			gr.Go(func() error {
				return p.batchPublish(ctx, topicArn, eventBatch)
			})
		}
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) batchPublish(ctx context.Context, topicArn string, events []*events.Event) error {
	requests := make([]types.PublishBatchRequestEntry, len(events))

	for i, event := range events {
		msgJson, err := event.ToJSON()
		if err != nil {
			return errors.Wrap(err, "failed to marshal message")
		}

		attrs := map[string]types.MessageAttributeValue{
			"topic": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Topic)),
			},
		}

		for k, v := range event.Metadata {
			if k == SQSMessageIDKey || k == SQSReceiptHandleKey || v == "" {
				continue
			}

			attrs[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}

		entry := types.PublishBatchRequestEntry{
			Id:                aws.String(event.ID.String()),
			Message:           aws.String(string(msgJson)),
			MessageAttributes: attrs,
		}
		if p.fifo {
			entry.MessageGroupId = aws.String(event.AggregateID.String())
			entry.MessageDeduplicationId = aws.String(event.ID.String())
		}

		requests[i] = entry
	}

	res, err := p.client.PublishBatch(
		ctx,
		&sns.PublishBatchInput{
			TopicArn:                   aws.String(topicArn),
			PublishBatchRequestEntries: requests,
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to publish batch to SNS")
	}

	if len(res.Failed) > 0 {
		failed := make([]string, 0, len(res.Failed))
		for _, entry := range res.Failed {
			failed = append(failed, aws.ToString(entry.Id)+": "+aws.ToString(entry.Message))
		}
		return errors.Errorf("failed to publish %d of %d events to %s: %s",
			len(res.Failed), len(events), topicArn, strings.Join(failed, "; "))
	}

	return nil
}

// splitToChunks splits slice into chunks of specified size
func splitToChunks[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := i + chunkSize
		if end > len(slice) {
			end = len(slice)
		}
		chunks = append(chunks, slice[i:end])
	}
	return chunks
}
