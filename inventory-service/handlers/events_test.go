package handlers

import (
	"context"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/draftea/order-saga/inventory-service/application"
	"github.com/draftea/order-saga/inventory-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	sharedmocks "github.com/draftea/order-saga/shared/mocks"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInventoryEventHandlers_Handle(t *testing.T) {
	repo := mocks.NewMockInventoryRepository(t)
	publisher := sharedmocks.NewMockPublisher(t)
	h := NewInventoryEventHandlers(application.NewInventoryParticipant(repo, zap.NewNop()), publisher, zap.NewNop(),
		saga.WithPublishBackOff(func() backoff.BackOff { return &backoff.StopBackOff{} }),
	)

	env := saga.NewEnvelope(saga.Order{ID: "O1", TransactionID: "T1"})
	env.Source = saga.SourceOrchestrator
	env.Status = saga.StatusRollbackPending
	evt, err := env.ToEvent(events.TopicInventory)
	require.NoError(t, err)

	t.Run("publish failure is redelivered", func(t *testing.T) {
		repo.EXPECT().Release(mock.Anything, "O1", "T1").Return(1, nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		assert.Error(t, h.Handle(context.Background(), evt))
	})

	t.Run("redelivery republishes without releasing again", func(t *testing.T) {
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			return evt.Topic == events.TopicOrchestrator
		})).Return(nil).Once()

		require.NoError(t, h.Handle(context.Background(), evt))
		repo.AssertNumberOfCalls(t, "Release", 1)
	})

	t.Run("other topics are ignored", func(t *testing.T) {
		other := *evt
		other.Topic = events.TopicPayment
		assert.NoError(t, h.Handle(context.Background(), &other))
	})

	assert.Equal(t, []events.Topic{events.TopicInventory}, h.Topics())
	assert.Equal(t, "inventory-service-event-handler", h.HandlerID())
}
