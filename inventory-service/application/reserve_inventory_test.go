package application

import (
	"context"
	"testing"

	"github.com/draftea/order-saga/inventory-service/domain"
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

var orderLines = []saga.OrderProduct{
	{Product: saga.Product{Code: "COMIC_BOOKS", UnitValue: 10.0}, Quantity: 2},
	{Product: saga.Product{Code: "BOOKS", UnitValue: 5.0}, Quantity: 1},
}

func inventoryEnvelope(status saga.Status) *saga.Envelope {
	env := saga.NewEnvelope(saga.Order{ID: "O1", TransactionID: "T1", Products: orderLines, TotalAmount: 25, TotalItems: 3})
	env.Source = saga.SourceOrchestrator
	env.Status = status
	env.AddHistory(saga.SourceOrchestrator, status, "routed")
	return env
}

func newInventoryExecutor(t *testing.T) (*saga.Executor, *mocks.MockInventoryRepository, *sharedmocks.MockPublisher) {
	repo := mocks.NewMockInventoryRepository(t)
	publisher := sharedmocks.NewMockPublisher(t)
	return saga.NewExecutor(NewInventoryParticipant(repo, zap.NewNop()), publisher, zap.NewNop()), repo, publisher
}

func expectResult(t *testing.T, publisher *sharedmocks.MockPublisher) **saga.Envelope {
	var published *saga.Envelope
	publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Topic == events.TopicOrchestrator
	})).RunAndReturn(func(ctx context.Context, evts ...*events.Event) error {
		decoded, err := saga.EnvelopeFromEvent(evts[0])
		require.NoError(t, err)
		published = decoded
		return nil
	}).Once()
	return &published
}

func TestInventoryParticipant_Forward(t *testing.T) {
	tests := []struct {
		name            string
		reserveErr      error
		expectedStatus  saga.Status
		expectedMessage string
	}{
		{
			name:            "stock reserved",
			expectedStatus:  saga.StatusSuccess,
			expectedMessage: "Inventory succeeded",
		},
		{
			name:            "out of stock",
			reserveErr:      saga.ErrInvariantViolation("Product BOOKS is out of stock!"),
			expectedStatus:  saga.StatusFail,
			expectedMessage: "Fail to execute inventory: Product BOOKS is out of stock!",
		},
		{
			name:            "concurrent duplicate",
			reserveErr:      saga.ErrDuplicateTransaction("There's another transactionId for this validation"),
			expectedStatus:  saga.StatusFail,
			expectedMessage: "Fail to execute inventory: There's another transactionId for this validation",
		},
		{
			name:            "store failure",
			reserveErr:      errors.New("deadlock detected"),
			expectedStatus:  saga.StatusFail,
			expectedMessage: "Fail to execute inventory: failed to reserve inventory: deadlock detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor, repo, publisher := newInventoryExecutor(t)
			published := expectResult(t, publisher)

			repo.EXPECT().ExistsByOrderIDAndTransactionID(mock.Anything, "O1", "T1").Return(false, nil).Once()
			var rows []*domain.OrderInventory
			if tt.reserveErr == nil {
				rows = []*domain.OrderInventory{{OrderID: "O1", TransactionID: "T1", ProductCode: "COMIC_BOOKS"}}
			}
			repo.EXPECT().Reserve(mock.Anything, "O1", "T1", orderLines).Return(rows, tt.reserveErr).Once()

			require.NoError(t, executor.Process(context.Background(), inventoryEnvelope(saga.StatusSuccess)))

			result := *published
			require.NotNil(t, result)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, saga.SourceInventory, result.Source)
			last, _ := result.LastHistory()
			assert.Equal(t, tt.expectedMessage, last.Message)
			assert.Equal(t, 25.0, result.Payload.TotalAmount)
		})
	}
}

func TestInventoryParticipant_ForwardDuplicate(t *testing.T) {
	executor, repo, publisher := newInventoryExecutor(t)
	published := expectResult(t, publisher)

	repo.EXPECT().ExistsByOrderIDAndTransactionID(mock.Anything, "O1", "T1").Return(true, nil).Once()

	require.NoError(t, executor.Process(context.Background(), inventoryEnvelope(saga.StatusSuccess)))
	assert.Equal(t, saga.StatusFail, (*published).Status)
	repo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryParticipant_Compensation(t *testing.T) {
	tests := []struct {
		name            string
		released        int
		expectedMessage string
	}{
		{name: "releases reserved stock", released: 2, expectedMessage: "Rollback executed on inventory"},
		{name: "nothing reserved", released: 0, expectedMessage: "Rollback skipped on inventory: nothing to compensate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor, repo, publisher := newInventoryExecutor(t)
			published := expectResult(t, publisher)

			repo.EXPECT().Release(mock.Anything, "O1", "T1").Return(tt.released, nil).Once()

			require.NoError(t, executor.Process(context.Background(), inventoryEnvelope(saga.StatusRollbackPending)))

			result := *published
			assert.Equal(t, saga.StatusRollback, result.Status)
			last, _ := result.LastHistory()
			assert.Equal(t, tt.expectedMessage, last.Message)
		})
	}
}

func TestInventoryParticipant_CompensationStoreErrorIsRedelivered(t *testing.T) {
	executor, repo, _ := newInventoryExecutor(t)
	repo.EXPECT().Release(mock.Anything, "O1", "T1").Return(0, errors.New("connection reset")).Once()

	err := executor.Process(context.Background(), inventoryEnvelope(saga.StatusRollbackPending))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to release inventory")
}
