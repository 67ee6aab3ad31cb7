package application

import (
	"context"
	"testing"
	"time"

	"github.com/draftea/order-saga/order-service/mocks"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func finishedEnvelope(orderID, transactionID string) *saga.Envelope {
	env := saga.NewEnvelope(saga.Order{ID: orderID, TransactionID: transactionID, Products: testProducts()})
	env.Source = saga.SourceInventory
	env.Status = saga.StatusSuccess
	env.AddHistory(saga.SourceOrchestrator, saga.StatusSuccess, "Saga finished successfully")
	return env
}

func TestGetEvents_FindByFilters(t *testing.T) {
	tests := []struct {
		name          string
		filters       EventFilters
		setupMocks    func(*mocks.MockSagaEventRepository)
		expectedOrder string
		expectedKind  error
	}{
		{
			name:    "by order id",
			filters: EventFilters{OrderID: "O1"},
			setupMocks: func(repo *mocks.MockSagaEventRepository) {
				repo.EXPECT().FindLatestByOrderID(mock.Anything, "O1").Return(finishedEnvelope("O1", "T1"), nil).Once()
			},
			expectedOrder: "O1",
		},
		{
			name:    "by transaction id",
			filters: EventFilters{TransactionID: "T2"},
			setupMocks: func(repo *mocks.MockSagaEventRepository) {
				repo.EXPECT().FindLatestByTransactionID(mock.Anything, "T2").Return(finishedEnvelope("O2", "T2"), nil).Once()
			},
			expectedOrder: "O2",
		},
		{
			name:    "order id wins when both are informed",
			filters: EventFilters{OrderID: "O1", TransactionID: "T2"},
			setupMocks: func(repo *mocks.MockSagaEventRepository) {
				repo.EXPECT().FindLatestByOrderID(mock.Anything, "O1").Return(finishedEnvelope("O1", "T1"), nil).Once()
			},
			expectedOrder: "O1",
		},
		{
			name:         "no filters",
			filters:      EventFilters{},
			setupMocks:   func(repo *mocks.MockSagaEventRepository) {},
			expectedKind: saga.ErrKindInvalid,
		},
		{
			name:    "no match",
			filters: EventFilters{OrderID: "O9"},
			setupMocks: func(repo *mocks.MockSagaEventRepository) {
				repo.EXPECT().FindLatestByOrderID(mock.Anything, "O9").Return(nil, saga.ErrNotFound("no saga found")).Once()
			},
			expectedKind: saga.ErrKindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockSagaEventRepository(t)
			tt.setupMocks(repo)

			env, err := NewGetEvents(repo).FindByFilters(context.Background(), tt.filters)

			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.Nil(t, env)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOrder, env.OrderID)
		})
	}
}

func TestGetEvents_FindByFiltersMessage(t *testing.T) {
	repo := mocks.NewMockSagaEventRepository(t)

	_, err := NewGetEvents(repo).FindByFilters(context.Background(), EventFilters{})
	require.Error(t, err)
	assert.Equal(t, "OrderID or TransactionID must be informed.", err.Error())
}

func TestGetEvents_FindAll(t *testing.T) {
	repo := mocks.NewMockSagaEventRepository(t)
	stored := []*saga.Envelope{finishedEnvelope("O2", "T2"), finishedEnvelope("O1", "T1")}
	repo.EXPECT().FindAll(mock.Anything).Return(stored, nil).Once()

	result, err := NewGetEvents(repo).FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, result)
}

func TestNotifyEnding_Execute(t *testing.T) {
	notifiedAt := time.Date(2024, 3, 10, 12, 5, 0, 0, time.UTC)

	tests := []struct {
		name          string
		saveErr       error
		expectedError string
	}{
		{name: "stores the final envelope"},
		{name: "already notified is acknowledged", saveErr: saga.ErrDuplicateTransaction("saga T1 already stored")},
		{name: "repository error", saveErr: errors.New("database error"), expectedError: "failed to save saga event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockSagaEventRepository(t)
			repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(env *saga.Envelope) bool {
				return env.TransactionID == "T1" && env.CreatedAt.Equal(notifiedAt)
			})).Return(tt.saveErr).Once()

			useCase := NewNotifyEnding(repo, zap.NewNop())
			useCase.now = func() time.Time { return notifiedAt }

			err := useCase.Execute(context.Background(), finishedEnvelope("O1", "T1"))
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
