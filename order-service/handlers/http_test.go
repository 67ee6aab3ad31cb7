package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/order-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	sharedmocks "github.com/draftea/order-saga/shared/mocks"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testDeps struct {
	orders    *mocks.MockOrderRepository
	sagas     *mocks.MockSagaEventRepository
	publisher *sharedmocks.MockPublisher
	router    *chi.Mux
}

func newTestDeps(t *testing.T) *testDeps {
	d := &testDeps{
		orders:    mocks.NewMockOrderRepository(t),
		sagas:     mocks.NewMockSagaEventRepository(t),
		publisher: sharedmocks.NewMockPublisher(t),
		router:    chi.NewRouter(),
	}
	NewOrderHandlers(
		application.NewCreateOrder(d.orders, d.publisher, zap.NewNop()),
		application.NewGetOrder(d.orders),
		application.NewGetEvents(d.sagas),
	).RegisterRoutes(d.router)
	return d
}

func (d *testDeps) do(method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestOrderHandlers_CreateOrder(t *testing.T) {
	d := newTestDeps(t)
	d.orders.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	d.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	rec := d.do(http.MethodPost, "/api/order",
		`{"products":[{"product":{"code":"COMIC_BOOKS","unitValue":10},"quantity":2}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body application.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body.ID)
	assert.NotEmpty(t, body.TransactionID)
}

func TestOrderHandlers_CreateOrderValidation(t *testing.T) {
	d := newTestDeps(t)

	assert.Equal(t, http.StatusBadRequest, d.do(http.MethodPost, "/api/order", `{"products":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, d.do(http.MethodPost, "/api/order", `not json`).Code)
}

func TestOrderHandlers_FindEventByFilters(t *testing.T) {
	d := newTestDeps(t)

	env := saga.NewEnvelope(saga.Order{ID: "O1", TransactionID: "T1"})
	env.Source = saga.SourceInventory
	env.Status = saga.StatusSuccess
	d.sagas.EXPECT().FindLatestByTransactionID(mock.Anything, "T1").Return(env, nil).Once()
	d.sagas.EXPECT().FindLatestByOrderID(mock.Anything, "O9").Return(nil, saga.ErrNotFound("no saga found")).Once()

	rec := d.do(http.MethodGet, "/api/event/filters?transactionId=T1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "O1", body["orderId"])
	assert.Equal(t, "SUCCESS", body["status"])
	assert.Contains(t, body, "eventHistory")

	assert.Equal(t, http.StatusNotFound, d.do(http.MethodGet, "/api/event/filters?orderId=O9", "").Code)
	assert.Equal(t, http.StatusBadRequest, d.do(http.MethodGet, "/api/event/filters", "").Code)
}

func TestOrderHandlers_FindAllEvents(t *testing.T) {
	d := newTestDeps(t)
	d.sagas.EXPECT().FindAll(mock.Anything).Return(nil, nil).Once()

	rec := d.do(http.MethodGet, "/api/event", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOrderEventHandlers_Handle(t *testing.T) {
	sagas := mocks.NewMockSagaEventRepository(t)
	h := NewOrderEventHandlers(application.NewNotifyEnding(sagas, zap.NewNop()), zap.NewNop())

	env := saga.NewEnvelope(saga.Order{ID: "O1", TransactionID: "T1"})
	env.Source = saga.SourceProductValidation
	env.Status = saga.StatusRollback
	evt, err := env.ToEvent(events.TopicNotifyEnding)
	require.NoError(t, err)

	sagas.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *saga.Envelope) bool {
		return e.TransactionID == "T1" && e.Status == saga.StatusRollback
	})).Return(nil).Once()

	require.NoError(t, h.Handle(context.Background(), evt))

	// other topics are ignored
	other, err := env.ToEvent(events.TopicPayment)
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), other))
}
