package saga

import (
	"testing"

	"github.com/draftea/order-saga/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() Order {
	return Order{
		ID:            "O1",
		TransactionID: "T1",
		Products: []OrderProduct{
			{Product: Product{Code: "COMIC_BOOKS", UnitValue: 10.0}, Quantity: 2},
			{Product: Product{Code: "BOOKS", UnitValue: 5.0}, Quantity: 1},
		},
	}
}

func TestOrder_CalculateTotals(t *testing.T) {
	amount, items := testOrder().CalculateTotals()
	assert.Equal(t, 25.0, amount)
	assert.Equal(t, 3, items)

	amount, items = Order{}.CalculateTotals()
	assert.Zero(t, amount)
	assert.Zero(t, items)
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope(testOrder())

	assert.NotEmpty(t, env.ID)
	assert.Equal(t, "O1", env.OrderID)
	assert.Equal(t, "T1", env.TransactionID)
	assert.Equal(t, StatusPending, env.Status)
	assert.Empty(t, env.Source)
	assert.Empty(t, env.History)
	assert.NoError(t, env.Validate())
}

func TestEnvelope_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Envelope)
	}{
		{name: "missing transaction id", mutate: func(e *Envelope) { e.TransactionID = "" }},
		{name: "missing order id", mutate: func(e *Envelope) { e.OrderID = "" }},
		{name: "unknown status", mutate: func(e *Envelope) { e.Status = "DONE" }},
		{name: "unknown source", mutate: func(e *Envelope) { e.Source = "SHIPPING" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvelope(testOrder())
			tt.mutate(env)
			err := env.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrKindInvalid)
		})
	}
}

func TestEnvelope_AddHistoryIsAppendOnly(t *testing.T) {
	env := NewEnvelope(testOrder())

	env.AddHistory(SourceOrchestrator, StatusSuccess, "Saga started")
	first := env.History[0]

	env.AddHistory(SourceProductValidation, StatusSuccess, "Product validation succeeded")
	env.AddHistory(SourcePayment, StatusFail, "Fail to execute payment: boom")

	require.Len(t, env.History, 3)
	assert.Equal(t, first, env.History[0])
	assert.False(t, env.History[2].CreatedAt.Before(env.History[1].CreatedAt))

	last, ok := env.LastHistory()
	require.True(t, ok)
	assert.Equal(t, SourcePayment, last.Source)
	assert.Equal(t, StatusFail, last.Status)
}

func TestEnvelope_Clone(t *testing.T) {
	env := NewEnvelope(testOrder())
	env.AddHistory(SourceOrchestrator, StatusSuccess, "Saga started")

	clone := env.Clone()
	clone.AddHistory(SourceProductValidation, StatusSuccess, "Product validation succeeded")
	clone.Payload.Products[0].Quantity = 99
	clone.Status = StatusFail

	assert.Len(t, env.History, 1)
	assert.Equal(t, 2, env.Payload.Products[0].Quantity)
	assert.Equal(t, StatusPending, env.Status)
}

func TestEnvelope_EventRoundTrip(t *testing.T) {
	env := NewEnvelope(testOrder())
	env.Source = SourcePayment
	env.Status = StatusSuccess
	env.AddHistory(SourcePayment, StatusSuccess, "Payment succeeded")

	evt, err := env.ToEvent(events.TopicOrchestrator)
	require.NoError(t, err)

	assert.Equal(t, events.TopicOrchestrator, evt.Topic)
	assert.Equal(t, "O1", evt.AggregateID.String())
	assert.Equal(t, "T1", evt.CorrelationID.String())
	status, _ := evt.Metadata.Get("status")
	assert.Equal(t, "SUCCESS", status)

	decoded, err := EnvelopeFromEvent(evt)
	require.NoError(t, err)
	assert.Equal(t, env.TransactionID, decoded.TransactionID)
	assert.Equal(t, env.Source, decoded.Source)
	assert.Len(t, decoded.History, 1)
	assert.Equal(t, env.Payload.Products, decoded.Payload.Products)
}

func TestEnvelopeFromEvent_Malformed(t *testing.T) {
	evt, err := events.NewEvent("O1", events.TopicPayment, map[string]string{"orderId": "O1"})
	require.NoError(t, err)

	_, err = EnvelopeFromEvent(evt)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKindInvalid)

	evt.Payload = []byte("{not json")
	_, err = EnvelopeFromEvent(evt)
	assert.ErrorIs(t, err, ErrKindInvalid)
}

func TestEnvelope_JSONFieldNames(t *testing.T) {
	env := NewEnvelope(testOrder())
	env.AddHistory(SourceOrchestrator, StatusSuccess, "Saga started")

	data, err := MarshalEnvelope(env)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"transactionId":"T1"`)
	assert.Contains(t, string(data), `"orderId":"O1"`)
	assert.Contains(t, string(data), `"eventHistory":[`)
	assert.Contains(t, string(data), `"unitValue":10`)
}
