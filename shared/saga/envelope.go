package saga

import (
	"encoding/json"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/models"
)

// Product is a catalog item referenced by an order line
type Product struct {
	Code      string  `json:"code"`
	UnitValue float64 `json:"unitValue"`
}

// OrderProduct is one order line
type OrderProduct struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Order is the domain snapshot carried between hops
type Order struct {
	ID            string         `json:"id"`
	TransactionID string         `json:"transactionId"`
	Products      []OrderProduct `json:"products"`
	TotalAmount   float64        `json:"totalAmount"`
	TotalItems    int            `json:"totalItems"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// CalculateTotals sums quantity * unit value and the item count over all lines
func (o Order) CalculateTotals() (float64, int) {
	var amount float64
	var items int
	for _, line := range o.Products {
		amount += float64(line.Quantity) * line.Product.UnitValue
		items += line.Quantity
	}
	return amount, items
}

// History is one audit entry. Status is the status after the action.
type History struct {
	Source    Source    `json:"source"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Envelope is the message passed between every saga participant.
// TransactionID and OrderID never change after creation; History only grows.
type Envelope struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	OrderID       string    `json:"orderId"`
	Payload       Order     `json:"payload"`
	Source        Source    `json:"source"`
	Status        Status    `json:"status"`
	History       []History `json:"eventHistory"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewEnvelope starts the envelope of a new saga attempt over order
func NewEnvelope(order Order) *Envelope {
	return &Envelope{
		ID:            models.GenerateUUID().String(),
		TransactionID: order.TransactionID,
		OrderID:       order.ID,
		Payload:       order,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}
}

// Validate checks the identity fields
func (e *Envelope) Validate() error {
	if e.TransactionID == "" {
		return ErrInvalid("transactionId must be informed")
	}
	if e.OrderID == "" {
		return ErrInvalid("orderId must be informed")
	}
	if !e.Status.Valid() {
		return ErrInvalid("unknown status %q", e.Status)
	}
	if e.Source != "" && !e.Source.Valid() {
		return ErrInvalid("unknown source %q", e.Source)
	}
	return nil
}

// AddHistory appends one entry; earlier entries are left untouched
func (e *Envelope) AddHistory(source Source, status Status, message string) {
	e.History = append(e.History, History{
		Source:    source,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// LastHistory returns the most recent entry
func (e *Envelope) LastHistory() (History, bool) {
	if len(e.History) == 0 {
		return History{}, false
	}
	return e.History[len(e.History)-1], true
}

// Clone returns a deep copy, so a routed copy never aliases the stored one
func (e *Envelope) Clone() *Envelope {
	clone := *e
	clone.History = append([]History(nil), e.History...)
	clone.Payload.Products = append([]OrderProduct(nil), e.Payload.Products...)
	return &clone
}

// ToEvent wraps the envelope for topic, partitioned by order id
func (e *Envelope) ToEvent(topic events.Topic) (*events.Event, error) {
	evt, err := events.NewEvent(models.ID(e.OrderID), topic, e)
	if err != nil {
		return nil, err
	}
	evt.WithCorrelationID(models.ID(e.TransactionID))
	evt.WithMetadata("status", e.Status.String())
	if e.Source != "" {
		evt.WithMetadata("source", e.Source.String())
	}
	return evt, nil
}

// EnvelopeFromEvent decodes and validates the envelope carried by evt
func EnvelopeFromEvent(evt *events.Event) (*Envelope, error) {
	var env Envelope
	if err := evt.UnmarshalPayload(&env); err != nil {
		return nil, ErrInvalid("malformed envelope: %v", err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// MarshalEnvelope encodes e for storage
func MarshalEnvelope(e *Envelope) ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEnvelope decodes a stored envelope
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
