package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/go-chi/chi/v5"
)

// OrderHandlers contains order HTTP handlers
type OrderHandlers struct {
	createOrder *application.CreateOrder
	getOrder    *application.GetOrder
	getEvents   *application.GetEvents
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(
	createOrder *application.CreateOrder,
	getOrder *application.GetOrder,
	getEvents *application.GetEvents,
) *OrderHandlers {
	return &OrderHandlers{
		createOrder: createOrder,
		getOrder:    getOrder,
		getEvents:   getEvents,
	}
}

// CreateOrder handles order creation requests
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createOrder.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetOrder handles order retrieval requests
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	response, err := h.getOrder.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// FindAllEvents lists every finished saga, newest first
func (h *OrderHandlers) FindAllEvents(w http.ResponseWriter, r *http.Request) {
	response, err := h.getEvents.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if response == nil {
		response = []*saga.Envelope{}
	}

	writeJSON(w, http.StatusOK, response)
}

// FindEventByFilters returns the latest saga of an order or transaction
func (h *OrderHandlers) FindEventByFilters(w http.ResponseWriter, r *http.Request) {
	filters := application.EventFilters{
		OrderID:       r.URL.Query().Get("orderId"),
		TransactionID: r.URL.Query().Get("transactionId"),
	}

	response, err := h.getEvents.FindByFilters(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/order", h.CreateOrder)
		r.Get("/order/{id}", h.GetOrder)
		r.Get("/event", h.FindAllEvents)
		r.Get("/event/filters", h.FindEventByFilters)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	kind, _ := saga.KindOf(err)
	switch kind {
	case saga.KindNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case saga.KindInvalid:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
