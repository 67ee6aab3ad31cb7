package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/order-saga/orchestrator-service/application"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/go-chi/chi/v5"
)

// SagaHandlers contains the operator HTTP handlers
type SagaHandlers struct {
	orchestrator *application.Orchestrator
}

// NewSagaHandlers creates new saga handlers
func NewSagaHandlers(orchestrator *application.Orchestrator) *SagaHandlers {
	return &SagaHandlers{orchestrator: orchestrator}
}

// Replay republishes the last routing decision of a saga
func (h *SagaHandlers) Replay(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")

	response, err := h.orchestrator.Replay(r.Context(), transactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers saga routes
func (h *SagaHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/sagas", func(r chi.Router) {
		r.Post("/{transactionId}/replay", h.Replay)
	})
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
