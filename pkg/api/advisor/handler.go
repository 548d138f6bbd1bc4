// Package advisor exposes the LLM review endpoints: a structured deal
// review and free-form Q&A over a built model.
package advisor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lbo_valuation/pkg/core/advisor"
	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/model"
)

// Handler holds dependencies for advisor endpoints.
type Handler struct {
	Advisor *advisor.Advisor
}

// NewHandler creates a new advisor handler.
func NewHandler(a *advisor.Advisor) *Handler {
	return &Handler{Advisor: a}
}

type reviewRequest struct {
	Assumptions json.RawMessage `json:"assumptions"`
	Question    string          `json:"question,omitempty"`
}

func (h *Handler) buildModel(w http.ResponseWriter, raw json.RawMessage) *model.Model {
	assumptions, err := assumption.Parse(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid scenario: %v", err), http.StatusBadRequest)
		return nil
	}
	m, err := model.New(assumptions)
	if err != nil {
		http.Error(w, fmt.Sprintf("Model build failed: %v", err), http.StatusUnprocessableEntity)
		return nil
	}
	return m
}

// HandleReview builds the model and returns the structured LLM review.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	m := h.buildModel(w, req.Assumptions)
	if m == nil {
		return
	}

	fmt.Println("[ADVISOR] running model review...")
	review, err := h.Advisor.ReviewModel(r.Context(), m)
	if err != nil {
		http.Error(w, fmt.Sprintf("Review failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(review)
}

// HandleAsk answers a free-form question about the model.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	m := h.buildModel(w, req.Assumptions)
	if m == nil {
		return
	}

	answer, err := h.Advisor.Ask(r.Context(), m, req.Question)
	if err != nil {
		http.Error(w, fmt.Sprintf("Question failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}
