// Package scenario exposes CRUD endpoints for saved scenarios.
package scenario

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/model"
	"lbo_valuation/pkg/core/store"
)

// Handler holds dependencies for scenario endpoints.
type Handler struct {
	Repo *store.ScenarioRepo
}

// NewHandler creates a new scenario handler.
func NewHandler(repo *store.ScenarioRepo) *Handler {
	return &Handler{Repo: repo}
}

func cors(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

type saveRequest struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Assumptions json.RawMessage `json:"assumptions"`
}

// HandleSave validates and stores a scenario. The model is built once so the
// stored record carries the computed returns alongside the inputs.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "POST") {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Scenario name is required", http.StatusBadRequest)
		return
	}

	assumptions, err := assumption.Parse(req.Assumptions)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid scenario: %v", err), http.StatusBadRequest)
		return
	}

	m, err := model.New(assumptions)
	if err != nil {
		http.Error(w, fmt.Sprintf("Model build failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	s := &store.Scenario{
		ID:          req.ID,
		Name:        req.Name,
		Assumptions: assumptions,
		Returns:     m.Returns(),
	}
	id, err := h.Repo.Save(r.Context(), s)
	if err != nil {
		http.Error(w, fmt.Sprintf("Save failed: %v", err), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[SCENARIO] saved %q as %s\n", req.Name, id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// HandleGet loads one scenario by ?id=.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// HandleList returns scenario headers, most recent first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}

	scenarios, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List failed: %v", err), http.StatusInternalServerError)
		return
	}
	if scenarios == nil {
		scenarios = []store.Scenario{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}

// HandleDelete removes one scenario by ?id=.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "POST") {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	fmt.Fprintf(w, "Success: Deleted %s", id)
}
