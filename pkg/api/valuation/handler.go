// Package valuation exposes the model build endpoint: scenario JSON in,
// fully reconciled three-statement model out.
package valuation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/model"
	"lbo_valuation/pkg/core/report"
	"lbo_valuation/pkg/core/transaction"
)

// BuildResponse is the full model payload the dashboard renders.
type BuildResponse struct {
	Transaction     *transaction.Transaction          `json:"transaction"`
	IncomeStatement map[string][]float64              `json:"income_statement"`
	BalanceSheet    map[string][]float64              `json:"balance_sheet"`
	CashFlow        map[string][]float64              `json:"cash_flow"`
	DebtSchedule    map[string]map[string][]float64   `json:"debt_schedule"`
	DebtValidation  *model.DebtScheduleValidation     `json:"debt_validation"`
	Returns         *model.Returns                    `json:"returns"`
	SweepIterations int                               `json:"sweep_iterations"`
	Warnings        []string                          `json:"warnings"`
}

// HandleModelBuild builds a model from the posted scenario. The body may be
// strict JSON, sloppy JSON, or Hjson; the assumption loader sorts that out.
func HandleModelBuild(w http.ResponseWriter, r *http.Request) {
	// CORS
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	assumptions, err := assumption.Parse(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid scenario: %v", err), http.StatusBadRequest)
		return
	}

	m, err := model.New(assumptions)
	if err != nil {
		http.Error(w, fmt.Sprintf("Model build failed: %v", err), http.StatusUnprocessableEntity)
		return
	}
	fmt.Printf("[MODEL] built %d-year model, sweep converged in %d iteration(s)\n",
		m.Years(), m.SweepIterations())

	resp := BuildResponse{
		Transaction:     m.Transaction(),
		IncomeStatement: m.IncomeStatement().ToMap(),
		BalanceSheet:    m.BalanceSheet().ToMap(),
		CashFlow:        m.CashFlow().ToMap(),
		DebtSchedule:    m.DebtScheduleTable().ToMap(),
		DebtValidation:  m.DebtScheduleValidation(),
		Returns:         m.Returns(),
		SweepIterations: m.SweepIterations(),
		Warnings:        m.Warnings(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleModelReport builds a model and returns the rendered report instead
// of the raw payload. ?format=html renders through the Markdown pipeline.
func HandleModelReport(w http.ResponseWriter, r *http.Request) {
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	assumptions, err := assumption.Parse(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid scenario: %v", err), http.StatusBadRequest)
		return
	}

	m, err := model.New(assumptions)
	if err != nil {
		http.Error(w, fmt.Sprintf("Model build failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := report.HTML(m)
		if err != nil {
			http.Error(w, fmt.Sprintf("Report render failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, report.Summary(m))
}
