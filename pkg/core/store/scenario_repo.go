package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/model"
)

// Scenario is one saved deal: the inputs and, when the model has been built,
// the returns analysis.
type Scenario struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Assumptions *assumption.AssumptionSet `json:"assumptions"`
	Returns     *model.Returns            `json:"returns,omitempty"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// ScenarioRepo handles scenario persistence.
//
// Schema assumption (managed by migrations):
//
//	CREATE TABLE IF NOT EXISTS lbo_scenarios (
//	  id UUID PRIMARY KEY,
//	  name TEXT NOT NULL,
//	  scenario_json JSONB NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	);
type ScenarioRepo struct{}

// NewScenarioRepo creates a new repository instance.
func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save persists a scenario. An empty ID gets a fresh UUID; a known ID is
// upserted. The assigned ID is returned.
func (r *ScenarioRepo) Save(ctx context.Context, s *Scenario) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	} else if _, err := uuid.Parse(s.ID); err != nil {
		return "", fmt.Errorf("invalid scenario id %q: %w", s.ID, err)
	}
	s.UpdatedAt = time.Now()

	jsonData, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario: %w", err)
	}

	query := `
		INSERT INTO lbo_scenarios (id, name, scenario_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			scenario_json = EXCLUDED.scenario_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, s.ID, s.Name, jsonData, s.UpdatedAt); err != nil {
		return "", fmt.Errorf("failed to save scenario: %w", err)
	}
	return s.ID, nil
}

// Load retrieves one scenario by ID.
func (r *ScenarioRepo) Load(ctx context.Context, id string) (*Scenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT scenario_json FROM lbo_scenarios WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no scenario found with id %s", id)
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return &s, nil
}

// List returns scenario headers (no assumption payloads), most recent first.
func (r *ScenarioRepo) List(ctx context.Context) ([]Scenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT id, name, updated_at FROM lbo_scenarios ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var s Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes one scenario by ID.
func (r *ScenarioRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tag, err := pool.Exec(ctx, `DELETE FROM lbo_scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no scenario found with id %s", id)
	}
	return nil
}
