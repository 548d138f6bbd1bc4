package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	advisorapi "lbo_valuation/pkg/api/advisor"
	"lbo_valuation/pkg/api/scenario"
	"lbo_valuation/pkg/api/valuation"
	"lbo_valuation/pkg/core/advisor"
	"lbo_valuation/pkg/core/store"
)

// serverConfig is read from config/server.yaml; every field has a working
// default so the binary runs without a config file.
type serverConfig struct {
	Listen  string `yaml:"listen"`
	Advisor struct {
		Model string `yaml:"model"`
	} `yaml:"advisor"`
}

func loadConfig() serverConfig {
	cfg := serverConfig{Listen: ":8080"}
	data, err := os.ReadFile("config/server.yaml")
	if err != nil {
		fmt.Println("[CONFIG] no config/server.yaml, using defaults")
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] failed to parse config/server.yaml: %v\n", err)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	// Model endpoints
	http.HandleFunc("/api/model/build", valuation.HandleModelBuild)
	http.HandleFunc("/api/model/report", valuation.HandleModelReport)

	// Scenario persistence (optional: requires DATABASE_URL)
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] scenario store disabled: %v\n", err)
	} else {
		defer store.Close()
		scenarioHandler := scenario.NewHandler(store.NewScenarioRepo())
		http.HandleFunc("/api/scenario/save", scenarioHandler.HandleSave)
		http.HandleFunc("/api/scenario/get", scenarioHandler.HandleGet)
		http.HandleFunc("/api/scenario/list", scenarioHandler.HandleList)
		http.HandleFunc("/api/scenario/delete", scenarioHandler.HandleDelete)
		fmt.Println("Scenario Endpoints Registered.")
	}

	// Advisor endpoints (optional: requires GEMINI_API_KEY)
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Println("[WARNING] advisor disabled: GEMINI_API_KEY not set")
	} else {
		adv := advisor.New(&advisor.GeminiProvider{Model: cfg.Advisor.Model})
		advisorHandler := advisorapi.NewHandler(adv)
		http.HandleFunc("/api/advisor/review", advisorHandler.HandleReview)
		http.HandleFunc("/api/advisor/ask", advisorHandler.HandleAsk)
		fmt.Println("Advisor Endpoints Registered.")
	}

	fmt.Printf("API server starting on %s...\n", cfg.Listen)
	fmt.Println("  - POST /api/model/build")
	fmt.Println("  - POST /api/model/report  (?format=html for rendered HTML)")
	fmt.Println("  - POST /api/scenario/save")
	fmt.Println("  - GET  /api/scenario/get?id=")
	fmt.Println("  - GET  /api/scenario/list")
	fmt.Println("  - POST /api/scenario/delete?id=")
	fmt.Println("  - POST /api/advisor/review")
	fmt.Println("  - POST /api/advisor/ask")

	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
