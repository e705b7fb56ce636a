// StressMonitor API
//
// REST API for HRV-based stress scoring with personal baselines.
//
//	@title			StressMonitor API
//	@version		1.0
//	@description	Score stress levels from HRV and heart rate readings against a personal baseline.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			measurements
//	@tag.description	Raw HRV and heart rate sample ingestion
//
//	@tag.name			stress
//	@tag.description	Stress scoring, history, and trend endpoints
//
//	@tag.name			baseline
//	@tag.description	Personal baseline endpoints
//
//	@tag.name			stress-insights
//	@tag.description	LLM-powered stress insights
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/hrvlabs/stress-monitor/internal/api"
	"github.com/hrvlabs/stress-monitor/internal/api/handler"
	"github.com/hrvlabs/stress-monitor/internal/config"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/langfuse"
	"github.com/hrvlabs/stress-monitor/internal/llm"
	"github.com/hrvlabs/stress-monitor/internal/repository"
	"github.com/hrvlabs/stress-monitor/internal/seed"
	"github.com/hrvlabs/stress-monitor/internal/service"
	"github.com/hrvlabs/stress-monitor/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.HRVMeasurement{},
		&domain.HeartRateSample{},
		&domain.PersonalBaseline{},
		&domain.StressResult{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize OTEL tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "stress-monitor-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown failed: %v", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	baselineRepo := repository.NewBaselineRepository(db)
	resultRepo := repository.NewStressResultRepository(db)

	// Initialize calculators and services
	stressCalc := service.NewStressCalculator()
	baselineCalc := service.NewBaselineCalculator(cfg.BaselineMinSamples, cfg.BaselineWindowDays)

	userService := service.NewUserService(userRepo)
	measurementService := service.NewMeasurementService(measurementRepo, userRepo)
	baselineService := service.NewBaselineService(baselineCalc, baselineRepo, measurementRepo, userRepo)
	stressService := service.NewStressService(stressCalc, baselineService, resultRepo, userRepo)
	trendsService := service.NewTrendsService(resultRepo, userRepo)

	// Load the insights prompt from Langfuse prompt management, falling back
	// to the built-in prompt when unavailable
	systemPrompt, err := langfuse.FetchPrompt(ctx, langfuse.PromptConfig{
		BaseURL:   cfg.LangfuseBaseURL,
		PublicKey: cfg.LangfusePublicKey,
		SecretKey: cfg.LangfuseSecretKey,
		Name:      cfg.LangfusePromptName,
		Label:     cfg.LangfusePromptLabel,
		CachePath: cfg.PromptCachePath,
	})
	if err != nil {
		log.Printf("Using built-in insights prompt: %v", err)
		systemPrompt = ""
	}

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIStressInsightsModel, systemPrompt)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}

	insightsService := service.NewInsightsService(baselineService, trendsService, openaiClient, resultRepo, userRepo)

	// Initialize Langfuse client for trace scoring
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	measurementHandler := handler.NewMeasurementHandler(measurementService)
	stressHandler := handler.NewStressHandler(stressService, trendsService)
	baselineHandler := handler.NewBaselineHandler(baselineService)
	insightsHandler := handler.NewInsightsHandler(insightsService, langfuseClient)

	// Setup router
	router := api.NewRouter(userHandler, measurementHandler, stressHandler, baselineHandler, insightsHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
