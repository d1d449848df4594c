package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"talent-scout/internal/api"
	"talent-scout/internal/api/handlers"
	"talent-scout/internal/repository"
	"talent-scout/internal/service"
	"talent-scout/pkg/config"
	"talent-scout/pkg/logger"
	"talent-scout/pkg/postgres"

	"go.uber.org/zap"
)

// @title Talent Scout API
// @version 1.0
// @description Resume ingestion and retrieval service: OCR, structured extraction, semantic indexing and a tool-using ranking agent for hiring queries

// @contact.name API Support
// @contact.email support@talent-scout.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey CallerIdentity
// @in header
// @name X-Caller-Identity
// @description Authenticated caller identity, validated upstream.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting talent-scout service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	resumeRepo := repository.NewResumeRepository(db, appLogger)
	chunkRepo := repository.NewChunkRepository(db, appLogger)
	auditRepo := repository.NewAuditRepository(db, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, cfg.RAG.EmbeddingModel, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	ocrService := service.NewOCRService(llmService, appLogger)
	indexerService := service.NewIndexerService(chunkRepo, llmService, &cfg.RAG, appLogger)
	ingestService := service.NewIngestService(ocrService, llmService, resumeRepo, indexerService, &cfg.RAG, cfg.Storage.UploadDir, appLogger)

	retrievalTool := service.NewRetrievalTool(indexerService, cfg.RAG.TopK, appLogger)
	resolver := service.NewProvenanceResolver(cfg.Storage.PublicBaseURL)
	agentService := service.NewAgentService(llmService, retrievalTool, auditRepo, resolver, cfg.RAG.MaxToolCalls, appLogger)

	resumeHandler := handlers.NewResumeHandler(ingestService, appLogger)
	askHandler := handlers.NewAskHandler(agentService, appLogger)

	app := api.SetupRouter(resumeHandler, askHandler, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
