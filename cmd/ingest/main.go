package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"talent-scout/internal/repository"
	"talent-scout/internal/service"
	"talent-scout/pkg/config"
	"talent-scout/pkg/logger"
	"talent-scout/pkg/postgres"

	"go.uber.org/zap"
)

var extMediaType = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

func main() {
	dir := flag.String("dir", "resumes", "directory with resume files to ingest")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	resumeRepo := repository.NewResumeRepository(db, appLogger)
	chunkRepo := repository.NewChunkRepository(db, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, cfg.RAG.EmbeddingModel, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	ocrService := service.NewOCRService(llmService, appLogger)
	indexerService := service.NewIndexerService(chunkRepo, llmService, &cfg.RAG, appLogger)
	ingestService := service.NewIngestService(ocrService, llmService, resumeRepo, indexerService, &cfg.RAG, cfg.Storage.UploadDir, appLogger)

	appLogger.Info("Starting batch ingestion", zap.String("dir", *dir))

	cacheFile := filepath.Join(*dir, ".ingest_cache.json")
	if err := ingestDirectory(ctx, *dir, cacheFile, ingestService, appLogger); err != nil {
		appLogger.Fatal("Batch ingestion failed", zap.Error(err))
	}

	appLogger.Info("Batch ingestion completed")
}

// ProcessedFile records an already-ingested file in the cache.
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	RecordID    string    `json:"record_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"`
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}

	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// ingestDirectory runs every supported file in dir through the ingestion
// pipeline, skipping files whose content hash is already in the cache.
func ingestDirectory(
	ctx context.Context,
	dir string,
	cacheFile string,
	ingest *service.IngestService,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		mediaType, ok := extMediaType[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			logger.Debug("Skipping unsupported file", zap.String("file", entry.Name()))
			continue
		}

		path := filepath.Join(dir, entry.Name())

		fileHash, err := calculateFileHash(path)
		if err != nil {
			logger.Warn("Failed to calculate file hash, will process anyway",
				zap.String("path", path), zap.Error(err))
		}

		if cached, exists := cache.ProcessedFiles[path]; exists && cached.FileHash == fileHash {
			logger.Info("File already ingested, skipping",
				zap.String("path", path),
				zap.String("record_id", cached.RecordID),
			)
			continue
		}

		logger.Info("Ingesting file", zap.String("path", path))

		file, err := os.Open(path)
		if err != nil {
			logger.Error("Failed to open file", zap.String("path", path), zap.Error(err))
			continue
		}

		recordID, err := ingest.IngestOne(ctx, service.RawDocument{
			FileName:  entry.Name(),
			MediaType: mediaType,
			Data:      file,
		})
		_ = file.Close()
		if err != nil {
			logger.Error("Failed to ingest file", zap.String("path", path), zap.Error(err))
			continue
		}

		logger.Info("File ingested",
			zap.String("path", path),
			zap.String("record_id", recordID),
		)

		cache.ProcessedFiles[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    fileHash,
			RecordID:    recordID,
			ProcessedAt: time.Now().UTC(),
		}
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	}

	return nil
}
