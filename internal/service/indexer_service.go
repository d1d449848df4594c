package service

import (
	"context"
	"fmt"
	"time"

	"talent-scout/internal/models"
	"talent-scout/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Embedder turns texts into fixed-dimension vectors, one per input.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkStore is the vector-store contract the indexer writes to and
// searches. Writes are keyed by fresh identifiers and need no locking
// beyond what the store provides.
type ChunkStore interface {
	Insert(ctx context.Context, chunks []*models.Chunk) error
	SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]*models.RetrievedChunk, error)
	TextSearch(ctx context.Context, queryText string, topK int) ([]*models.RetrievedChunk, error)
}

// IndexerService embeds record chunks and upserts them into the vector
// store, and answers similarity queries over them.
type IndexerService struct {
	store    ChunkStore
	embedder Embedder
	config   *config.RAGConfig
	logger   *zap.Logger
}

func NewIndexerService(store ChunkStore, embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) *IndexerService {
	return &IndexerService{
		store:    store,
		embedder: embedder,
		config:   cfg,
		logger:   logger,
	}
}

// Index embeds the record's text windows and writes them under freshly
// generated chunk identifiers. Re-ingesting the same document adds new
// chunks; nothing is deduplicated here.
func (s *IndexerService) Index(ctx context.Context, rec *models.ResumeRecord, windows []string) error {
	if len(windows) == 0 {
		return nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, windows)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	now := time.Now().UTC()
	chunks := make([]*models.Chunk, len(windows))
	for i, window := range windows {
		chunks[i] = &models.Chunk{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			FileName:  rec.FileName,
			Seq:       i,
			Content:   window,
			Embedding: vectors[i],
			CreatedAt: now,
		}
	}

	if err := s.store.Insert(ctx, chunks); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	s.logger.Info("Record indexed",
		zap.String("record_id", rec.ID),
		zap.Int("chunks", len(chunks)),
	)

	return nil
}

// Search embeds the query with the same embedding function the chunks
// used and returns the k nearest chunks. When query embedding fails, it
// falls back to plain text search so retrieval degrades instead of dying.
func (s *IndexerService) Search(ctx context.Context, query string, k int) ([]*models.RetrievedChunk, error) {
	if k <= 0 {
		k = s.config.TopK
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		s.logger.Warn("Query embedding failed, using text search", zap.Error(err))
		return s.store.TextSearch(ctx, query, k)
	}

	results, err := s.store.SearchSimilar(ctx, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	return results, nil
}
