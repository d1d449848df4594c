package service

import (
	"context"
	"fmt"
	"strings"

	"talent-scout/internal/models"

	"go.uber.org/zap"
)

// Searcher is the similarity-search capability the retrieval tool wraps.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]*models.RetrievedChunk, error)
}

// RetrievalTool is the single capability exposed to the ranking agent:
// it executes a similarity search and formats the hits as numbered
// source/content blocks. Read-only, no state mutation.
type RetrievalTool struct {
	searcher Searcher
	topK     int
	logger   *zap.Logger
}

func NewRetrievalTool(searcher Searcher, topK int, logger *zap.Logger) *RetrievalTool {
	return &RetrievalTool{
		searcher: searcher,
		topK:     topK,
		logger:   logger,
	}
}

// Retrieve runs one search and returns the formatted observation plus the
// record identifiers it surfaced, so the agent's citations can be bounded
// to what was actually retrieved.
func (t *RetrievalTool) Retrieve(ctx context.Context, query string) (string, []string, error) {
	results, err := t.searcher.Search(ctx, query, t.topK)
	if err != nil {
		return "", nil, fmt.Errorf("retrieval failed: %w", err)
	}

	if len(results) == 0 {
		return "No matching resumes found.", nil, nil
	}

	var ids []string
	seen := make(map[string]struct{}, len(results))
	blocks := make([]string, len(results))

	for i, res := range results {
		blocks[i] = fmt.Sprintf("Document %d:\nSource: %s\nContent: %s\n", i+1, res.RecordID, res.Content)
		if _, ok := seen[res.RecordID]; !ok {
			seen[res.RecordID] = struct{}{}
			ids = append(ids, res.RecordID)
		}
	}

	t.logger.Debug("Retrieval tool executed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)

	return strings.Join(blocks, "\n---\n"), ids, nil
}
