package service

import (
	"context"
	"errors"
	"testing"

	"talent-scout/internal/models"
	"talent-scout/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	err   error
	calls [][]string
}

func (e *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	e.calls = append(e.calls, texts)
	if e.err != nil {
		return nil, e.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i), float32(len(texts[i]))}
	}
	return vectors, nil
}

type memChunkStore struct {
	chunks      []*models.Chunk
	similar     []*models.RetrievedChunk
	textResults []*models.RetrievedChunk
	insertErr   error
	textCalled  bool
}

func (s *memChunkStore) Insert(_ context.Context, chunks []*models.Chunk) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *memChunkStore) SearchSimilar(_ context.Context, _ []float32, topK int) ([]*models.RetrievedChunk, error) {
	if len(s.similar) > topK {
		return s.similar[:topK], nil
	}
	return s.similar, nil
}

func (s *memChunkStore) TextSearch(_ context.Context, _ string, topK int) ([]*models.RetrievedChunk, error) {
	s.textCalled = true
	if len(s.textResults) > topK {
		return s.textResults[:topK], nil
	}
	return s.textResults, nil
}

func newTestIndexer(store ChunkStore, embedder Embedder) *IndexerService {
	cfg := &config.RAGConfig{ChunkSize: 150, ChunkOverlap: 25, TopK: 5}
	return NewIndexerService(store, embedder, cfg, zap.NewNop())
}

func TestIndex_ChunksStoredInOrder(t *testing.T) {
	store := &memChunkStore{}
	embedder := &fakeEmbedder{}
	svc := newTestIndexer(store, embedder)

	rec := &models.ResumeRecord{ID: "johnsmith", FileName: "john.pdf"}
	err := svc.Index(context.Background(), rec, []string{"window one", "window two"})
	require.NoError(t, err)

	require.Len(t, store.chunks, 2)
	for i, chunk := range store.chunks {
		assert.Equal(t, "johnsmith", chunk.RecordID)
		assert.Equal(t, "john.pdf", chunk.FileName)
		assert.Equal(t, i, chunk.Seq)
		assert.NotZero(t, chunk.ID)
		assert.NotEmpty(t, chunk.Embedding)
	}
	assert.Equal(t, "window one", store.chunks[0].Content)
	assert.Equal(t, "window two", store.chunks[1].Content)
}

func TestIndex_NoWindowsIsNoop(t *testing.T) {
	store := &memChunkStore{}
	embedder := &fakeEmbedder{}
	svc := newTestIndexer(store, embedder)

	err := svc.Index(context.Background(), &models.ResumeRecord{ID: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, store.chunks)
	assert.Empty(t, embedder.calls)
}

func TestIndex_EmbeddingFailure(t *testing.T) {
	svc := newTestIndexer(&memChunkStore{}, &fakeEmbedder{err: errors.New("api down")})

	err := svc.Index(context.Background(), &models.ResumeRecord{ID: "x"}, []string{"w"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed chunks")
}

func TestSearch_SimilaritySearch(t *testing.T) {
	store := &memChunkStore{similar: []*models.RetrievedChunk{
		{RecordID: "johnsmith", Content: "Go developer", Distance: 0.1},
	}}
	svc := newTestIndexer(store, &fakeEmbedder{})

	results, err := svc.Search(context.Background(), "go developer", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "johnsmith", results[0].RecordID)
	assert.False(t, store.textCalled)
}

func TestSearch_ReturnsAtMostK(t *testing.T) {
	store := &memChunkStore{similar: []*models.RetrievedChunk{
		{RecordID: "a"}, {RecordID: "b"}, {RecordID: "c"}, {RecordID: "d"},
	}}
	svc := newTestIndexer(store, &fakeEmbedder{})

	results, err := svc.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 2)

	// k <= 0 falls back to the configured top-K.
	results, err = svc.Search(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 5)
}

func TestSearch_FallsBackToTextSearch(t *testing.T) {
	store := &memChunkStore{textResults: []*models.RetrievedChunk{
		{RecordID: "janedoe", Content: "Python"},
	}}
	svc := newTestIndexer(store, &fakeEmbedder{err: errors.New("embeddings down")})

	results, err := svc.Search(context.Background(), "python", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "janedoe", results[0].RecordID)
	assert.True(t, store.textCalled)
}
