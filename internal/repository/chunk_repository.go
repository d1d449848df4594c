package repository

import (
	"context"
	"strconv"
	"strings"

	"talent-scout/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ChunkRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChunkRepository(db *pgxpool.Pool, logger *zap.Logger) *ChunkRepository {
	return &ChunkRepository{
		db:     db,
		logger: logger,
	}
}

// vectorLiteral serializes an embedding to the pgvector text form
// "[v1,v2,...]". The column type has no registered pgx codec, so values
// travel as text and are cast with ::vector on the server side.
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.Grow(len(embedding)*10 + 2)
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// Insert writes a batch of embedded chunks. Every chunk carries a freshly
// generated identifier, so concurrent writers never contend on a key.
func (r *ChunkRepository) Insert(ctx context.Context, chunks []*models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	builder := squirrel.Insert("resume_chunks").
		Columns("id", "record_id", "file_name", "seq", "content", "embedding", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, chunk := range chunks {
		embedding := squirrel.Expr("?::vector", vectorLiteral(chunk.Embedding))
		builder = builder.Values(chunk.ID, chunk.RecordID, chunk.FileName, chunk.Seq, chunk.Content, embedding, chunk.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// SearchSimilar returns the topK chunks nearest to the query embedding by
// pgvector cosine distance, each annotated with its record's provenance.
func (r *ChunkRepository) SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]*models.RetrievedChunk, error) {
	query := squirrel.Select("content", "record_id", "file_name",
		"(embedding <=> $1::vector) AS distance").
		From("resume_chunks").
		OrderBy("distance ASC").
		Limit(uint64(topK)).
		PlaceholderFormat(squirrel.Dollar)

	sql, _, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, vectorLiteral(embedding))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.RetrievedChunk
	for rows.Next() {
		var chunk models.RetrievedChunk
		if err := rows.Scan(&chunk.Content, &chunk.RecordID, &chunk.FileName, &chunk.Distance); err != nil {
			return nil, err
		}
		results = append(results, &chunk)
	}

	return results, rows.Err()
}

// TextSearch is the fallback when query embedding is unavailable: a plain
// substring match over chunk content.
func (r *ChunkRepository) TextSearch(ctx context.Context, queryText string, topK int) ([]*models.RetrievedChunk, error) {
	query := squirrel.Select("content", "record_id", "file_name").
		From("resume_chunks").
		Where(squirrel.ILike{"content": "%" + queryText + "%"}).
		Limit(uint64(topK)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.RetrievedChunk
	for rows.Next() {
		var chunk models.RetrievedChunk
		if err := rows.Scan(&chunk.Content, &chunk.RecordID, &chunk.FileName); err != nil {
			return nil, err
		}
		results = append(results, &chunk)
	}

	return results, rows.Err()
}
