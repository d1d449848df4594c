package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"talent-scout/internal/apperr"
	"talent-scout/internal/dto"
	"talent-scout/internal/models"
	"talent-scout/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recognizer converts a document file into ordered text fragments.
type Recognizer interface {
	Recognize(ctx context.Context, path string) ([]string, error)
}

// ResumeExtractor turns recognized fragments into a structured resume.
type ResumeExtractor interface {
	ExtractResume(ctx context.Context, fragments []string) (*models.Resume, error)
}

// ResumeStore is the system of record for structured resumes.
type ResumeStore interface {
	Create(ctx context.Context, rec *models.ResumeRecord) error
	GetByID(ctx context.Context, id string) (*models.ResumeRecord, error)
	List(ctx context.Context, limit, offset int) ([]*models.ResumeRecord, error)
	Count(ctx context.Context) (int, error)
}

// Indexer writes a record's chunk windows into the semantic index.
type Indexer interface {
	Index(ctx context.Context, rec *models.ResumeRecord, windows []string) error
}

// RawDocument is one uploaded candidate document. It exists only for the
// duration of the ingestion call and is never persisted as-is.
type RawDocument struct {
	FileName  string
	MediaType string
	Data      io.Reader
}

var mediaTypeExt = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
}

// IngestService chains the write path: recognize, extract, persist,
// chunk, index. Files are processed one at a time in the order received;
// a failing document never aborts its siblings.
type IngestService struct {
	recognizer Recognizer
	extractor  ResumeExtractor
	resumes    ResumeStore
	indexer    Indexer
	config     *config.RAGConfig
	uploadDir  string
	logger     *zap.Logger
}

func NewIngestService(
	recognizer Recognizer,
	extractor ResumeExtractor,
	resumes ResumeStore,
	indexer Indexer,
	cfg *config.RAGConfig,
	uploadDir string,
	logger *zap.Logger,
) *IngestService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &IngestService{
		recognizer: recognizer,
		extractor:  extractor,
		resumes:    resumes,
		indexer:    indexer,
		config:     cfg,
		uploadDir:  uploadDir,
		logger:     logger,
	}
}

// Ingest processes documents sequentially and reports a per-file outcome
// for each.
func (s *IngestService) Ingest(ctx context.Context, docs []RawDocument) []dto.IngestFileResult {
	results := make([]dto.IngestFileResult, len(docs))
	for i, doc := range docs {
		results[i].FileName = doc.FileName

		id, err := s.IngestOne(ctx, doc)
		if err != nil {
			s.logger.Warn("Document ingestion failed",
				zap.String("file", doc.FileName),
				zap.Error(err),
			)
			results[i].Error = err.Error()
			continue
		}
		results[i].RecordID = id
	}
	return results
}

// IngestOne runs the full pipeline for a single document and returns the
// identifier of the created record.
func (s *IngestService) IngestOne(ctx context.Context, doc RawDocument) (string, error) {
	ext, ok := mediaTypeExt[strings.ToLower(doc.MediaType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperr.ErrUnsupportedMediaType, doc.MediaType)
	}

	// The recognition engine consumes a file path; the temp copy lives
	// only for this call.
	tmpPath := filepath.Join(s.uploadDir, uuid.New().String()+ext)
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(dst, doc.Data); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	dst.Close()

	fragments, err := s.recognizer.Recognize(ctx, tmpPath)
	if err != nil {
		return "", err
	}

	resume, err := s.extractor.ExtractResume(ctx, fragments)
	if err != nil {
		return "", err
	}

	content, err := json.Marshal(resume)
	if err != nil {
		return "", fmt.Errorf("failed to serialize record: %w", err)
	}

	rec := &models.ResumeRecord{
		FileName:  doc.FileName,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.createWithIdentifier(ctx, rec, resume); err != nil {
		return "", err
	}

	windows := ChunkText(resume.IndexText(), s.config.ChunkSize, s.config.ChunkOverlap)
	if err := s.indexer.Index(ctx, rec, windows); err != nil {
		return "", err
	}

	s.logger.Info("Document ingested",
		zap.String("file", doc.FileName),
		zap.String("record_id", rec.ID),
		zap.Int("chunks", len(windows)),
	)

	return rec.ID, nil
}

// createWithIdentifier assigns the record identifier and persists it. A
// name slugs to a deterministic identifier; a missing or empty-slugging
// name gets a random one. Two candidates sharing a name would silently
// collide, so a taken slug is retried once with a short disambiguator.
func (s *IngestService) createWithIdentifier(ctx context.Context, rec *models.ResumeRecord, resume *models.Resume) error {
	slug := ""
	if resume.FullName != nil {
		slug = Slugify(*resume.FullName)
	}

	if slug == "" {
		rec.ID = models.RandomRecordID()
		return s.resumes.Create(ctx, rec)
	}

	rec.ID = slug
	err := s.resumes.Create(ctx, rec)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrDuplicateIdentifier) {
		return err
	}

	rec.ID = slug + "-" + models.RandomRecordID()[:6]
	s.logger.Info("Identifier collision, disambiguating",
		zap.String("slug", slug),
		zap.String("record_id", rec.ID),
	)
	return s.resumes.Create(ctx, rec)
}

// List returns a page of records ordered lexicographically by identifier,
// with the total count.
func (s *IngestService) List(ctx context.Context, limit, offset int) (*dto.ListResumesResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.resumes.Count(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.resumes.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ResumeListItem, len(records))
	for i, rec := range records {
		items[i] = dto.ResumeListItem{
			Identifier: rec.ID,
			Content:    json.RawMessage(rec.Content),
		}
	}

	return &dto.ListResumesResponse{
		Total:   total,
		Records: items,
	}, nil
}

// Fetch returns the canonical JSON bytes of one record.
func (s *IngestService) Fetch(ctx context.Context, id string) ([]byte, error) {
	rec, err := s.resumes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Content, nil
}
