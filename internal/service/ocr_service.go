package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"talent-scout/internal/apperr"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// VisionClient extracts text from a raster image through the model's
// vision capability.
type VisionClient interface {
	ExtractTextFromImage(ctx context.Context, imagePath string) (string, error)
}

// OCRService is the recognition adapter: given a document path it returns
// the ordered text fragments the recognition engine produced. PDFs go
// through go-fitz page extraction, images through the vision API. The
// caller owns the input file and deletes it after use.
type OCRService struct {
	vision VisionClient
	logger *zap.Logger
}

func NewOCRService(vision VisionClient, logger *zap.Logger) *OCRService {
	return &OCRService{
		vision: vision,
		logger: logger,
	}
}

// Recognize returns the ordered recognized fragments for the file at path.
// An unaccepted extension fails with apperr.ErrUnsupportedMediaType before
// the engine is invoked; engine failures wrap apperr.ErrRecognitionFailed.
func (s *OCRService) Recognize(ctx context.Context, path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var fragments []string
	var err error

	switch ext {
	case ".pdf":
		fragments, err = s.recognizePDF(path)
	case ".png", ".jpg", ".jpeg":
		fragments, err = s.recognizeImage(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: pdf, png, jpg, jpeg)", apperr.ErrUnsupportedMediaType, ext)
	}
	if err != nil {
		return nil, err
	}

	if len(fragments) == 0 {
		return nil, fmt.Errorf("%w: no text recognized in %s", apperr.ErrRecognitionFailed, filepath.Base(path))
	}

	s.logger.Info("Recognition completed",
		zap.String("file", filepath.Base(path)),
		zap.String("type", ext),
		zap.Int("fragments", len(fragments)),
	)

	return fragments, nil
}

// recognizePDF extracts text page by page, one fragment per page.
func (s *OCRService) recognizePDF(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", apperr.ErrRecognitionFailed, err)
	}
	defer doc.Close()

	var fragments []string
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", path),
				zap.Error(err),
			)
			continue
		}

		pageText = strings.TrimSpace(sanitizeUTF8(pageText))
		if pageText != "" {
			fragments = append(fragments, pageText)
		}
	}

	return fragments, nil
}

// recognizeImage runs the vision API and splits its output into line
// fragments, preserving order.
func (s *OCRService) recognizeImage(ctx context.Context, path string) ([]string, error) {
	text, err := s.vision.ExtractTextFromImage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrRecognitionFailed, err)
	}

	var fragments []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(sanitizeUTF8(line))
		if line != "" {
			fragments = append(fragments, line)
		}
	}

	return fragments, nil
}
