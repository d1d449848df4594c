package service

import (
	"context"
	"errors"
	"testing"

	"talent-scout/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVision struct {
	text string
	err  error
}

func (v *fakeVision) ExtractTextFromImage(_ context.Context, _ string) (string, error) {
	return v.text, v.err
}

func TestRecognize_UnsupportedExtension(t *testing.T) {
	svc := NewOCRService(&fakeVision{}, zap.NewNop())

	_, err := svc.Recognize(context.Background(), "/tmp/resume.docx")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnsupportedMediaType)
}

func TestRecognize_ImageLinesBecomeFragments(t *testing.T) {
	vision := &fakeVision{text: "John Smith\n\nBackend Engineer\n  Go, PostgreSQL  \n"}
	svc := NewOCRService(vision, zap.NewNop())

	fragments, err := svc.Recognize(context.Background(), "/tmp/scan.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Backend Engineer", "Go, PostgreSQL"}, fragments)
}

func TestRecognize_EmptyVisionOutput(t *testing.T) {
	svc := NewOCRService(&fakeVision{text: "   \n  \n"}, zap.NewNop())

	_, err := svc.Recognize(context.Background(), "/tmp/blank.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRecognitionFailed)
}

func TestRecognize_VisionFailure(t *testing.T) {
	svc := NewOCRService(&fakeVision{err: errors.New("vision api unavailable")}, zap.NewNop())

	_, err := svc.Recognize(context.Background(), "/tmp/scan.jpeg")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRecognitionFailed)
}
