package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Pipeline errors carry a stable kind across service boundaries. Handlers
// match them with errors.Is; the underlying cause stays wrapped and is
// never sent to the caller.
var (
	// ErrUnsupportedMediaType indicates a file whose declared media type is
	// not one of pdf, png, jpeg or jpg. Rejected before any processing.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrRecognitionFailed indicates the recognition engine could not
	// produce text for a document. Fatal for that document, no retry.
	ErrRecognitionFailed = errors.New("recognition failed")

	// ErrExtractionSchemaViolation indicates the model's output did not
	// satisfy the resume schema. Fatal for that document, no retry.
	ErrExtractionSchemaViolation = errors.New("extraction schema violation")

	// ErrAnswerSynthesisFailed indicates the ranking agent could not
	// terminate with a schema-conforming answer. Fatal for the query.
	ErrAnswerSynthesisFailed = errors.New("answer synthesis failed")

	// ErrNotFound indicates a fetch of an unknown record identifier.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateIdentifier indicates a record identifier collision that
	// survived disambiguation.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrAuditWriteFailed indicates the audit log append failed. Surfaced
	// as telemetry only, never as a rejection of a produced answer.
	ErrAuditWriteFailed = errors.New("audit write failed")
)

// HTTPStatus maps a pipeline error to the HTTP status the API returns.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicateIdentifier):
		return fiber.StatusConflict
	case errors.Is(err, ErrRecognitionFailed),
		errors.Is(err, ErrExtractionSchemaViolation),
		errors.Is(err, ErrAnswerSynthesisFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
