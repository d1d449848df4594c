package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"talent-scout/internal/apperr"
	"talent-scout/internal/dto"
	"talent-scout/internal/service"
	"talent-scout/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ResumeHandler struct {
	ingest *service.IngestService
	logger *zap.Logger
}

func NewResumeHandler(ingest *service.IngestService, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{
		ingest: ingest,
		logger: logger,
	}
}

// Upload godoc
// @Summary Upload candidate resumes
// @Description Upload one or more resume documents (PDF or image) for recognition, extraction and indexing
// @Tags resumes
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Resume files (pdf, png, jpg)"
// @Param X-Caller-Identity header string true "Authenticated caller identity"
// @Success 200 {object} dto.IngestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/resumes/upload [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Multipart form is required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one file is required",
		})
	}

	docs := make([]service.RawDocument, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, src := range opened {
			_ = src.Close()
		}
	}()

	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open file " + file.Filename,
			})
		}
		opened = append(opened, src)

		docs = append(docs, service.RawDocument{
			FileName:  file.Filename,
			MediaType: detectMediaType(file),
			Data:      src,
		})
	}

	h.logger.Info("Resume upload received",
		zap.String("caller", caller),
		zap.Int("files", len(docs)),
	)

	results := h.ingest.Ingest(c.Context(), docs)

	return c.JSON(dto.IngestResponse{Results: results})
}

// List godoc
// @Summary List stored resumes
// @Description Get a page of extracted resume records ordered by identifier
// @Tags resumes
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Param X-Caller-Identity header string true "Authenticated caller identity"
// @Success 200 {object} dto.ListResumesResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	if _, err := getCaller(c); err != nil {
		return err
	}

	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	resp, err := h.ingest.List(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list resumes", zap.Error(err))
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get one resume record
// @Description Get the extracted structured resume by its identifier
// @Tags resumes
// @Produce json
// @Param id path string true "Resume identifier"
// @Param X-Caller-Identity header string true "Authenticated caller identity"
// @Success 200 {object} models.Resume
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/resumes/{id} [get]
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	if _, err := getCaller(c); err != nil {
		return err
	}

	id := c.Params("id")
	content, err := h.ingest.Fetch(c.Context(), id)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(content)
}

// Download godoc
// @Summary Download a resume record
// @Description Download the canonical JSON of a resume record as a file attachment
// @Tags resumes
// @Produce json
// @Param id path string true "Resume identifier"
// @Param X-Caller-Identity header string true "Authenticated caller identity"
// @Success 200 {file} file
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/resumes/{id}/download [get]
func (h *ResumeHandler) Download(c *fiber.Ctx) error {
	if _, err := getCaller(c); err != nil {
		return err
	}

	id := c.Params("id")
	content, err := h.ingest.Fetch(c.Context(), id)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+id+`.json"`)
	return c.Send(content)
}

func detectMediaType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}

func getCaller(c *fiber.Ctx) (string, error) {
	caller, ok := c.Locals(middleware.CallerKey).(string)
	if !ok || caller == "" {
		return "", fiber.ErrUnauthorized
	}
	return caller, nil
}
