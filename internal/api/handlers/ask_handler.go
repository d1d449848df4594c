package handlers

import (
	"strings"

	"talent-scout/internal/apperr"
	"talent-scout/internal/dto"
	"talent-scout/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AskHandler struct {
	agent  *service.AgentService
	logger *zap.Logger
}

func NewAskHandler(agent *service.AgentService, logger *zap.Logger) *AskHandler {
	return &AskHandler{
		agent:  agent,
		logger: logger,
	}
}

// Ask godoc
// @Summary Ask a hiring question
// @Description Answer a free-text hiring query with a ranked, justified candidate answer and provenance links
// @Tags ask
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Hiring query"
// @Param X-Caller-Identity header string true "Authenticated caller identity"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/ask [post]
func (h *AskHandler) Ask(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}

	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	resp, err := h.agent.Ask(c.Context(), caller, req.Query)
	if err != nil {
		h.logger.Error("Failed to answer query",
			zap.String("caller", caller),
			zap.Error(err),
		)
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": "Failed to answer query",
		})
	}

	return c.JSON(resp)
}
