package dataset

import (
	"github.com/gofiber/fiber/v2"

	"github.com/setlab/labsched/handlers"
	"github.com/setlab/labsched/services"
	"github.com/setlab/labsched/utils/response"
)

// DatasetHandler handles timetable upload and lifecycle requests
type DatasetHandler struct {
	service *services.DatasetService
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service *services.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: service}
}

// Upload handles POST /api/v1/datasets
func (h *DatasetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Unable to read uploaded file")
	}
	defer file.Close()

	meta, err := h.service.Upload(c.Context(), handlers.SessionID(c), fileHeader.Filename, file)
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Created(c, meta)
}

// Current handles GET /api/v1/datasets/current
func (h *DatasetHandler) Current(c *fiber.Ctx) error {
	meta, err := h.service.Current(c.Context(), handlers.SessionID(c))
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, meta)
}

// Reset handles DELETE /api/v1/datasets/current
func (h *DatasetHandler) Reset(c *fiber.Ctx) error {
	if err := h.service.Reset(c.Context(), handlers.SessionID(c)); err != nil {
		return handlers.MapError(c, err)
	}
	return response.NoContent(c)
}
