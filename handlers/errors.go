package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/setlab/labsched/schedule"
	"github.com/setlab/labsched/services"
	"github.com/setlab/labsched/services/ingest"
	"github.com/setlab/labsched/store"
	"github.com/setlab/labsched/utils/response"
)

// SessionID resolves the caller's session from the X-Session-ID header.
// Clients that send no header share the "default" session, matching
// single-user deployments.
func SessionID(c *fiber.Ctx) string {
	if id := c.Get("X-Session-ID"); id != "" {
		return id
	}
	return "default"
}

// MapError translates service errors onto the response envelope.
func MapError(c *fiber.Ctx, err error) error {
	var colErr *ingest.ColumnError

	switch {
	case errors.Is(err, store.ErrNoDataset):
		return response.Error(c, fiber.StatusNotFound,
			"No timetable uploaded. Upload a file first.", "NO_DATASET")
	case errors.Is(err, schedule.ErrInvalidWindow):
		return response.Error(c, fiber.StatusBadRequest,
			"Please select a valid date range.", "INVALID_DATE_RANGE")
	case errors.As(err, &colErr):
		return response.Error(c, fiber.StatusBadRequest,
			fmt.Sprintf("%s column not found.", colErr.Column), "COLUMN_NOT_FOUND")
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		return response.Error(c, fiber.StatusBadRequest,
			"Unsupported file type. Upload .xlsx, .xls, or .csv.", "UNSUPPORTED_FILE_TYPE")
	case errors.Is(err, ingest.ErrEmptySheet):
		return response.Error(c, fiber.StatusBadRequest,
			"The uploaded file has no data rows.", "EMPTY_FILE")
	case errors.Is(err, services.ErrUnknownMode):
		return response.Error(c, fiber.StatusBadRequest,
			"View mode must be course or location.", "UNKNOWN_MODE")
	default:
		return response.InternalServerError(c, "")
	}
}
