package views

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/setlab/labsched/handlers"
	"github.com/setlab/labsched/services"
	"github.com/setlab/labsched/utils/response"
	"github.com/setlab/labsched/utils/validation"
)

// ViewsHandler serves the computed view payloads
type ViewsHandler struct {
	service   *services.ViewService
	validator *validation.Validator
}

// NewViewsHandler creates a new views handler
func NewViewsHandler(service *services.ViewService) *ViewsHandler {
	return &ViewsHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ViewRequest is the body shared by the POST view endpoints
type ViewRequest struct {
	Mode   string                 `json:"mode" validate:"omitempty,oneof=course location"`
	Filter services.FilterRequest `json:"filter"`
}

func (h *ViewsHandler) parseRequest(c *fiber.Ctx) (*ViewRequest, error) {
	var req ViewRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return nil, response.ValidationError(c, err)
	}
	if err := h.validator.ValidateStruct(&req.Filter); err != nil {
		return nil, response.ValidationError(c, err)
	}
	return &req, nil
}

// Charts handles POST /api/v1/views/charts
func (h *ViewsHandler) Charts(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	view, err := h.service.Charts(c.Context(), handlers.SessionID(c), req.Mode, req.Filter)
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, view)
}

// Table handles POST /api/v1/views/table
func (h *ViewsHandler) Table(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	view, err := h.service.Table(c.Context(), handlers.SessionID(c), req.Filter)
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, view)
}

// Timeline handles POST /api/v1/views/timeline
func (h *ViewsHandler) Timeline(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	view, err := h.service.Timeline(c.Context(), handlers.SessionID(c), req.Mode, req.Filter)
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, view)
}

// Calendar handles POST /api/v1/views/calendar
func (h *ViewsHandler) Calendar(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	view, err := h.service.Calendar(c.Context(), handlers.SessionID(c), req.Filter)
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, view)
}

// Day handles GET /api/v1/views/day?date=2006-01-02&terms=4410&courses=...
func (h *ViewsHandler) Day(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return response.BadRequest(c, "Query parameter 'date' is required")
	}

	filter := services.FilterRequest{
		Terms:     queryInts(c, "terms"),
		Courses:   queryStrings(c, "courses"),
		TechTeams: queryStrings(c, "tech_teams"),
		Buildings: queryStrings(c, "buildings"),
		Rooms:     queryStrings(c, "rooms"),
		// The day endpoint supplies its own single-day window.
		StartDate: date,
		EndDate:   date,
	}
	if err := h.validator.ValidateStruct(&filter); err != nil {
		return response.ValidationError(c, err)
	}

	view, err := h.service.Day(c.Context(), handlers.SessionID(c), date, filter)
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, view)
}

func queryStrings(c *fiber.Ctx, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func queryInts(c *fiber.Ctx, name string) []int {
	var values []int
	for _, part := range queryStrings(c, name) {
		if n, err := strconv.Atoi(part); err == nil {
			values = append(values, n)
		}
	}
	return values
}
