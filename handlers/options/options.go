package options

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/setlab/labsched/handlers"
	"github.com/setlab/labsched/services"
	"github.com/setlab/labsched/utils/response"
)

// OptionsHandler serves the dropdown option cascades
type OptionsHandler struct {
	service *services.DatasetService
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(service *services.DatasetService) *OptionsHandler {
	return &OptionsHandler{service: service}
}

// Terms handles GET /api/v1/options/terms
func (h *OptionsHandler) Terms(c *fiber.Ctx) error {
	terms, err := h.service.Terms(c.Context(), handlers.SessionID(c))
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, terms)
}

// Courses handles GET /api/v1/options/courses?terms=4410,4420
func (h *OptionsHandler) Courses(c *fiber.Ctx) error {
	courses, err := h.service.Courses(c.Context(), handlers.SessionID(c), queryInts(c, "terms"))
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, courses)
}

// TechTeams handles GET /api/v1/options/tech-teams
func (h *OptionsHandler) TechTeams(c *fiber.Ctx) error {
	teams, err := h.service.TechTeams(c.Context(), handlers.SessionID(c))
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, teams)
}

// Buildings handles GET /api/v1/options/buildings?tech_teams=
func (h *OptionsHandler) Buildings(c *fiber.Ctx) error {
	buildings, err := h.service.Buildings(c.Context(), handlers.SessionID(c), queryStrings(c, "tech_teams"))
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, buildings)
}

// Rooms handles GET /api/v1/options/rooms?buildings=&tech_teams=
func (h *OptionsHandler) Rooms(c *fiber.Ctx) error {
	rooms, err := h.service.Rooms(c.Context(), handlers.SessionID(c),
		queryStrings(c, "buildings"), queryStrings(c, "tech_teams"))
	if err != nil {
		return handlers.MapError(c, err)
	}
	return response.Success(c, rooms)
}

// queryStrings splits a comma-separated query parameter, dropping blanks.
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

// queryInts splits a comma-separated query parameter of integers, dropping
// anything unparseable.
func queryInts(c *fiber.Ctx, name string) []int {
	var values []int
	for _, part := range queryStrings(c, name) {
		if n, err := strconv.Atoi(part); err == nil {
			values = append(values, n)
		}
	}
	return values
}
